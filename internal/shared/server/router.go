package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/assessments"
	"readiness-backend/internal/resources"
	"readiness-backend/internal/services/health"
	"readiness-backend/internal/shared/config"
	"readiness-backend/internal/shared/metrics"
	"readiness-backend/internal/shared/server/middleware"
	"readiness-backend/internal/shared/server/respond"
)

const pollingGroup = "POLLING"

// RouterDeps carries the handlers the router mounts. Nil handlers are skipped.
type RouterDeps struct {
	Config             config.Config
	AssessmentsHandler *assessments.Handler
	ResourcesHandler   *resources.Handler
	Health             *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if !config.IsDevLike(cfg.Env) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(cfg)),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	if deps.AssessmentsHandler != nil {
		deps.AssessmentsHandler.RegisterRoutes(api)
	}
	if deps.ResourcesHandler != nil {
		deps.ResourcesHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

// rateLimitConfig puts GET /assessments/:id and its subroutes in a separate
// POLLING bucket at twice the default rate.
func rateLimitConfig(cfg config.Config) middleware.RateLimitConfig {
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 20
	}
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT":    {Rate: rps, Burst: burst},
			pollingGroup: {Rate: rps * 2, Burst: burst * 2},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodGet && strings.HasPrefix(c.FullPath(), "/api/v1/assessments/:id") {
				return pollingGroup
			}
			return ""
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
