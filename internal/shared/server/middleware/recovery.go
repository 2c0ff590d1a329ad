package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/shared/server/respond"
	"readiness-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 error envelope and logs the stack
// with the request and assessment it happened on.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"route":      c.FullPath(),
			}
			if id := c.GetString(AssessmentIDKey); id != "" {
				fields["assessment_id"] = id
			}
			telemetry.Error("panic", fields)
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}()
		c.Next()
	}
}
