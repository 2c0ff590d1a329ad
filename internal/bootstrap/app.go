package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/assessments"
	"readiness-backend/internal/queue"
	"readiness-backend/internal/readiness"
	"readiness-backend/internal/readiness/recommendations"
	"readiness-backend/internal/resources"
	"readiness-backend/internal/services/health"
	"readiness-backend/internal/shared/config"
	"readiness-backend/internal/shared/server"
	"readiness-backend/internal/shared/storage/db"
	"readiness-backend/internal/shared/storage/object"
	localstore "readiness-backend/internal/shared/storage/object/local"
	s3store "readiness-backend/internal/shared/storage/object/s3"
	"readiness-backend/internal/shared/telemetry"
)

// Role is the process being assembled. It picks the database pool; the
// refresher only reads the resource library and the object store, so it
// gets no database at all.
type Role int

const (
	RoleServer Role = iota
	RoleWorker
	RoleRefresher
)

// App holds shared dependencies.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Store              object.ObjectStore
	Queue              queue.Client
	Catalog            *readiness.Catalog
	AssessmentsRepo    assessments.Repo
	AssessmentsService *assessments.Service
	AssessmentsHandler *assessments.Handler
	Library            *resources.Library
	Refresher          *resources.Refresher
	ResourcesHandler   *resources.Handler
}

// Build prepares dependencies for the API server.
func Build(cfg config.Config) (*App, error) {
	return BuildFor(cfg, RoleServer)
}

// BuildFor prepares dependencies and the router for the given role.
func BuildFor(cfg config.Config, role Role) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	telemetry.SetLevel(cfg.LogLevel)
	ctx := context.Background()

	catalog, err := readiness.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	library, err := resources.DefaultLibrary()
	if err != nil {
		return nil, fmt.Errorf("load resource library: %w", err)
	}

	sqlDB, err := buildDB(ctx, cfg, role)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Store:   store,
		Queue:   queueClient,
		Catalog: catalog,
		Library: library,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		AssessmentsHandler: app.AssessmentsHandler,
		ResourcesHandler:   app.ResourcesHandler,
		Health:             health.NewService(app.DB),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"object_store": cfg.ObjectStoreType,
		"database":     sqlDB != nil,
		"queue":        queueClient != nil,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config, role Role) (*sql.DB, error) {
	if role == RoleRefresher {
		return nil, nil
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_url_empty", map[string]any{"fallback": "memory"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	dbRole := db.RoleServer
	if role == RoleWorker {
		dbRole = db.RoleWorker
	}
	sqlDB, err := db.Open(ctx, cfg.DatabaseURL, dbRole)
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_connect_failed", map[string]any{"fallback": "memory", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if config.IsDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.QueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.QueueURL)
}

func buildServices(app *App) {
	var repo assessments.Repo
	if app.DB != nil {
		repo = &assessments.PGRepo{DB: app.DB}
	} else {
		repo = assessments.NewMemoryRepo()
	}

	svc := &assessments.Service{
		Repo:     repo,
		Catalog:  app.Catalog,
		Engine:   recommendations.NewEngine(),
		Store:    app.Store,
		JobQueue: app.Queue,
	}

	app.AssessmentsRepo = repo
	app.AssessmentsService = svc
	app.AssessmentsHandler = assessments.NewHandler(svc)
	app.Refresher = &resources.Refresher{Library: app.Library, Store: app.Store}
	app.ResourcesHandler = resources.NewHandler(app.Library, app.Refresher)
}
