package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"readiness-backend/internal/shared/telemetry"
)

// Role names the process that owns a pool. It selects pool sizing and
// whether the handle is shared process-wide.
type Role string

const (
	// RoleServer is the HTTP API: one pool sized for concurrent requests.
	RoleServer Role = "server"
	// RoleWorker is the report-export consumer; its pool is shared by every
	// handler goroutine.
	RoleWorker Role = "worker"
	// RoleMigrate is cmd/migrate: a single connection for goose.
	RoleMigrate Role = "migrate"
)

// Options controls pool sizing and the connect-time ping.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

var roleDefaults = map[Role]Options{
	RoleServer: {
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 2 * time.Minute,
		PingTimeout:     5 * time.Second,
	},
	RoleWorker: {
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: time.Minute,
		PingTimeout:     3 * time.Second,
	},
	RoleMigrate: {
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		PingTimeout:     10 * time.Second,
	},
}

var openDB = sql.Open

var (
	sharedMu sync.Mutex
	shared   = map[string]*sql.DB{}
)

// OptionsFor returns the pool defaults of role with environment overrides
// applied. DB_<ROLE>_<SETTING> wins over DB_<SETTING>, e.g.
// DB_WORKER_MAX_OPEN_CONNS over DB_MAX_OPEN_CONNS. Unknown roles get the
// server defaults.
func OptionsFor(role Role) Options {
	opts, ok := roleDefaults[role]
	if !ok {
		opts = roleDefaults[RoleServer]
	}
	prefix := "DB_" + strings.ToUpper(string(role)) + "_"

	if v, ok := envInt(prefix, "MAX_OPEN_CONNS"); ok {
		opts.MaxOpenConns = v
	}
	if v, ok := envInt(prefix, "MAX_IDLE_CONNS"); ok {
		opts.MaxIdleConns = v
	}
	if v, ok := envDuration(prefix, "CONN_MAX_LIFETIME"); ok {
		opts.ConnMaxLifetime = v
	}
	if v, ok := envDuration(prefix, "CONN_MAX_IDLE_TIME"); ok {
		opts.ConnMaxIdleTime = v
	}
	if v, ok := envDuration(prefix, "PING_TIMEOUT"); ok {
		opts.PingTimeout = v
	}
	return opts
}

// Open returns a verified pool for role. Worker pools are shared per
// database URL; server and migrate callers own the returned handle.
func Open(ctx context.Context, databaseURL string, role Role) (*sql.DB, error) {
	opts := OptionsFor(role)
	if role != RoleWorker {
		return Connect(ctx, databaseURL, opts)
	}

	sharedMu.Lock()
	defer sharedMu.Unlock()
	if db, ok := shared[databaseURL]; ok {
		return db, nil
	}
	db, err := Connect(ctx, databaseURL, opts)
	if err != nil {
		return nil, err
	}
	shared[databaseURL] = db
	telemetry.Info("db.shared_pool_ready", map[string]any{"role": string(role)})
	return db, nil
}

// Connect opens a pgx-backed pool, applies opts and pings it.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	db, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	telemetry.Info("db.connected", map[string]any{
		"max_open": opts.MaxOpenConns,
		"max_idle": opts.MaxIdleConns,
	})
	return db, nil
}

func lookupEnv(prefix, name string) (string, string, bool) {
	for _, key := range []string{prefix + name, "DB_" + name} {
		if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
			return key, raw, true
		}
	}
	return "", "", false
}

func envInt(prefix, name string) (int, bool) {
	key, raw, ok := lookupEnv(prefix, name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		telemetry.Warn("db.env_invalid", map[string]any{"key": key, "value": raw})
		return 0, false
	}
	return v, true
}

func envDuration(prefix, name string) (time.Duration, bool) {
	key, raw, ok := lookupEnv(prefix, name)
	if !ok {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		telemetry.Warn("db.env_invalid", map[string]any{"key": key, "value": raw})
		return 0, false
	}
	return v, true
}
