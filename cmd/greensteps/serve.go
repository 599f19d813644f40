// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/greensteps/internal/auth"
	"github.com/carterperez-dev/greensteps/internal/config"
	"github.com/carterperez-dev/greensteps/internal/core"
	"github.com/carterperez-dev/greensteps/internal/habit"
	"github.com/carterperez-dev/greensteps/internal/health"
	"github.com/carterperez-dev/greensteps/internal/logbook"
	"github.com/carterperez-dev/greensteps/internal/middleware"
	"github.com/carterperez-dev/greensteps/internal/server"
	"github.com/carterperez-dev/greensteps/internal/stats"
	"github.com/carterperez-dev/greensteps/internal/user"
	"github.com/carterperez-dev/greensteps/internal/web"
)

type ServeCmd struct{}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	return run(cfg)
}

//nolint:funlen // bootstrap code is inherently verbose
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	logger, logCloser := setupLogger(cfg.Log)
	defer logCloser.Close() //nolint:errcheck // best-effort flush on exit
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", version,
		"environment", cfg.App.Environment,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg)
	if err != nil {
		logger.Warn("failed to initialize telemetry, tracing disabled", "error", err)
		telemetry = core.NewNoopTelemetry()
	} else if cfg.Otel.Enabled {
		logger.Info("OpenTelemetry tracer initialized",
			"endpoint", cfg.Otel.Endpoint,
		)
	}

	defer func() {
		if err := telemetry.Shutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		return err
	}
	logger.Info("database ready",
		"driver", cfg.Database.Driver,
		"max_open_conns", db.Stats().MaxOpenConnections,
	)

	healthHandler := health.NewHandler(db)

	var (
		redis    *core.Redis
		denylist auth.Denylist = auth.NewMemoryDenylist()
	)
	if cfg.Redis.URL != "" {
		redis, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("redis close error", "error", err)
			}
		}()
		denylist = auth.NewRedisDenylist(redis)
		healthHandler.AddChecker("redis", redis)
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	}

	sessions, err := auth.NewSessionManager(cfg.Session, denylist)
	if err != nil {
		return err
	}
	if sessions.Ephemeral() {
		logger.Warn("no session key configured, sessions end on restart")
	}
	logger.Info("session manager initialized",
		"algorithm", "ES256",
		"key_id", sessions.KeyID(),
	)

	hasher, err := core.NewPasswordHasher(cfg.Auth.PasswordScheme)
	if err != nil {
		return err
	}

	catalog := habit.Default()

	userSvc := user.NewService(user.NewRepository(db.DB))
	authSvc := auth.NewService(userSvc, hasher)
	logbookSvc := logbook.NewService(db, catalog)
	statsSvc := stats.NewService(stats.NewRepository(db.DB))

	webHandler, err := web.NewHandler(web.Deps{
		Auth:     authSvc,
		Sessions: sessions,
		Logbook:  logbookSvc,
		Stats:    statsSvc,
	})
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing(telemetry.Tracer))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.LoadSession(sessions))

	healthHandler.RegisterRoutes(router)
	webHandler.RegisterRoutes(router)

	requireSession := middleware.RequireSession

	router.Route("/v1", func(r chi.Router) {
		auth.NewHandler(authSvc, sessions).RegisterRoutes(r)
		habit.NewHandler(catalog).RegisterRoutes(r)
		user.NewHandler(userSvc).RegisterRoutes(r, requireSession)
		logbook.NewHandler(logbookSvc, authSvc).RegisterRoutes(r, requireSession)
		stats.NewHandler(statsSvc, authSvc).RegisterRoutes(r, requireSession)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	drainDelay := cfg.Server.DrainDelay
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}
