package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/odyssey-admin/internal/app"
	"github.com/odyssey-erp/odyssey-admin/internal/audit"
	audithttp "github.com/odyssey-erp/odyssey-admin/internal/audit/http"
	"github.com/odyssey-erp/odyssey-admin/internal/auth"
	"github.com/odyssey-erp/odyssey-admin/internal/categories"
	"github.com/odyssey-erp/odyssey-admin/internal/i18n"
	"github.com/odyssey-erp/odyssey-admin/internal/observability"
	"github.com/odyssey-erp/odyssey-admin/internal/platform/cache"
	"github.com/odyssey-erp/odyssey-admin/internal/platform/db"
	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/roles"
	"github.com/odyssey-erp/odyssey-admin/internal/session"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
	"github.com/odyssey-erp/odyssey-admin/internal/stats"
	"github.com/odyssey-erp/odyssey-admin/internal/users"
	"github.com/odyssey-erp/odyssey-admin/jobs"
	"github.com/odyssey-erp/odyssey-admin/migrations"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if cfg.MigrateOnStart {
		if err := db.Migrate(cfg.PGDSN, migrations.FS); err != nil {
			logger.Error("migrate", slog.Any("error", err))
			os.Exit(1)
		}
	}

	dbpool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	// Stats fall back to uncached reads when redis is unavailable.
	redisClient, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis unavailable, stats cache disabled", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	translator, err := i18n.New(cfg.DefaultLang)
	if err != nil {
		logger.Error("load translations", slog.Any("error", err))
		os.Exit(1)
	}
	codec, err := session.NewCodec(cfg.JWTSecret)
	if err != nil {
		logger.Error("init token codec", slog.Any("error", err))
		os.Exit(1)
	}
	hasher, err := auth.NewHasher(cfg.PasswordScheme, cfg.BcryptCost)
	if err != nil {
		logger.Error("init password hasher", slog.Any("error", err))
		os.Exit(1)
	}
	catalog := rbac.DefaultCatalog()
	metrics := observability.NewMetrics()

	sinks := []audit.Sink{shared.NewAuditLogger(dbpool)}
	if cfg.KafkaEnabled() {
		kafkaSink := audit.NewKafkaSink(logger, cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	}
	trail := audit.NewTrail(logger, sinks...)

	rbacMiddleware := rbac.Middleware{
		Authorizer: rbac.NewAuthorizer(codec, rbac.NewRepository(dbpool), catalog),
		Catalog:    catalog,
		Translator: translator,
		Audit:      trail,
		Observer:   metrics,
		Logger:     logger,
	}

	statsCache := cache.NewJSONCache(redisClient, "stats", cfg.StatsCacheTTL).WithLogger(logger)

	authService := auth.NewService(auth.NewRepository(dbpool), hasher, codec, cfg.JWTTTL, trail)
	authHandler := auth.NewHandler(logger, authService, translator, cfg.AuthRateLimit).WithObserver(metrics)

	usersService := users.NewService(users.NewRepository(dbpool), hasher, catalog, statsCache).WithLogger(logger)
	usersHandler := users.NewHandler(logger, usersService, translator, trail, rbacMiddleware)

	rolesService := roles.NewService(roles.NewRepository(dbpool), catalog)
	rolesHandler := roles.NewHandler(logger, rolesService, translator, trail, rbacMiddleware)

	categoriesService := categories.NewService(categories.NewRepository(dbpool), statsCache).WithLogger(logger)
	categoriesHandler := categories.NewHandler(logger, categoriesService, translator, trail, rbacMiddleware)

	auditService := audit.NewService(audit.NewRepository(dbpool))
	auditHandler := audithttp.NewHandler(logger, auditService, translator, trail, rbacMiddleware, cfg.AuditRateLimit)

	statsService := stats.NewService(stats.NewRepository(dbpool), statsCache).WithLogger(logger)
	statsHandler := stats.NewHandler(logger, statsService, translator, trail, rbacMiddleware)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthHandler:        authHandler,
		UsersHandler:       usersHandler,
		RolesHandler:       rolesHandler,
		PermissionsHandler: rbac.NewPermissionsHandler(catalog),
		CategoriesHandler:  categoriesHandler,
		AuditHandler:       auditHandler,
		StatsHandler:       statsHandler,
		JobHandler:         jobHandler,
		Metrics:            metrics,
		Health:             healthChecks(dbpool, redisClient),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

func healthChecks(pool *pgxpool.Pool, redisClient *redis.Client) map[string]app.HealthChecker {
	checks := map[string]app.HealthChecker{
		"postgres": func(r *http.Request) error { return db.Ping(r.Context(), pool) },
	}
	if redisClient != nil {
		checks["redis"] = func(r *http.Request) error { return cache.Ping(r.Context(), redisClient) }
	}
	return checks
}
