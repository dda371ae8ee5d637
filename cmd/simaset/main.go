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

	"github.com/simaset/simaset/internal/admin"
	"github.com/simaset/simaset/internal/app"
	"github.com/simaset/simaset/internal/assets"
	"github.com/simaset/simaset/internal/auth"
	"github.com/simaset/simaset/internal/categories"
	"github.com/simaset/simaset/internal/custodians"
	"github.com/simaset/simaset/internal/dashboard"
	"github.com/simaset/simaset/internal/detailcategories"
	"github.com/simaset/simaset/internal/disposals"
	"github.com/simaset/simaset/internal/maintenance"
	"github.com/simaset/simaset/internal/observability"
	"github.com/simaset/simaset/internal/platform/cache"
	"github.com/simaset/simaset/internal/platform/db"
	"github.com/simaset/simaset/internal/shared"
	"github.com/simaset/simaset/internal/subcategories"
	"github.com/simaset/simaset/internal/users"
	"github.com/simaset/simaset/internal/view"
	"github.com/simaset/simaset/jobs"
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "simaset_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	events := jobs.NewPublisher(jobsClient, logger)

	auditLogger := shared.NewAuditLogger(pool)
	metrics := observability.NewMetrics()

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager)

	categoryService := categories.NewService(categories.NewRepository(pool), auditLogger)
	subcategoryService := subcategories.NewService(subcategories.NewRepository(pool), categoryService, auditLogger)
	detailCategoryService := detailcategories.NewService(detailcategories.NewRepository(pool), subcategoryService, auditLogger)
	custodianService := custodians.NewService(custodians.NewRepository(pool), auditLogger)

	assetRepo := assets.NewRepository(pool)
	assetService := assets.NewService(assetRepo, subcategoryService, custodianService, auditLogger, cfg.AssetPageSize)

	maintenanceService := maintenance.NewService(maintenance.NewRepository(pool), assetService, auditLogger)
	disposalService := disposals.NewService(disposals.NewRepository(pool), assetService, auditLogger)
	userService := users.NewService(users.NewRepository(pool), auditLogger)

	dashCache := dashboard.NewCache(redisClient, cfg.StatsCacheTTL)
	dashboardService := dashboard.NewService(pool, assetService, maintenanceService, disposalService, dashCache)
	if err := dashCache.ListenForInvalidation(ctx, ""); err != nil {
		logger.Warn("dashboard invalidation listener", slog.Any("error", err))
	}

	adminHandler := admin.NewHandler(admin.HandlerParams{
		Logger:        logger,
		Templates:     templates,
		CSRF:          csrfManager,
		Categories:    categoryService,
		Subcategories: subcategoryService,
		DetailCats:    detailCategoryService,
		Custodians:    custodianService,
		Assets:        assetService,
		Maintenance:   maintenanceService,
		Disposals:     disposalService,
		Dashboard:     dashboardService,
	})

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,

		AuthHandler:           authHandler,
		AdminHandler:          adminHandler,
		CategoryHandler:       categories.NewHandler(logger, categoryService, events),
		SubcategoryHandler:    subcategories.NewHandler(logger, subcategoryService, events),
		DetailCategoryHandler: detailcategories.NewHandler(logger, detailCategoryService, events),
		CustodianHandler:      custodians.NewHandler(logger, custodianService, events),
		AssetHandler:          assets.NewHandler(logger, assetService, events),
		MaintenanceHandler:    maintenance.NewHandler(logger, maintenanceService, events),
		DisposalHandler:       disposals.NewHandler(logger, disposalService, events),
		UsersHandler:          users.NewHandler(logger, userService),
		DashboardHandler:      dashboard.NewHandler(logger, dashboardService),
		JobHandler:            jobHandler,

		Metrics: metrics,
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
