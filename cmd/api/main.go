package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/servicelink/admin-service/internal/api/http"
	"github.com/servicelink/admin-service/internal/api/http/handlers"
	"github.com/servicelink/admin-service/internal/auth"
	"github.com/servicelink/admin-service/internal/config"
	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/events"
	"github.com/servicelink/admin-service/internal/notify"
	"github.com/servicelink/admin-service/internal/observability"
	"github.com/servicelink/admin-service/internal/persistence"
	"github.com/servicelink/admin-service/internal/repository"
	"github.com/servicelink/admin-service/internal/repository/memory"
	"github.com/servicelink/admin-service/internal/service"
	"github.com/servicelink/admin-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Warn("redis close failed", zap.Error(err))
		}
	}()

	stores, txManager := buildStores(pg)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationWorker := worker.NewNotificationWorker(dispatcher, cfg.Notification, logger, metrics)

	statsCache := persistence.NewViewCache[domain.DashboardStats](redis.Client, cfg.Cache.DashboardTTL(), logger)
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher:    notificationWorker,
		Notifications: stores.Notifications,
		Mailer:        notify.New(cfg.Notification, logger),
		Cache:         statsCache,
		Logger:        logger,
		Metrics:       metrics,
	})
	notificationService.RegisterHandlers()
	registerPublishers(notificationWorker, cfg.Notification, redis, metrics, logger)
	notificationWorker.Start(ctx)

	authService := service.NewAuthService(cfg.Auth, stores.Accounts)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), stores.Accounts)
	credentialService := service.NewCredentialService(service.CredentialDependencies{
		Accounts:   stores.Accounts,
		Dispatcher: notificationWorker,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
		Metrics:    metrics,
	})
	lifecycleService := service.NewLifecycleService(service.LifecycleDependencies{
		TxManager:  txManager,
		Dispatcher: notificationWorker,
		Logger:     logger,
		Metrics:    metrics,
	})
	queryService := service.NewAdminQueryService(stores, statsCache, logger)
	categoryService := service.NewCategoryService(stores.Categories)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.Upload.MaxFileBytes + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:           handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:            handlers.NewUsersHandler(authService, credentialService),
		Providers:        handlers.NewProvidersHandler(lifecycleService, queryService),
		Clients:          handlers.NewClientsHandler(lifecycleService, queryService),
		Dashboard:        handlers.NewDashboardHandler(queryService),
		Categories:       handlers.NewCategoriesHandler(categoryService, cfg.Upload),
		AuthMiddleware:   authMiddleware,
		Metrics:          metrics,
		UploadDir:        cfg.Upload.Dir,
		BootstrapEnabled: cfg.Admin.BootstrapEnabled,
	})
	if cfg.Admin.BootstrapEnabled {
		logger.Warn("admin bootstrap endpoints enabled")
	}

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	notificationWorker.Stop()
}

// buildStores picks Postgres when a pool is available and the in-memory
// store otherwise.
func buildStores(pg *persistence.Postgres) (repository.Stores, repository.TxManager) {
	if pool := pg.PoolHandle(); pool != nil {
		return repository.NewStores(pool), repository.NewTxManager(pool)
	}
	store := memory.New()
	return store.Stores(), store
}

func registerPublishers(d events.Dispatcher, cfg config.NotificationConfig, redis *persistence.Redis, metrics *observability.Metrics, logger *zap.Logger) {
	if cfg.StreamName != "" && redis.Enabled() {
		stream := events.NewStreamPublisher(redis.Client, cfg.StreamName)
		events.SubscribeAll(d, countFailures(stream.Handle, "stream", metrics))
		logger.Info("publishing lifecycle events to redis stream", zap.String("stream", cfg.StreamName))
	}
	if cfg.WebhookURL != "" {
		webhook := events.NewWebhookPublisher(cfg.WebhookURL)
		events.SubscribeAll(d, countFailures(webhook.Handle, "webhook", metrics))
		logger.Info("publishing lifecycle events to webhook", zap.String("url", cfg.WebhookURL))
	}
}

func countFailures(handler events.EventHandler, effect string, metrics *observability.Metrics) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		err := handler(ctx, event)
		if err != nil {
			metrics.RecordSideEffectFailure(effect)
		}
		return err
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
