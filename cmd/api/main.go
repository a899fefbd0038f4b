package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/catalog-service/internal/api/http"
	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/observability"
	"github.com/spec-kit/catalog-service/internal/persistence"
	"github.com/spec-kit/catalog-service/internal/repository"
	"github.com/spec-kit/catalog-service/internal/service"
	"github.com/spec-kit/catalog-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()

	// Bootstrap runs to completion before the listener starts so no request
	// can observe a missing table.
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}
	if err := persistence.SeedAdmin(ctx, pool, cfg.Seed, cfg.Auth.BcryptCost, logger); err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:  userRepo,
		AdminRepo: adminRepo,
	})
	catalogService := service.NewCatalogService(serviceRepo)
	requestService := service.NewRequestService(requestRepo, dispatcher)
	adminService := service.NewAdminService(adminRepo, cfg.Auth.BcryptCost)
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	adminGuard := auth.NewAdminGuard(authService.TokenManager())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:       handlers.NewAuthHandler(authService),
		Services:   handlers.NewServicesHandler(catalogService),
		Requests:   handlers.NewRequestsHandler(requestService),
		Admin:      handlers.NewAdminHandler(authService, adminService),
		AdminGuard: adminGuard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
