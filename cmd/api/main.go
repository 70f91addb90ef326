package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/bpdb/power-portal/internal/api/http"
	"github.com/bpdb/power-portal/internal/api/http/handlers"
	"github.com/bpdb/power-portal/internal/auth"
	"github.com/bpdb/power-portal/internal/cache"
	"github.com/bpdb/power-portal/internal/config"
	"github.com/bpdb/power-portal/internal/events"
	"github.com/bpdb/power-portal/internal/observability"
	"github.com/bpdb/power-portal/internal/persistence"
	"github.com/bpdb/power-portal/internal/repository"
	"github.com/bpdb/power-portal/internal/service"
	"github.com/bpdb/power-portal/internal/worker"
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
	defer redis.Close()

	pool := pg.PoolHandle()
	profileRepo := repository.NewProfileRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	plantRepo := repository.NewPowerPlantRepository(pool)
	substationRepo := repository.NewSubstationRepository(pool)
	incidentRepo := repository.NewIncidentRepository(pool)
	billingRepo := repository.NewBillingRepository(pool)

	profileLookup := cache.NewProfileLookup(
		cache.NewRedisProfileCache(redis.Client, cfg.Redis.ProfileCacheTTL()),
		profileRepo,
		logger,
	)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		ProfileRepo:       profileRepo,
		PasswordResetRepo: resetRepo,
		Cache:             profileLookup,
		SignIns:           metrics,
		Logger:            logger,
	})
	navigationService := service.NewNavigationService()
	assetService := service.NewAssetService(plantRepo, substationRepo)
	incidentService := service.NewIncidentService(service.IncidentDependencies{
		IncidentRepo: incidentRepo,
		ProfileRepo:  profileRepo,
		Dispatcher:   dispatcher,
	})
	profileService := service.NewProfileService(profileRepo, profileLookup, dispatcher, logger)
	billingService := service.NewBillingService(billingRepo, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), profileLookup)
	policy, err := auth.NewPolicyEnforcer(logger, metrics)
	if err != nil {
		logger.Fatal("failed to build access policy", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.App.RequestTimeout(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:           handlers.NewAuthHandler(authService),
		Me:             handlers.NewMeHandler(navigationService),
		Assets:         handlers.NewAssetsHandler(assetService),
		Incidents:      handlers.NewIncidentsHandler(incidentService),
		Users:          handlers.NewUsersHandler(profileService),
		Billing:        handlers.NewBillingHandler(billingService),
		Metrics:        metrics,
		AuthMiddleware: authMiddleware,
		Policy:         policy,
	})

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
