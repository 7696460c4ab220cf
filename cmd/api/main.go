package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/lead-distribution/internal/api/http"
	"github.com/spec-kit/lead-distribution/internal/api/http/handlers"
	"github.com/spec-kit/lead-distribution/internal/config"
	"github.com/spec-kit/lead-distribution/internal/events"
	"github.com/spec-kit/lead-distribution/internal/observability"
	"github.com/spec-kit/lead-distribution/internal/persistence"
	"github.com/spec-kit/lead-distribution/internal/repository"
	"github.com/spec-kit/lead-distribution/internal/service"
	"github.com/spec-kit/lead-distribution/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	operatorRepo := repository.NewOperatorRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	sourceRepo := repository.NewSourceRepository(pool)
	weightRepo := repository.NewWeightRepository(pool)
	contactRepo := repository.NewContactRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	dispatcher.Subscribe(events.EventContactCreated, func(ctx context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.ContactCreatedPayload); ok {
			metrics.RecordDistribution(payload.SourceID, payload.Assigned)
		}
		return nil
	})

	loadService := service.NewLoadService(operatorRepo, contactRepo)
	selector := service.NewSelector(cfg.Distribution.Seed)
	distributionService := service.NewDistributionService(service.DistributionDependencies{
		ContactRepo:  contactRepo,
		WeightRepo:   weightRepo,
		OperatorRepo: operatorRepo,
		Load:         loadService,
		Selector:     selector,
		Dispatcher:   dispatcher,
	})
	statsService := service.NewStatsService(weightRepo)
	leadService := service.NewLeadService(leadRepo)
	sourceService := service.NewSourceService(sourceRepo, weightRepo, operatorRepo)
	operatorService := service.NewOperatorService(service.OperatorDependencies{
		OperatorRepo: operatorRepo,
		SourceRepo:   sourceRepo,
		WeightRepo:   weightRepo,
		Load:         loadService,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	operatorsHandler := handlers.NewOperatorsHandler(operatorService, loadService)
	sourcesHandler := handlers.NewSourcesHandler(sourceService)
	leadsHandler := handlers.NewLeadsHandler(leadService)
	contactsHandler := handlers.NewContactsHandler(distributionService, statsService, leadService, sourceService, loadService, contactRepo)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    healthHandler,
		Operators: operatorsHandler,
		Sources:   sourcesHandler,
		Leads:     leadsHandler,
		Contacts:  contactsHandler,
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
