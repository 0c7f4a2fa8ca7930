package main

import (
	"context"

	"github.com/Behyna/credit-ledger/internal/api"
	v1 "github.com/Behyna/credit-ledger/internal/api/v1"
	"github.com/Behyna/credit-ledger/internal/api/validator"
	"github.com/Behyna/credit-ledger/internal/config"
	"github.com/Behyna/credit-ledger/internal/database"
	"github.com/Behyna/credit-ledger/internal/errors"
	"github.com/Behyna/credit-ledger/internal/metrics"
	"github.com/Behyna/credit-ledger/internal/publishers"
	"github.com/Behyna/credit-ledger/internal/repository"
	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/Behyna/credit-ledger/pkg/mq"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewConnectionDB,
			NewMetrics,
			NewEventPublisher,
			NewFiberApp,
			NewXValidator,

			repository.NewTransactionManager,
			repository.NewSellerRepository,
			repository.NewTransactionRepository,
			repository.NewPhoneNumberRepository,
			repository.NewCreditRequestRepository,
			repository.NewReconciliationRepository,

			service.NewLedgerService,
			service.NewCreditRequestService,
			service.NewReconciliationService,

			metrics.NewSystemCollector,
			metrics.NewDatabaseMetricsCollector,

			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, m *metrics.Metrics,
	system *metrics.SystemCollector, db *metrics.DatabaseMetricsCollector, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, api.RouteConfig{
		ServiceName:          cfg.API.ServiceName,
		AuthSecret:           []byte(cfg.Auth.Secret),
		Gatherer:             prometheus.DefaultGatherer,
		Health:               db,
		Metrics:              m,
		SlowRequestThreshold: cfg.Metrics.SlowRequestThreshold,
		Logger:               logger,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			system.Start(cfg.Metrics.CollectInterval)
			db.Start(cfg.Metrics.CollectInterval)

			go func() {
				if err := app.Listen(":" + cfg.API.Port); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
			}()

			logger.Info("credit ledger api started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			system.Stop()
			db.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return database.NewConnection(ctx, cfg, logger)
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewFiberApp(cfg *config.Config, logger *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      cfg.API.ServiceName,
		ErrorHandler: errors.ErrorHandler(logger),
	})
}

func NewXValidator(m *metrics.Metrics) validator.IXValidator {
	return validator.NewXValidator(playground.New(), m)
}

// NewEventPublisher falls back to dropping events when RabbitMQ is disabled.
func NewEventPublisher(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (service.EventPublisher, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq disabled, ledger events are not published")
		return service.NopEventPublisher{}, nil
	}

	rabbit, err := mq.NewConnection(cfg.RabbitMQ, logger)
	if err != nil {
		return nil, err
	}

	if err := rabbit.DeclareQueues(cfg.RabbitMQ.Queue); err != nil {
		_ = rabbit.Close()
		return nil, err
	}

	publisher, err := rabbit.CreatePublisher()
	if err != nil {
		_ = rabbit.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = publisher.Close()
			return rabbit.Close()
		},
	})

	return publishers.NewLedgerEventPublisher(publisher, cfg.RabbitMQ.Queue, logger), nil
}
