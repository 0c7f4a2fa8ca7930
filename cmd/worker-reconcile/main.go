package main

import (
	"context"
	"time"

	"github.com/Behyna/credit-ledger/internal/config"
	"github.com/Behyna/credit-ledger/internal/consumers"
	"github.com/Behyna/credit-ledger/internal/database"
	"github.com/Behyna/credit-ledger/internal/metrics"
	"github.com/Behyna/credit-ledger/internal/repository"
	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/Behyna/credit-ledger/pkg/mq"
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

			repository.NewReconciliationRepository,
			service.NewReconciliationService,
		),
		fx.Invoke(runReconciliation),
	).Run()
}

func runReconciliation(cfg *config.Config, reconcile service.ReconciliationService, logger *zap.Logger,
	lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	var rabbit *mq.RabbitMQ

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.RabbitMQ.Enabled {
				var err error
				rabbit, err = startConsumer(appCtx, cfg, reconcile, logger)
				if err != nil {
					return err
				}
			}

			go sweepLoop(appCtx, cfg.Reconcile, reconcile, logger)

			logger.Info("reconciliation worker started",
				zap.Duration("interval", cfg.Reconcile.Interval),
				zap.Int("batchSize", cfg.Reconcile.BatchSize),
				zap.Bool("consumer", cfg.RabbitMQ.Enabled),
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping reconciliation worker")
			cancel()
			if rabbit != nil {
				return rabbit.Close()
			}
			return nil
		},
	})
}

func startConsumer(ctx context.Context, cfg *config.Config, reconcile service.ReconciliationService,
	logger *zap.Logger) (*mq.RabbitMQ, error) {
	rabbit, err := mq.NewConnection(cfg.RabbitMQ, logger)
	if err != nil {
		return nil, err
	}

	if err := rabbit.DeclareQueues(cfg.RabbitMQ.Queue); err != nil {
		logger.Error("declare queue failed", zap.Error(err))
		_ = rabbit.Close()
		return nil, err
	}

	mqConsumer, err := rabbit.CreateConsumer()
	if err != nil {
		_ = rabbit.Close()
		return nil, err
	}

	consumer := consumers.NewLedgerEventConsumer(reconcile, mqConsumer, cfg.RabbitMQ.Queue, cfg.Reconcile.Prefetch, logger)
	go func() {
		if err := consumer.Consume(ctx); err != nil && ctx.Err() == nil {
			logger.Error("consumer exited", zap.Error(err))
		}
	}()

	return rabbit, nil
}

func sweepLoop(ctx context.Context, cfg config.Reconcile, reconcile service.ReconciliationService, logger *zap.Logger) {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			result, err := reconcile.Sweep(ctx, cfg.BatchSize)
			if err != nil {
				logger.Error("reconciliation sweep failed", zap.Error(err))
				continue
			}

			logger.Info("reconciliation sweep finished",
				zap.Int("checked", result.Checked),
				zap.Int("drifting", len(result.Drifting)),
			)
		case <-ctx.Done():
			logger.Info("sweep context cancelled")
			return
		}
	}
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return database.NewConnection(ctx, cfg, logger)
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}
