package consumers

import (
	"context"
	"encoding/json"

	"github.com/Behyna/credit-ledger/internal/constants"
	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/Behyna/credit-ledger/pkg/mq"
	"go.uber.org/zap"
)

type LedgerEventConsumer interface {
	Consume(ctx context.Context) error
}

type ledgerEventConsumer struct {
	service  service.ReconciliationService
	consumer mq.Consumer
	queue    string
	prefetch int
	logger   *zap.Logger
}

func NewLedgerEventConsumer(service service.ReconciliationService, consumer mq.Consumer, queue string,
	prefetch int, logger *zap.Logger) LedgerEventConsumer {
	return &ledgerEventConsumer{
		service:  service,
		consumer: consumer,
		queue:    queue,
		prefetch: prefetch,
		logger:   logger,
	}
}

func (l *ledgerEventConsumer) Consume(ctx context.Context) error {
	return l.consumer.Consume(ctx, l.prefetch, l.queue, l.handleMessage)
}

// handleMessage re-checks the seller touched by the event. A drift is only
// reported, never repaired.
func (l *ledgerEventConsumer) handleMessage(ctx context.Context, body []byte) error {
	var event service.LedgerEvent
	if err := json.Unmarshal(body, &event); err != nil {
		l.logger.Warn("invalid ledger event", zap.ByteString("body", body), zap.Error(err))
		return err
	}

	report, err := l.service.Check(ctx, event.SellerID)
	if err != nil {
		switch service.ErrorCode(err) {
		case constants.ErrCodeSellerNotFound:
			l.logger.Warn("ledger event for unknown seller", zap.Int64("sellerID", event.SellerID))
			return err
		case constants.ErrCodeBusy, constants.ErrCodeOperationFailed:
			return mq.Temporary(err)
		default:
			return err
		}
	}

	if !report.Equal {
		l.logger.Error("ledger drift detected",
			zap.Int64("sellerID", report.SellerID),
			zap.Int64("credit", report.Credit),
			zap.Int64("transactionBalance", report.TransactionBalance),
			zap.Int64("transactionID", event.TransactionID),
			zap.String("trackID", event.TrackID),
		)
	}

	return nil
}
