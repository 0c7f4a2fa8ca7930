package publishers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/Behyna/credit-ledger/pkg/mq"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultQueue = "ledger.events"

type ledgerEventPublisher struct {
	publisher mq.Publisher
	queue     string
	logger    *zap.Logger
}

func NewLedgerEventPublisher(publisher mq.Publisher, queue string, logger *zap.Logger) service.EventPublisher {
	if queue == "" {
		queue = DefaultQueue
	}

	return &ledgerEventPublisher{publisher: publisher, queue: queue, logger: logger}
}

func (p *ledgerEventPublisher) Publish(ctx context.Context, event service.LedgerEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal ledger event: %w", err)
	}

	msg := mq.Message{
		ID:   uuid.NewString(),
		Type: event.Type,
		Body: body,
	}

	if err := p.publisher.Publish(ctx, p.queue, msg); err != nil {
		return err
	}

	p.logger.Debug("Ledger event published",
		zap.String("messageID", msg.ID),
		zap.String("type", event.Type),
		zap.Int64("sellerID", event.SellerID),
		zap.Int64("transactionID", event.TransactionID),
	)

	return nil
}
