package service

import (
	"context"
	"time"

	"github.com/Behyna/credit-ledger/internal/metrics"
	"go.uber.org/zap"
)

const (
	EventTypeCharge = "charge"
	EventTypeSell   = "sell"
)

// LedgerEvent describes one committed balance change.
type LedgerEvent struct {
	Type            string    `json:"type"`
	SellerID        int64     `json:"seller_id"`
	Phone           string    `json:"phone,omitempty"`
	Amount          int64     `json:"amount"`
	Credit          int64     `json:"credit"`
	TransactionID   int64     `json:"transaction_id"`
	CreditRequestID *int64    `json:"credit_request_id,omitempty"`
	TrackID         string    `json:"track_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
}

// NopEventPublisher drops every event. It is used when no broker is configured.
type NopEventPublisher struct{}

func (NopEventPublisher) Publish(context.Context, LedgerEvent) error { return nil }

const publishTimeout = 5 * time.Second

type eventSink struct {
	publisher EventPublisher
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// emit runs after commit. A broker failure is logged and counted; the
// committed operation still succeeds.
func (s eventSink) emit(ctx context.Context, event LedgerEvent) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := s.publisher.Publish(ctx, event)
	s.metrics.RecordEventPublished(event.Type, err)

	if err != nil {
		s.log.Warn("Failed to publish ledger event",
			zap.String("type", event.Type),
			zap.Int64("sellerID", event.SellerID),
			zap.Int64("transactionID", event.TransactionID),
			zap.String("trackID", event.TrackID),
			zap.Error(err),
		)
	}
}
