package mocks

import (
	"context"

	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/stretchr/testify/mock"
)

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, event service.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
