package mocks

import (
	"context"

	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/stretchr/testify/mock"
)

type ReconciliationService struct {
	mock.Mock
}

func (m *ReconciliationService) Check(ctx context.Context, sellerID int64) (service.ReconciliationReport, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(service.ReconciliationReport), args.Error(1)
}

func (m *ReconciliationService) Sweep(ctx context.Context, batchSize int) (service.SweepResult, error) {
	args := m.Called(ctx, batchSize)
	return args.Get(0).(service.SweepResult), args.Error(1)
}
