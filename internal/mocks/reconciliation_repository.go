package mocks

import (
	"context"

	"github.com/Behyna/credit-ledger/internal/repository"
	"github.com/stretchr/testify/mock"
)

type ReconciliationRepository struct {
	mock.Mock
}

func (m *ReconciliationRepository) BySeller(ctx context.Context, sellerID int64) (repository.LedgerBalance, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(repository.LedgerBalance), args.Error(1)
}

func (m *ReconciliationRepository) Batch(ctx context.Context, afterID int64, limit int) ([]repository.LedgerBalance, error) {
	args := m.Called(ctx, afterID, limit)
	return args.Get(0).([]repository.LedgerBalance), args.Error(1)
}
