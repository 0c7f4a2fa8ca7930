package mocks

import (
	"context"

	"github.com/Behyna/credit-ledger/internal/model"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepository) ListBySeller(ctx context.Context, sellerID int64, limit, offset int) ([]model.Transaction, error) {
	args := m.Called(ctx, sellerID, limit, offset)
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *TransactionRepository) CountBySeller(ctx context.Context, sellerID int64) (int64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(int64), args.Error(1)
}
