package mocks

import (
	"context"

	"github.com/Behyna/credit-ledger/internal/model"
	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/stretchr/testify/mock"
)

type LedgerService struct {
	mock.Mock
}

func (m *LedgerService) CreateSeller(ctx context.Context, cmd service.CreateSellerCommand) (model.Seller, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.Seller), args.Error(1)
}

func (m *LedgerService) GetSeller(ctx context.Context, sellerID int64) (model.Seller, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(model.Seller), args.Error(1)
}

func (m *LedgerService) GetSellerByUserID(ctx context.Context, userID string) (model.Seller, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Seller), args.Error(1)
}

func (m *LedgerService) ListTransactions(ctx context.Context, query service.ListTransactionsQuery) (service.TransactionsResult, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(service.TransactionsResult), args.Error(1)
}

func (m *LedgerService) Deposit(ctx context.Context, cmd service.DepositCommand) (service.MutationResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.MutationResult), args.Error(1)
}

func (m *LedgerService) ChargeSale(ctx context.Context, cmd service.ChargeSaleCommand) (service.MutationResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.MutationResult), args.Error(1)
}
