package mocks

import (
	"context"

	"github.com/Behyna/credit-ledger/internal/model"
	"github.com/stretchr/testify/mock"
)

type SellerRepository struct {
	mock.Mock
}

func (m *SellerRepository) Create(ctx context.Context, seller *model.Seller) error {
	args := m.Called(ctx, seller)
	return args.Error(0)
}

func (m *SellerRepository) FindByID(ctx context.Context, id int64) (model.Seller, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Seller), args.Error(1)
}

func (m *SellerRepository) FindByUserID(ctx context.Context, userID string) (model.Seller, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Seller), args.Error(1)
}

func (m *SellerRepository) LockByID(ctx context.Context, id int64) (model.Seller, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Seller), args.Error(1)
}

func (m *SellerRepository) AddCredit(ctx context.Context, id int64, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *SellerRepository) DeductCredit(ctx context.Context, id int64, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}
