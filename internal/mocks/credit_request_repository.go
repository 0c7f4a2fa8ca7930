package mocks

import (
	"context"

	"github.com/Behyna/credit-ledger/internal/model"
	"github.com/Behyna/credit-ledger/internal/repository"
	"github.com/stretchr/testify/mock"
)

type CreditRequestRepository struct {
	mock.Mock
}

func (m *CreditRequestRepository) Create(ctx context.Context, req *model.CreditRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *CreditRequestRepository) FindByID(ctx context.Context, id int64) (model.CreditRequest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.CreditRequest), args.Error(1)
}

func (m *CreditRequestRepository) LockByID(ctx context.Context, id int64) (model.CreditRequest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.CreditRequest), args.Error(1)
}

func (m *CreditRequestRepository) UpdateDecision(ctx context.Context, req *model.CreditRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *CreditRequestRepository) List(ctx context.Context, filter repository.CreditRequestFilter) ([]model.CreditRequest, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.CreditRequest), args.Get(1).(int64), args.Error(2)
}
