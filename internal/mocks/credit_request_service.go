package mocks

import (
	"context"

	"github.com/Behyna/credit-ledger/internal/model"
	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/stretchr/testify/mock"
)

type CreditRequestService struct {
	mock.Mock
}

func (m *CreditRequestService) Submit(ctx context.Context, cmd service.SubmitCreditRequestCommand) (model.CreditRequest, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.CreditRequest), args.Error(1)
}

func (m *CreditRequestService) Approve(ctx context.Context, cmd service.DecisionCommand) (service.DecisionResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.DecisionResult), args.Error(1)
}

func (m *CreditRequestService) Reject(ctx context.Context, cmd service.DecisionCommand) (service.DecisionResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.DecisionResult), args.Error(1)
}

func (m *CreditRequestService) Decide(ctx context.Context, cmd service.DecideCreditRequestCommand) (service.DecisionResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.DecisionResult), args.Error(1)
}

func (m *CreditRequestService) List(ctx context.Context, query service.ListCreditRequestsQuery) (service.CreditRequestsResult, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(service.CreditRequestsResult), args.Error(1)
}
