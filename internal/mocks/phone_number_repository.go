package mocks

import (
	"context"

	"github.com/Behyna/credit-ledger/internal/model"
	"github.com/stretchr/testify/mock"
)

type PhoneNumberRepository struct {
	mock.Mock
}

func (m *PhoneNumberRepository) GetOrCreate(ctx context.Context, phone string) (model.PhoneNumber, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(model.PhoneNumber), args.Error(1)
}

func (m *PhoneNumberRepository) FindByNumber(ctx context.Context, phone string) (model.PhoneNumber, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(model.PhoneNumber), args.Error(1)
}
