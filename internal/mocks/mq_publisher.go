package mocks

import (
	"context"

	"github.com/Behyna/credit-ledger/pkg/mq"
	"github.com/stretchr/testify/mock"
)

type MQPublisher struct {
	mock.Mock
}

func (m *MQPublisher) Publish(ctx context.Context, queue string, msg mq.Message) error {
	args := m.Called(ctx, queue, msg)
	return args.Error(0)
}

func (m *MQPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
