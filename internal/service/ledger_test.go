package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Behyna/credit-ledger/internal/constants"
	"github.com/Behyna/credit-ledger/internal/metrics"
	"github.com/Behyna/credit-ledger/internal/mocks"
	"github.com/Behyna/credit-ledger/internal/model"
	"github.com/Behyna/credit-ledger/internal/repository"
	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type ledgerMocks struct {
	txManager *mocks.TxManager
	sellers   *mocks.SellerRepository
	txs       *mocks.TransactionRepository
	phones    *mocks.PhoneNumberRepository
	events    *mocks.EventPublisher
}

func newLedgerService() (service.LedgerService, ledgerMocks) {
	m := ledgerMocks{
		txManager: &mocks.TxManager{},
		sellers:   &mocks.SellerRepository{},
		txs:       &mocks.TransactionRepository{},
		phones:    &mocks.PhoneNumberRepository{},
		events:    &mocks.EventPublisher{},
	}

	svc := service.NewLedgerService(m.txManager, m.sellers, m.txs, m.phones, m.events,
		zap.NewNop(), metrics.NewMetrics(prometheus.NewRegistry()))

	return svc, m
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()

	var serviceErr service.Error
	require.True(t, errors.As(err, &serviceErr), "expected service.Error, got %v", err)
	assert.Equal(t, code, serviceErr.Code)
}

func TestLedger_Deposit(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non positive amount before touching the store", func(t *testing.T) {
		svc, m := newLedgerService()

		for _, amount := range []int64{0, -5} {
			_, err := svc.Deposit(ctx, service.DepositCommand{SellerID: 1, Amount: amount})
			requireCode(t, err, constants.ErrCodeInvalidInput)
		}

		m.txManager.AssertNotCalled(t, "WithTx")
	})

	t.Run("increments credit and appends a deposit", func(t *testing.T) {
		svc, m := newLedgerService()

		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.sellers.On("LockByID", mock.AnythingOfType("*context.valueCtx"), int64(1)).
			Return(model.Seller{ID: 1, UserID: "u1", Credit: 100}, nil)
		m.sellers.On("AddCredit", mock.AnythingOfType("*context.valueCtx"), int64(1), int64(50)).Return(nil)
		m.txs.On("Create", mock.AnythingOfType("*context.valueCtx"),
			mock.MatchedBy(func(tx *model.Transaction) bool {
				return tx.SellerID == 1 && tx.Type == model.TxTypeDeposit && tx.Amount == 50 && tx.Phone == nil
			})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Transaction).ID = 10
		}).Return(nil)
		m.events.On("Publish", mock.Anything, mock.MatchedBy(func(e service.LedgerEvent) bool {
			return e.Type == service.EventTypeCharge && e.SellerID == 1 && e.Amount == 50 &&
				e.Credit == 150 && e.TransactionID == 10 && e.TrackID == "track-1"
		})).Return(nil)

		result, err := svc.Deposit(ctx, service.DepositCommand{SellerID: 1, Amount: 50, TrackID: "track-1"})

		require.NoError(t, err)
		assert.Equal(t, int64(150), result.Seller.Credit)
		assert.Equal(t, int64(10), result.TransactionID)
		assert.False(t, result.TransactionTime.IsZero())

		m.txManager.AssertExpectations(t)
		m.sellers.AssertExpectations(t)
		m.txs.AssertExpectations(t)
		m.events.AssertExpectations(t)
	})

	t.Run("unknown seller", func(t *testing.T) {
		svc, m := newLedgerService()

		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.sellers.On("LockByID", mock.AnythingOfType("*context.valueCtx"), int64(9)).
			Return(model.Seller{}, repository.ErrSellerNotFound)

		_, err := svc.Deposit(ctx, service.DepositCommand{SellerID: 9, Amount: 50})

		requireCode(t, err, constants.ErrCodeSellerNotFound)
		m.sellers.AssertNotCalled(t, "AddCredit")
		m.txs.AssertNotCalled(t, "Create")
		m.events.AssertNotCalled(t, "Publish")
	})

	t.Run("lock timeout is busy", func(t *testing.T) {
		svc, m := newLedgerService()

		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.sellers.On("LockByID", mock.AnythingOfType("*context.valueCtx"), int64(1)).
			Return(model.Seller{}, repository.ErrLockTimeout)

		_, err := svc.Deposit(ctx, service.DepositCommand{SellerID: 1, Amount: 50})

		requireCode(t, err, constants.ErrCodeBusy)
		m.sellers.AssertNotCalled(t, "AddCredit")
	})

	t.Run("transaction insert failure is reported", func(t *testing.T) {
		svc, m := newLedgerService()

		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.sellers.On("LockByID", mock.AnythingOfType("*context.valueCtx"), int64(1)).
			Return(model.Seller{ID: 1, Credit: 0}, nil)
		m.sellers.On("AddCredit", mock.AnythingOfType("*context.valueCtx"), int64(1), int64(50)).Return(nil)
		m.txs.On("Create", mock.AnythingOfType("*context.valueCtx"), mock.AnythingOfType("*model.Transaction")).
			Return(errors.New("disk full"))

		_, err := svc.Deposit(ctx, service.DepositCommand{SellerID: 1, Amount: 50})

		requireCode(t, err, constants.ErrCodeOperationFailed)
		m.events.AssertNotCalled(t, "Publish")
	})
}

func TestLedger_ChargeSale(t *testing.T) {
	ctx := context.Background()

	t.Run("validates input before touching the store", func(t *testing.T) {
		svc, m := newLedgerService()

		cases := []service.ChargeSaleCommand{
			{SellerID: 1, Phone: "09123456789", Amount: 0},
			{SellerID: 1, Phone: "09123456789", Amount: -1},
			{SellerID: 1, Phone: "0912345678", Amount: 10},
			{SellerID: 1, Phone: "08123456789", Amount: 10},
			{SellerID: 1, Phone: "0912345678a", Amount: 10},
			{SellerID: 1, Phone: "", Amount: 10},
		}

		for _, cmd := range cases {
			_, err := svc.ChargeSale(ctx, cmd)
			requireCode(t, err, constants.ErrCodeInvalidInput)
		}

		m.txManager.AssertNotCalled(t, "WithTx")
	})

	t.Run("debits credit, appends a sale and records the phone", func(t *testing.T) {
		svc, m := newLedgerService()

		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.sellers.On("LockByID", mock.AnythingOfType("*context.valueCtx"), int64(1)).
			Return(model.Seller{ID: 1, Credit: 10000}, nil)
		m.sellers.On("DeductCredit", mock.AnythingOfType("*context.valueCtx"), int64(1), int64(5000)).Return(nil)
		m.txs.On("Create", mock.AnythingOfType("*context.valueCtx"),
			mock.MatchedBy(func(tx *model.Transaction) bool {
				return tx.Type == model.TxTypeSell && tx.Amount == 5000 &&
					tx.Phone != nil && *tx.Phone == "09123456789"
			})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Transaction).ID = 7
		}).Return(nil)
		m.phones.On("GetOrCreate", mock.AnythingOfType("*context.valueCtx"), "09123456789").
			Return(model.PhoneNumber{ID: 1, PhoneNumber: "09123456789"}, nil)
		m.events.On("Publish", mock.Anything, mock.MatchedBy(func(e service.LedgerEvent) bool {
			return e.Type == service.EventTypeSell && e.Phone == "09123456789" && e.Credit == 5000
		})).Return(nil)

		result, err := svc.ChargeSale(ctx, service.ChargeSaleCommand{SellerID: 1, Phone: "09123456789", Amount: 5000})

		require.NoError(t, err)
		assert.Equal(t, int64(5000), result.Seller.Credit)
		assert.Equal(t, int64(7), result.TransactionID)

		m.sellers.AssertExpectations(t)
		m.txs.AssertExpectations(t)
		m.phones.AssertExpectations(t)
		m.events.AssertExpectations(t)
	})

	t.Run("insufficient credit writes nothing", func(t *testing.T) {
		svc, m := newLedgerService()

		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.sellers.On("LockByID", mock.AnythingOfType("*context.valueCtx"), int64(1)).
			Return(model.Seller{ID: 1, Credit: 5000}, nil)

		_, err := svc.ChargeSale(ctx, service.ChargeSaleCommand{SellerID: 1, Phone: "09123456789", Amount: 20000})

		requireCode(t, err, constants.ErrCodeInsufficientCredit)
		assert.ErrorIs(t, err, service.ErrInsufficientCredit)
		m.sellers.AssertNotCalled(t, "DeductCredit")
		m.txs.AssertNotCalled(t, "Create")
		m.phones.AssertNotCalled(t, "GetOrCreate")
		m.events.AssertNotCalled(t, "Publish")
	})

	t.Run("guarded update that matches no row is insufficient credit", func(t *testing.T) {
		svc, m := newLedgerService()

		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.sellers.On("LockByID", mock.AnythingOfType("*context.valueCtx"), int64(1)).
			Return(model.Seller{ID: 1, Credit: 50}, nil)
		m.sellers.On("DeductCredit", mock.AnythingOfType("*context.valueCtx"), int64(1), int64(50)).
			Return(repository.ErrNoRowsAffected)

		_, err := svc.ChargeSale(ctx, service.ChargeSaleCommand{SellerID: 1, Phone: "09123456789", Amount: 50})

		requireCode(t, err, constants.ErrCodeInsufficientCredit)
		m.txs.AssertNotCalled(t, "Create")
	})

	t.Run("phone registration failure rolls back", func(t *testing.T) {
		svc, m := newLedgerService()

		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.sellers.On("LockByID", mock.AnythingOfType("*context.valueCtx"), int64(1)).
			Return(model.Seller{ID: 1, Credit: 50}, nil)
		m.sellers.On("DeductCredit", mock.AnythingOfType("*context.valueCtx"), int64(1), int64(50)).Return(nil)
		m.txs.On("Create", mock.AnythingOfType("*context.valueCtx"), mock.AnythingOfType("*model.Transaction")).Return(nil)
		m.phones.On("GetOrCreate", mock.AnythingOfType("*context.valueCtx"), "09123456789").
			Return(model.PhoneNumber{}, repository.ErrLockTimeout)

		_, err := svc.ChargeSale(ctx, service.ChargeSaleCommand{SellerID: 1, Phone: "09123456789", Amount: 50})

		requireCode(t, err, constants.ErrCodeBusy)
		m.events.AssertNotCalled(t, "Publish")
	})

	t.Run("publish failure does not fail the sale", func(t *testing.T) {
		svc, m := newLedgerService()

		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.sellers.On("LockByID", mock.AnythingOfType("*context.valueCtx"), int64(1)).
			Return(model.Seller{ID: 1, Credit: 50}, nil)
		m.sellers.On("DeductCredit", mock.AnythingOfType("*context.valueCtx"), int64(1), int64(50)).Return(nil)
		m.txs.On("Create", mock.AnythingOfType("*context.valueCtx"), mock.AnythingOfType("*model.Transaction")).Return(nil)
		m.phones.On("GetOrCreate", mock.AnythingOfType("*context.valueCtx"), "09123456789").
			Return(model.PhoneNumber{ID: 1}, nil)
		m.events.On("Publish", mock.Anything, mock.AnythingOfType("service.LedgerEvent")).
			Return(errors.New("broker unavailable"))

		result, err := svc.ChargeSale(ctx, service.ChargeSaleCommand{SellerID: 1, Phone: "09123456789", Amount: 50})

		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Seller.Credit)
		m.events.AssertExpectations(t)
	})
}

func TestLedger_TransactionFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("deposit deadline is busy", func(t *testing.T) {
		svc, m := newLedgerService()
		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(context.DeadlineExceeded)

		_, err := svc.Deposit(ctx, service.DepositCommand{SellerID: 1, Amount: 100})

		requireCode(t, err, constants.ErrCodeBusy)
		m.events.AssertNotCalled(t, "Publish")
	})

	t.Run("charge sale commit failure is typed", func(t *testing.T) {
		svc, m := newLedgerService()
		m.txManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(errors.New("driver: bad connection"))

		_, err := svc.ChargeSale(ctx, service.ChargeSaleCommand{SellerID: 1, Phone: "09123456789", Amount: 100})

		requireCode(t, err, constants.ErrCodeOperationFailed)
	})
}

func TestLedger_CreateSeller(t *testing.T) {
	ctx := context.Background()

	t.Run("creates seller", func(t *testing.T) {
		svc, m := newLedgerService()

		m.sellers.On("Create", ctx, mock.MatchedBy(func(s *model.Seller) bool {
			return s.UserID == "user-1" && s.Credit == 0
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Seller).ID = 3
		}).Return(nil)

		seller, err := svc.CreateSeller(ctx, service.CreateSellerCommand{UserID: "user-1"})

		require.NoError(t, err)
		assert.Equal(t, int64(3), seller.ID)
		m.sellers.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc, m := newLedgerService()

		m.sellers.On("Create", ctx, mock.AnythingOfType("*model.Seller")).Return(repository.ErrSellerExists)

		_, err := svc.CreateSeller(ctx, service.CreateSellerCommand{UserID: "user-1"})

		requireCode(t, err, constants.ErrCodeSellerExists)
	})

	t.Run("empty user id", func(t *testing.T) {
		svc, m := newLedgerService()

		_, err := svc.CreateSeller(ctx, service.CreateSellerCommand{})

		requireCode(t, err, constants.ErrCodeInvalidInput)
		m.sellers.AssertNotCalled(t, "Create")
	})
}

func TestLedger_ListTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("applies default page size", func(t *testing.T) {
		svc, m := newLedgerService()

		m.sellers.On("FindByID", ctx, int64(1)).Return(model.Seller{ID: 1}, nil)
		m.txs.On("ListBySeller", ctx, int64(1), 20, 0).
			Return([]model.Transaction{{ID: 2}, {ID: 1}}, nil)
		m.txs.On("CountBySeller", ctx, int64(1)).Return(int64(2), nil)

		result, err := svc.ListTransactions(ctx, service.ListTransactionsQuery{SellerID: 1})

		require.NoError(t, err)
		assert.Len(t, result.Transactions, 2)
		assert.Equal(t, int64(2), result.Total)
		assert.Equal(t, 20, result.Limit)
		assert.Equal(t, 0, result.Offset)
		m.txs.AssertExpectations(t)
	})

	t.Run("caps page size", func(t *testing.T) {
		svc, m := newLedgerService()

		m.sellers.On("FindByID", ctx, int64(1)).Return(model.Seller{ID: 1}, nil)
		m.txs.On("ListBySeller", ctx, int64(1), 100, 40).Return([]model.Transaction{}, nil)
		m.txs.On("CountBySeller", ctx, int64(1)).Return(int64(0), nil)

		result, err := svc.ListTransactions(ctx, service.ListTransactionsQuery{SellerID: 1, Limit: 1000, Offset: 40})

		require.NoError(t, err)
		assert.Equal(t, 100, result.Limit)
		assert.Equal(t, 40, result.Offset)
		m.txs.AssertExpectations(t)
	})

	t.Run("unknown seller", func(t *testing.T) {
		svc, m := newLedgerService()

		m.sellers.On("FindByID", ctx, int64(5)).Return(model.Seller{}, repository.ErrSellerNotFound)

		_, err := svc.ListTransactions(ctx, service.ListTransactionsQuery{SellerID: 5})

		requireCode(t, err, constants.ErrCodeSellerNotFound)
		m.txs.AssertNotCalled(t, "ListBySeller")
	})
}
