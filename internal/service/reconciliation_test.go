package service_test

import (
	"context"
	"testing"

	"github.com/Behyna/credit-ledger/internal/constants"
	"github.com/Behyna/credit-ledger/internal/metrics"
	"github.com/Behyna/credit-ledger/internal/mocks"
	"github.com/Behyna/credit-ledger/internal/repository"
	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReconciliation_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("equal", func(t *testing.T) {
		repo := &mocks.ReconciliationRepository{}
		svc := service.NewReconciliationService(repo, zap.NewNop(), metrics.NewMetrics(prometheus.NewRegistry()))

		repo.On("BySeller", ctx, int64(1)).
			Return(repository.LedgerBalance{SellerID: 1, Credit: 5000, Charge: 10000, Sell: 5000}, nil)

		report, err := svc.Check(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, service.ReconciliationReport{
			SellerID: 1, Charge: 10000, Sell: 5000, TransactionBalance: 5000, Credit: 5000, Equal: true,
		}, report)
	})

	t.Run("drift", func(t *testing.T) {
		repo := &mocks.ReconciliationRepository{}
		svc := service.NewReconciliationService(repo, zap.NewNop(), metrics.NewMetrics(prometheus.NewRegistry()))

		repo.On("BySeller", ctx, int64(1)).
			Return(repository.LedgerBalance{SellerID: 1, Credit: 10, Charge: 5}, nil)

		report, err := svc.Check(ctx, 1)

		require.NoError(t, err)
		assert.False(t, report.Equal)
		assert.Equal(t, int64(5), report.TransactionBalance)
	})

	t.Run("missing seller", func(t *testing.T) {
		repo := &mocks.ReconciliationRepository{}
		svc := service.NewReconciliationService(repo, zap.NewNop(), metrics.NewMetrics(prometheus.NewRegistry()))

		repo.On("BySeller", ctx, int64(1)).Return(repository.LedgerBalance{}, repository.ErrSellerNotFound)

		_, err := svc.Check(ctx, 1)

		requireCode(t, err, constants.ErrCodeSellerNotFound)
	})
}

func TestReconciliation_Sweep(t *testing.T) {
	ctx := context.Background()

	t.Run("pages until a short batch", func(t *testing.T) {
		repo := &mocks.ReconciliationRepository{}
		svc := service.NewReconciliationService(repo, zap.NewNop(), metrics.NewMetrics(prometheus.NewRegistry()))

		repo.On("Batch", ctx, int64(0), 2).Return([]repository.LedgerBalance{
			{SellerID: 1, Credit: 0},
			{SellerID: 2, Credit: 3, Charge: 1},
		}, nil)
		repo.On("Batch", ctx, int64(2), 2).Return([]repository.LedgerBalance{
			{SellerID: 5, Credit: 4, Charge: 4},
		}, nil)

		result, err := svc.Sweep(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Checked)
		require.Len(t, result.Drifting, 1)
		assert.Equal(t, int64(2), result.Drifting[0].SellerID)
		repo.AssertExpectations(t)
	})

	t.Run("invalid batch size", func(t *testing.T) {
		repo := &mocks.ReconciliationRepository{}
		svc := service.NewReconciliationService(repo, zap.NewNop(), metrics.NewMetrics(prometheus.NewRegistry()))

		_, err := svc.Sweep(ctx, 0)

		requireCode(t, err, constants.ErrCodeInvalidInput)
		repo.AssertNotCalled(t, "Batch")
	})
}
