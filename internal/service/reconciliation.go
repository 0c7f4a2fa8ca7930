package service

import (
	"context"
	"time"

	"github.com/Behyna/credit-ledger/internal/constants"
	"github.com/Behyna/credit-ledger/internal/metrics"
	"github.com/Behyna/credit-ledger/internal/repository"
	"go.uber.org/zap"
)

type ReconciliationService interface {
	Check(ctx context.Context, sellerID int64) (ReconciliationReport, error)
	Sweep(ctx context.Context, batchSize int) (SweepResult, error)
}

type reconciliationService struct {
	repo    repository.ReconciliationRepository
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewReconciliationService(repo repository.ReconciliationRepository, log *zap.Logger, metrics *metrics.Metrics) ReconciliationService {
	return &reconciliationService{repo: repo, log: log, metrics: metrics}
}

func newReport(b repository.LedgerBalance) ReconciliationReport {
	balance := b.Charge - b.Sell

	return ReconciliationReport{
		SellerID:           b.SellerID,
		Charge:             b.Charge,
		Sell:               b.Sell,
		TransactionBalance: balance,
		Credit:             b.Credit,
		Equal:              balance == b.Credit,
	}
}

// Check compares one seller's credit with its ledger. It never writes.
func (s *reconciliationService) Check(ctx context.Context, sellerID int64) (ReconciliationReport, error) {
	start := time.Now()

	balance, err := s.repo.BySeller(ctx, sellerID)
	if err != nil {
		s.metrics.RecordDBQuery("select", "reconciliation", "error", time.Since(start))
		return ReconciliationReport{}, fromRepository(err)
	}

	s.metrics.RecordDBQuery("select", "reconciliation", "success", time.Since(start))

	report := newReport(balance)
	s.metrics.RecordReconciliationCheck(report.Equal)

	if !report.Equal {
		s.log.Warn("Seller credit drifted from ledger",
			zap.Int64("sellerID", report.SellerID),
			zap.Int64("credit", report.Credit),
			zap.Int64("transactionBalance", report.TransactionBalance),
		)
	}

	return report, nil
}

// Sweep pages through every seller in id order and collects the ones whose
// credit differs from the ledger.
func (s *reconciliationService) Sweep(ctx context.Context, batchSize int) (SweepResult, error) {
	if batchSize <= 0 {
		return SweepResult{}, NewServiceError(constants.ErrCodeInvalidInput, ErrInvalidBatchSize)
	}

	start := time.Now()
	result := SweepResult{Drifting: []ReconciliationReport{}}

	var afterID int64
	for {
		if err := ctx.Err(); err != nil {
			return result, fromRepository(err)
		}

		batch, err := s.repo.Batch(ctx, afterID, batchSize)
		if err != nil {
			s.log.Error("Reconciliation batch failed", zap.Int64("afterID", afterID), zap.Error(err))
			return result, fromRepository(err)
		}

		for _, b := range batch {
			report := newReport(b)
			s.metrics.RecordReconciliationCheck(report.Equal)

			if !report.Equal {
				result.Drifting = append(result.Drifting, report)
				s.log.Warn("Seller credit drifted from ledger",
					zap.Int64("sellerID", report.SellerID),
					zap.Int64("credit", report.Credit),
					zap.Int64("transactionBalance", report.TransactionBalance),
				)
			}
		}

		result.Checked += len(batch)

		if len(batch) < batchSize {
			break
		}
		afterID = batch[len(batch)-1].SellerID
	}

	duration := time.Since(start)
	s.metrics.RecordReconciliationSweep(len(result.Drifting), duration)

	s.log.Info("Reconciliation sweep finished",
		zap.Int("checked", result.Checked),
		zap.Int("drifting", len(result.Drifting)),
		zap.Duration("duration", duration),
	)

	return result, nil
}
