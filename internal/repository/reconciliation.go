package repository

import (
	"context"

	"gorm.io/gorm"
)

// LedgerBalance is one seller's cached credit next to the sums of its
// ledger entries, read in a single statement.
type LedgerBalance struct {
	SellerID int64
	Credit   int64
	Charge   int64
	Sell     int64
}

type ReconciliationRepository interface {
	BySeller(ctx context.Context, sellerID int64) (LedgerBalance, error)
	Batch(ctx context.Context, afterID int64, limit int) ([]LedgerBalance, error)
}

type reconciliation struct {
	db *gorm.DB
}

func NewReconciliationRepository(db *gorm.DB) ReconciliationRepository {
	return &reconciliation{db: db}
}

const ledgerBalanceSelect = `
SELECT s.id AS seller_id,
       s.credit AS credit,
       COALESCE(SUM(CASE WHEN t.type = 'DEPOSIT' THEN t.amount ELSE 0 END), 0) AS charge,
       COALESCE(SUM(CASE WHEN t.type = 'SELL' THEN t.amount ELSE 0 END), 0) AS sell
FROM sellers s
LEFT JOIN transactions t ON t.seller_id = s.id
`

func (r *reconciliation) BySeller(ctx context.Context, sellerID int64) (LedgerBalance, error) {
	var rows []LedgerBalance

	err := GetTx(ctx, r.db).
		Raw(ledgerBalanceSelect+"WHERE s.id = ?\nGROUP BY s.id, s.credit", sellerID).
		Scan(&rows).Error
	if err != nil {
		return LedgerBalance{}, translate(err)
	}

	if len(rows) == 0 {
		return LedgerBalance{}, ErrSellerNotFound
	}

	return rows[0], nil
}

// Batch returns up to limit sellers with id > afterID in id order.
func (r *reconciliation) Batch(ctx context.Context, afterID int64, limit int) ([]LedgerBalance, error) {
	var rows []LedgerBalance

	err := GetTx(ctx, r.db).
		Raw(ledgerBalanceSelect+"WHERE s.id > ?\nGROUP BY s.id, s.credit\nORDER BY s.id\nLIMIT ?", afterID, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	return rows, nil
}
