package repository

import (
	"context"

	"github.com/Behyna/credit-ledger/internal/model"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	ListBySeller(ctx context.Context, sellerID int64, limit, offset int) ([]model.Transaction, error)
	CountBySeller(ctx context.Context, sellerID int64) (int64, error)
}

type transaction struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transaction{db: db}
}

func (t *transaction) Create(ctx context.Context, tx *model.Transaction) error {
	db := GetTx(ctx, t.db)
	return translate(db.Create(tx).Error)
}

func (t *transaction) ListBySeller(ctx context.Context, sellerID int64, limit, offset int) ([]model.Transaction, error) {
	var txs []model.Transaction

	err := GetTx(ctx, t.db).Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, translate(err)
	}

	return txs, nil
}

func (t *transaction) CountBySeller(ctx context.Context, sellerID int64) (int64, error) {
	var count int64

	err := GetTx(ctx, t.db).Model(&model.Transaction{}).
		Where("seller_id = ?", sellerID).
		Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}

	return count, nil
}
