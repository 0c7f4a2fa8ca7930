package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/credit-ledger/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SellerRepository interface {
	Create(ctx context.Context, seller *model.Seller) error
	FindByID(ctx context.Context, id int64) (model.Seller, error)
	FindByUserID(ctx context.Context, userID string) (model.Seller, error)
	LockByID(ctx context.Context, id int64) (model.Seller, error)
	AddCredit(ctx context.Context, id int64, amount int64) error
	DeductCredit(ctx context.Context, id int64, amount int64) error
}

type seller struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) SellerRepository {
	return &seller{db: db}
}

func (r *seller) Create(ctx context.Context, s *model.Seller) error {
	db := GetTx(ctx, r.db)

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(s)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return ErrSellerExists
		}
		return translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrSellerExists
	}

	return nil
}

func (r *seller) FindByID(ctx context.Context, id int64) (model.Seller, error) {
	return r.first(GetTx(ctx, r.db).Where("id = ?", id))
}

func (r *seller) FindByUserID(ctx context.Context, userID string) (model.Seller, error) {
	return r.first(GetTx(ctx, r.db).Where("user_id = ?", userID))
}

// LockByID reads the seller row with SELECT ... FOR UPDATE. It must be called
// inside WithTx; the lock is released on commit or rollback.
func (r *seller) LockByID(ctx context.Context, id int64) (model.Seller, error) {
	db := GetTx(ctx, r.db).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	return r.first(db.Where("id = ?", id))
}

func (r *seller) first(db *gorm.DB) (model.Seller, error) {
	var s model.Seller

	err := db.First(&s).Error
	if err == nil {
		return s, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Seller{}, ErrSellerNotFound
	}

	return model.Seller{}, translate(err)
}

func (r *seller) AddCredit(ctx context.Context, id int64, amount int64) error {
	db := GetTx(ctx, r.db)

	result := db.Model(&model.Seller{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"credit":     gorm.Expr("credit + ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrSellerNotFound
	}

	return nil
}

// DeductCredit never takes credit below zero: the guarded update affects no
// row when the balance is short and ErrNoRowsAffected is returned.
func (r *seller) DeductCredit(ctx context.Context, id int64, amount int64) error {
	db := GetTx(ctx, r.db)

	result := db.Model(&model.Seller{}).
		Where("id = ? AND credit >= ?", id, amount).
		Updates(map[string]any{
			"credit":     gorm.Expr("credit - ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
