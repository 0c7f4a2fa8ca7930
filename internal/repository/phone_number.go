package repository

import (
	"context"
	"errors"

	"github.com/Behyna/credit-ledger/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PhoneNumberRepository interface {
	GetOrCreate(ctx context.Context, phone string) (model.PhoneNumber, error)
	FindByNumber(ctx context.Context, phone string) (model.PhoneNumber, error)
}

type phoneNumber struct {
	db *gorm.DB
}

func NewPhoneNumberRepository(db *gorm.DB) PhoneNumberRepository {
	return &phoneNumber{db: db}
}

// GetOrCreate inserts the number unless it is already known. Concurrent
// callers racing on the same number both succeed and observe a single row.
func (r *phoneNumber) GetOrCreate(ctx context.Context, phone string) (model.PhoneNumber, error) {
	db := GetTx(ctx, r.db)

	pn := model.PhoneNumber{PhoneNumber: phone}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone_number"}},
		DoNothing: true,
	}).Create(&pn)
	if result.Error != nil && !isDuplicate(result.Error) {
		return model.PhoneNumber{}, translate(result.Error)
	}

	if result.Error == nil && result.RowsAffected > 0 {
		return pn, nil
	}

	return r.FindByNumber(ctx, phone)
}

func (r *phoneNumber) FindByNumber(ctx context.Context, phone string) (model.PhoneNumber, error) {
	var pn model.PhoneNumber

	err := GetTx(ctx, r.db).Where("phone_number = ?", phone).First(&pn).Error
	if err == nil {
		return pn, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PhoneNumber{}, ErrPhoneNumberNotFound
	}

	return model.PhoneNumber{}, translate(err)
}
