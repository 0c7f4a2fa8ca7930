package repository

import (
	"context"
	"errors"

	"github.com/Behyna/credit-ledger/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreditRequestFilter struct {
	SellerID *int64
	Status   *model.RequestStatus
	Limit    int
	Offset   int
}

type CreditRequestRepository interface {
	Create(ctx context.Context, req *model.CreditRequest) error
	FindByID(ctx context.Context, id int64) (model.CreditRequest, error)
	LockByID(ctx context.Context, id int64) (model.CreditRequest, error)
	UpdateDecision(ctx context.Context, req *model.CreditRequest) error
	List(ctx context.Context, filter CreditRequestFilter) ([]model.CreditRequest, int64, error)
}

type creditRequest struct {
	db *gorm.DB
}

func NewCreditRequestRepository(db *gorm.DB) CreditRequestRepository {
	return &creditRequest{db: db}
}

func (r *creditRequest) Create(ctx context.Context, req *model.CreditRequest) error {
	db := GetTx(ctx, r.db)
	return translate(db.Create(req).Error)
}

func (r *creditRequest) FindByID(ctx context.Context, id int64) (model.CreditRequest, error) {
	return r.first(GetTx(ctx, r.db).Where("id = ?", id))
}

func (r *creditRequest) LockByID(ctx context.Context, id int64) (model.CreditRequest, error) {
	db := GetTx(ctx, r.db).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	return r.first(db.Where("id = ?", id))
}

func (r *creditRequest) first(db *gorm.DB) (model.CreditRequest, error) {
	var req model.CreditRequest

	err := db.First(&req).Error
	if err == nil {
		return req, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CreditRequest{}, ErrCreditRequestNotFound
	}

	return model.CreditRequest{}, translate(err)
}

// UpdateDecision writes the decision fields of req only while the stored row
// is still PENDING. A row that was already decided yields ErrNoRowsAffected.
func (r *creditRequest) UpdateDecision(ctx context.Context, req *model.CreditRequest) error {
	db := GetTx(ctx, r.db)

	result := db.Model(&model.CreditRequest{}).
		Where("id = ? AND status = ?", req.ID, model.RequestStatusPending).
		Updates(map[string]any{
			"status":           req.Status,
			"admin_user_id":    req.AdminUserID,
			"change_status_at": req.ChangeStatusAt,
			"is_processed":     req.IsProcessed,
		})
	if result.Error != nil {
		return translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (r *creditRequest) List(ctx context.Context, filter CreditRequestFilter) ([]model.CreditRequest, int64, error) {
	query := GetTx(ctx, r.db).Model(&model.CreditRequest{})
	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var reqs []model.CreditRequest
	err := query.Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&reqs).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	return reqs, total, nil
}
