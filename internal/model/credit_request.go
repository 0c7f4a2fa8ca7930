package model

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

type CreditRequest struct {
	ID             int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID       int64         `gorm:"column:seller_id;not null;index" json:"seller_id"`
	Amount         int64         `gorm:"column:amount;not null" json:"amount"`
	Status         RequestStatus `gorm:"column:status;type:varchar(10);not null;default:PENDING;index" json:"status"`
	AdminUserID    *string       `gorm:"column:admin_user_id;type:varchar(64)" json:"admin_user_id,omitempty"`
	CreatedAt      time.Time     `gorm:"column:created_at" json:"created_at"`
	ChangeStatusAt *time.Time    `gorm:"column:change_status_at" json:"change_status_at,omitempty"`
	IsProcessed    bool          `gorm:"column:is_processed;not null;default:false" json:"is_processed"`
}

func (CreditRequest) TableName() string {
	return "credit_requests"
}
