package model

import "time"

type Seller struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);uniqueIndex;not null" json:"user_id"`
	Credit    int64     `gorm:"column:credit;not null;default:0;check:chk_sellers_credit_non_negative,credit >= 0" json:"credit"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Seller) TableName() string {
	return "sellers"
}
