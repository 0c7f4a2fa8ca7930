package model

import "time"

type PhoneNumber struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	PhoneNumber string    `gorm:"column:phone_number;type:varchar(11);uniqueIndex;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (PhoneNumber) TableName() string {
	return "phone_numbers"
}
