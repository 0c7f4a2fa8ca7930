package model

import "time"

type TxType string

const (
	TxTypeDeposit TxType = "DEPOSIT"
	TxTypeSell    TxType = "SELL"
)

// Transaction is an immutable ledger entry. Amount is always positive; Type
// carries the sign.
type Transaction struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;<-:create" json:"id"`
	SellerID  int64     `gorm:"column:seller_id;not null;index;<-:create" json:"seller_id"`
	Phone     *string   `gorm:"column:phone;type:varchar(11);<-:create" json:"phone,omitempty"`
	Type      TxType    `gorm:"column:type;type:varchar(10);not null;<-:create" json:"type"`
	Amount    int64     `gorm:"column:amount;not null;<-:create" json:"amount"`
	CreatedAt time.Time `gorm:"column:created_at;<-:create" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// Signed returns the entry's effect on the seller credit.
func (t Transaction) Signed() int64 {
	if t.Type == TxTypeSell {
		return -t.Amount
	}
	return t.Amount
}
