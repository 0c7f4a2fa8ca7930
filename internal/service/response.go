package service

import (
	"time"

	"github.com/Behyna/credit-ledger/internal/model"
)

type MutationResult struct {
	Seller          model.Seller `json:"seller"`
	TransactionID   int64        `json:"transaction_id"`
	TransactionTime time.Time    `json:"transaction_time"`
}

type DecisionResult struct {
	Request         model.CreditRequest `json:"credit_request"`
	Seller          *model.Seller       `json:"seller,omitempty"`
	TransactionID   *int64              `json:"transaction_id,omitempty"`
	TransactionTime *time.Time          `json:"transaction_time,omitempty"`
}

type TransactionsResult struct {
	Transactions []model.Transaction `json:"transactions"`
	Total        int64               `json:"total"`
	Limit        int                 `json:"limit"`
	Offset       int                 `json:"offset"`
}

type CreditRequestsResult struct {
	CreditRequests []model.CreditRequest `json:"credit_requests"`
	Total          int64                 `json:"total"`
	Limit          int                   `json:"limit"`
	Offset         int                   `json:"offset"`
}

type ReconciliationReport struct {
	SellerID           int64 `json:"seller_id"`
	Charge             int64 `json:"charge"`
	Sell               int64 `json:"sell"`
	TransactionBalance int64 `json:"transaction_balance"`
	Credit             int64 `json:"credit"`
	Equal              bool  `json:"equal"`
}

type SweepResult struct {
	Checked  int                    `json:"checked"`
	Drifting []ReconciliationReport `json:"drifting"`
}
