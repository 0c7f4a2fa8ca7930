package v1

type DepositRequest struct {
	Amount int64 `json:"amount" validate:"required,min=1"`
}

type ChargeSaleRequest struct {
	Phone  string `json:"phone" validate:"required,phone"`
	Amount int64  `json:"amount" validate:"required,min=1"`
}

type CreditRequestRequest struct {
	Amount int64 `json:"amount" validate:"required,min=1"`
}

type DecisionRequest struct {
	Status string `json:"status" validate:"required"`
}
