package service

type CreateSellerCommand struct {
	UserID string
}

type DepositCommand struct {
	SellerID int64
	Amount   int64
	TrackID  string
}

type ChargeSaleCommand struct {
	SellerID int64
	Phone    string
	Amount   int64
	TrackID  string
}

type SubmitCreditRequestCommand struct {
	SellerID int64
	Amount   int64
}

type DecisionCommand struct {
	RequestID int64
	AdminID   string
	TrackID   string
}

type DecideCreditRequestCommand struct {
	RequestID int64
	AdminID   string
	Status    string
	TrackID   string
}

type ListTransactionsQuery struct {
	SellerID int64
	Limit    int
	Offset   int
}

type ListCreditRequestsQuery struct {
	SellerID *int64
	Status   string
	Limit    int
	Offset   int
}
