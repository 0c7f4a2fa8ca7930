package v1

import "time"

type CreditResponse struct {
	SellerID  int64     `json:"seller_id"`
	Credit    int64     `json:"credit"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PageResponse struct {
	Items  any   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}
