package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type chargeRequest struct {
	Phone  string `json:"phone" validate:"required,phone"`
	Amount int64  `json:"amount" validate:"required,min=1"`
}

func TestXValidator_Validate(t *testing.T) {
	x := NewXValidator(validator.New(), nil)

	assert.Empty(t, x.Validate(&chargeRequest{Phone: "09123456789", Amount: 10}))

	errs := x.Validate(&chargeRequest{Phone: "9123456789", Amount: 0})
	if assert.Len(t, errs, 2) {
		assert.Equal(t, "Phone", errs[0].FailedField)
		assert.Equal(t, PhoneTag, errs[0].Tag)
		assert.Equal(t, "Amount", errs[1].FailedField)
		assert.Equal(t, "required", errs[1].Tag)
	}
}
