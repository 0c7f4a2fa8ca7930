package validator

import (
	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/go-playground/validator/v10"
)

const (
	PhoneTag = "phone"
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	PhoneTag: ValidatePhone,
}

func ValidatePhone(fl validator.FieldLevel) bool {
	return service.ValidPhone(fl.Field().String())
}
