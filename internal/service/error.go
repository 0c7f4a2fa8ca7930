package service

import (
	"errors"

	"github.com/Behyna/credit-ledger/internal/constants"
	"github.com/Behyna/credit-ledger/internal/repository"
)

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidPhone       = errors.New("phone number must match 09XXXXXXXXX")
	ErrInvalidUserID      = errors.New("user id is required")
	ErrInvalidAdminID     = errors.New("admin id is required")
	ErrUnknownStatus      = errors.New("status must be APPROVED or REJECTED")
	ErrInvalidStatus      = errors.New("status must be PENDING, APPROVED or REJECTED")
	ErrInvalidBatchSize   = errors.New("batch size must be positive")
	ErrInsufficientCredit = errors.New("INSUFFICIENT_CREDIT")
	ErrInvalidTransition  = errors.New("INVALID_TRANSITION")
)

func NewServiceError(code string, cause error) error {
	return Error{
		Code:  code,
		Cause: cause,
	}
}

type Error struct {
	Code  string
	Cause error
}

func (e Error) Error() string {
	if e.Cause == nil {
		return e.Code
	}
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

// ErrorCode returns the code of a service error, or "" for nil and
// OPERATION_FAILED for anything else.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var serviceErr Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Code
	}

	return constants.ErrCodeOperationFailed
}

// fromRepository classifies a store failure. Errors that already carry a
// service code are returned untouched so a rollback keeps its original cause.
func fromRepository(err error) error {
	var serviceErr Error
	if errors.As(err, &serviceErr) {
		return err
	}

	switch {
	case errors.Is(err, repository.ErrSellerNotFound):
		return NewServiceError(constants.ErrCodeSellerNotFound, err)
	case errors.Is(err, repository.ErrCreditRequestNotFound):
		return NewServiceError(constants.ErrCodeCreditRequestNotFound, err)
	case errors.Is(err, repository.ErrSellerExists):
		return NewServiceError(constants.ErrCodeSellerExists, err)
	case repository.IsBusy(err):
		return NewServiceError(constants.ErrCodeBusy, err)
	default:
		return NewServiceError(constants.ErrCodeOperationFailed, err)
	}
}
