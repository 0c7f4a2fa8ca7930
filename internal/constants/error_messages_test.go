package constants

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	cases := map[string]int{
		ErrCodeInvalidInput:          http.StatusUnprocessableEntity,
		ErrCodeValidationFailed:      http.StatusUnprocessableEntity,
		ErrCodeInvalidRequestBody:    http.StatusBadRequest,
		ErrCodeSellerNotFound:        http.StatusNotFound,
		ErrCodeCreditRequestNotFound: http.StatusNotFound,
		ErrCodeInsufficientCredit:    http.StatusConflict,
		ErrCodeInvalidTransition:     http.StatusConflict,
		ErrCodeSellerExists:          http.StatusConflict,
		ErrCodeBusy:                  http.StatusServiceUnavailable,
		ErrCodeUnauthorized:          http.StatusUnauthorized,
		ErrCodeForbidden:             http.StatusForbidden,
		ErrCodeRouteNotFound:         http.StatusNotFound,
		ErrCodeOperationFailed:       http.StatusInternalServerError,
		"SOMETHING_ELSE":             http.StatusInternalServerError,
	}

	for code, status := range cases {
		assert.Equal(t, status, GetHTTPStatus(code), code)
	}
}

func TestGetErrorMessage(t *testing.T) {
	assert.Equal(t, ErrMsgInsufficientCredit, GetErrorMessage(ErrCodeInsufficientCredit))
	assert.Equal(t, ErrMsgInternalError, GetErrorMessage("UNKNOWN"))
}
