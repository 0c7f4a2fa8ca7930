package constants

import "net/http"

const MessageErrorFormat = "The '%s' format is invalid"

const (
	ErrCodeSellerNotFound        = "SELLER_NOT_FOUND"
	ErrCodeCreditRequestNotFound = "CREDIT_REQUEST_NOT_FOUND"
	ErrCodeSellerExists          = "SELLER_ALREADY_EXISTS"
	ErrCodeInvalidInput          = "INVALID_INPUT"
	ErrCodeValidationFailed      = "VALIDATION_FAILED"
	ErrCodeInvalidRequestBody    = "INVALID_REQUEST_BODY"
	ErrCodeInsufficientCredit    = "INSUFFICIENT_CREDIT"
	ErrCodeInvalidTransition     = "INVALID_TRANSITION"
	ErrCodeBusy                  = "BUSY"
	ErrCodeOperationFailed       = "OPERATION_FAILED"
	ErrCodeUnauthorized          = "UNAUTHORIZED"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodeRouteNotFound         = "ROUTE_NOT_FOUND"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

const (
	ErrMsgSellerNotFound        = "seller not found"
	ErrMsgCreditRequestNotFound = "credit request not found"
	ErrMsgSellerExists          = "seller already exists"
	ErrMsgInvalidInput          = "invalid input"
	ErrMsgValidationFailed      = "validation failed"
	ErrMsgInvalidRequestBody    = "failed to parse request body"
	ErrMsgInsufficientCredit    = "insufficient credit"
	ErrMsgInvalidTransition     = "credit request is already processed"
	ErrMsgBusy                  = "seller is busy, retry later"
	ErrMsgOperationFailed       = "operation failed"
	ErrMsgUnauthorized          = "authentication required"
	ErrMsgForbidden             = "permission denied"
	ErrMsgRouteNotFound         = "route not found"
	ErrMsgInternalError         = "Internal server error"
)

var errorMessages = map[string]string{
	ErrCodeSellerNotFound:        ErrMsgSellerNotFound,
	ErrCodeCreditRequestNotFound: ErrMsgCreditRequestNotFound,
	ErrCodeSellerExists:          ErrMsgSellerExists,
	ErrCodeInvalidInput:          ErrMsgInvalidInput,
	ErrCodeValidationFailed:      ErrMsgValidationFailed,
	ErrCodeInvalidRequestBody:    ErrMsgInvalidRequestBody,
	ErrCodeInsufficientCredit:    ErrMsgInsufficientCredit,
	ErrCodeInvalidTransition:     ErrMsgInvalidTransition,
	ErrCodeBusy:                  ErrMsgBusy,
	ErrCodeOperationFailed:       ErrMsgOperationFailed,
	ErrCodeUnauthorized:          ErrMsgUnauthorized,
	ErrCodeForbidden:             ErrMsgForbidden,
	ErrCodeRouteNotFound:         ErrMsgRouteNotFound,
	ErrCodeInternalError:         ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody:
		return http.StatusBadRequest
	case ErrCodeInvalidInput, ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeSellerNotFound, ErrCodeCreditRequestNotFound, ErrCodeRouteNotFound:
		return http.StatusNotFound
	case ErrCodeInsufficientCredit, ErrCodeInvalidTransition, ErrCodeSellerExists:
		return http.StatusConflict
	case ErrCodeBusy:
		return http.StatusServiceUnavailable
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
