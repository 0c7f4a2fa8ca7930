package errors

import (
	"errors"

	"github.com/Behyna/credit-ledger/internal/api/contract"
	"github.com/Behyna/credit-ledger/internal/api/middleware"
	"github.com/Behyna/credit-ledger/internal/constants"
	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(contract.Response{
				Code:    fiberErrorCode(fiberErr.Code),
				Message: fiberErr.Message,
				TrackID: middleware.GetTrackID(c),
			})
		}

		logger.Error("Unhandled request error",
			zap.String("path", c.Path()),
			zap.String("trackID", middleware.GetTrackID(c)),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(contract.Response{
			Code:    constants.ErrCodeInternalError,
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
			TrackID: middleware.GetTrackID(c),
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	errorCode := err.Code

	status := constants.GetHTTPStatus(errorCode)
	if status == fiber.StatusInternalServerError && errorCode != constants.ErrCodeOperationFailed {
		errorCode = constants.ErrCodeInternalError
	}

	message := constants.GetErrorMessage(errorCode)
	if errorCode == constants.ErrCodeInvalidInput {
		message = err.Error()
	}

	return c.Status(status).JSON(contract.Response{
		Code:    errorCode,
		Message: message,
		TrackID: middleware.GetTrackID(c),
	})
}

func fiberErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return constants.ErrCodeInvalidRequestBody
	case fiber.StatusUnauthorized:
		return constants.ErrCodeUnauthorized
	case fiber.StatusForbidden:
		return constants.ErrCodeForbidden
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return constants.ErrCodeRouteNotFound
	default:
		return constants.ErrCodeInternalError
	}
}
