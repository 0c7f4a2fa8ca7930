package v1

import (
	"errors"
	"strconv"

	"github.com/Behyna/credit-ledger/internal/api/contract"
	"github.com/Behyna/credit-ledger/internal/api/middleware"
	"github.com/Behyna/credit-ledger/internal/api/validator"
	"github.com/Behyna/credit-ledger/internal/constants"
	"github.com/Behyna/credit-ledger/internal/model"
	"github.com/Behyna/credit-ledger/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	MsgSellerCreated         = "seller created successfully"
	MsgCreditRetrieved       = "credit retrieved successfully"
	MsgTransactionsRetrieved = "transactions retrieved successfully"
	MsgDepositCommitted      = "deposit committed successfully"
	MsgSaleCommitted         = "sale charged successfully"
	MsgCreditRequestCreated  = "credit request submitted successfully"
	MsgCreditRequestsListed  = "credit requests retrieved successfully"
	MsgCreditRequestDecided  = "credit request decided successfully"
	MsgReconciled            = "reconciliation computed successfully"
)

var errInvalidID = errors.New("id must be a positive integer")

type Handler struct {
	logger         *zap.Logger
	ledger         service.LedgerService
	creditRequests service.CreditRequestService
	reconciliation service.ReconciliationService
	XValidator     validator.IXValidator
}

func NewHandler(logger *zap.Logger, ledger service.LedgerService, creditRequests service.CreditRequestService,
	reconciliation service.ReconciliationService, XValidator validator.IXValidator) *Handler {
	return &Handler{
		logger:         logger,
		ledger:         ledger,
		creditRequests: creditRequests,
		reconciliation: reconciliation,
		XValidator:     XValidator,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) success(c *fiber.Ctx, message string, result any) error {
	return c.JSON(contract.Response{
		Successful: true,
		Code:       "success",
		Message:    message,
		TrackID:    middleware.GetTrackID(c),
		Result:     result,
	})
}

func (h *Handler) rejected(c *fiber.Ctx, responseError contract.Response, request any) error {
	h.logger.Warn("Error Validator",
		zap.String("path", c.Path()),
		zap.String("code", responseError.Code),
		zap.Any("request", request),
	)
	responseError.TrackID = middleware.GetTrackID(c)
	return c.JSON(responseError)
}

// seller resolves the caller to their seller row.
func (h *Handler) seller(c *fiber.Ctx) (model.Seller, error) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return model.Seller{}, service.NewServiceError(constants.ErrCodeUnauthorized, middleware.ErrNoIdentityCtx)
	}

	return h.ledger.GetSellerByUserID(c.UserContext(), identity.UserID)
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.NewServiceError(constants.ErrCodeInvalidInput, errInvalidID)
	}
	return id, nil
}

func (h *Handler) CreateSeller(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return service.NewServiceError(constants.ErrCodeUnauthorized, middleware.ErrNoIdentityCtx)
	}

	seller, err := h.ledger.CreateSeller(c.UserContext(), service.CreateSellerCommand{UserID: identity.UserID})
	if err != nil {
		return err
	}

	c.Status(fiber.StatusCreated)
	return h.success(c, MsgSellerCreated, seller)
}

func (h *Handler) GetCredit(c *fiber.Ctx) error {
	seller, err := h.seller(c)
	if err != nil {
		return err
	}

	return h.success(c, MsgCreditRetrieved, CreditResponse{
		SellerID:  seller.ID,
		Credit:    seller.Credit,
		UpdatedAt: seller.UpdatedAt,
	})
}

func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	seller, err := h.seller(c)
	if err != nil {
		return err
	}

	query := service.ListTransactionsQuery{
		SellerID: seller.ID,
		Limit:    c.QueryInt("limit"),
		Offset:   c.QueryInt("offset"),
	}

	result, err := h.ledger.ListTransactions(c.UserContext(), query)
	if err != nil {
		return err
	}

	return h.success(c, MsgTransactionsRetrieved, PageResponse{
		Items:  result.Transactions,
		Total:  result.Total,
		Limit:  result.Limit,
		Offset: result.Offset,
	})
}

func (h *Handler) Deposit(c *fiber.Ctx) error {
	var request DepositRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.rejected(c, responseError, request)
	}

	seller, err := h.seller(c)
	if err != nil {
		return err
	}

	result, err := h.ledger.Deposit(c.UserContext(), service.DepositCommand{
		SellerID: seller.ID,
		Amount:   request.Amount,
		TrackID:  middleware.GetTrackID(c),
	})
	if err != nil {
		return err
	}

	return h.success(c, MsgDepositCommitted, result)
}

func (h *Handler) ChargeSale(c *fiber.Ctx) error {
	var request ChargeSaleRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.rejected(c, responseError, request)
	}

	seller, err := h.seller(c)
	if err != nil {
		return err
	}

	result, err := h.ledger.ChargeSale(c.UserContext(), service.ChargeSaleCommand{
		SellerID: seller.ID,
		Phone:    request.Phone,
		Amount:   request.Amount,
		TrackID:  middleware.GetTrackID(c),
	})
	if err != nil {
		return err
	}

	return h.success(c, MsgSaleCommitted, result)
}

func (h *Handler) SubmitCreditRequest(c *fiber.Ctx) error {
	var request CreditRequestRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.rejected(c, responseError, request)
	}

	seller, err := h.seller(c)
	if err != nil {
		return err
	}

	req, err := h.creditRequests.Submit(c.UserContext(), service.SubmitCreditRequestCommand{
		SellerID: seller.ID,
		Amount:   request.Amount,
	})
	if err != nil {
		return err
	}

	c.Status(fiber.StatusCreated)
	return h.success(c, MsgCreditRequestCreated, req)
}

func (h *Handler) ListOwnCreditRequests(c *fiber.Ctx) error {
	seller, err := h.seller(c)
	if err != nil {
		return err
	}

	return h.listCreditRequests(c, &seller.ID)
}

func (h *Handler) ListCreditRequests(c *fiber.Ctx) error {
	return h.listCreditRequests(c, nil)
}

func (h *Handler) listCreditRequests(c *fiber.Ctx, sellerID *int64) error {
	query := service.ListCreditRequestsQuery{
		SellerID: sellerID,
		Status:   c.Query("status"),
		Limit:    c.QueryInt("limit"),
		Offset:   c.QueryInt("offset"),
	}

	result, err := h.creditRequests.List(c.UserContext(), query)
	if err != nil {
		return err
	}

	return h.success(c, MsgCreditRequestsListed, PageResponse{
		Items:  result.CreditRequests,
		Total:  result.Total,
		Limit:  result.Limit,
		Offset: result.Offset,
	})
}

func (h *Handler) DecideCreditRequest(c *fiber.Ctx) error {
	requestID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request DecisionRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.rejected(c, responseError, request)
	}

	identity, _ := middleware.GetIdentity(c)

	result, err := h.creditRequests.Decide(c.UserContext(), service.DecideCreditRequestCommand{
		RequestID: requestID,
		AdminID:   identity.UserID,
		Status:    request.Status,
		TrackID:   middleware.GetTrackID(c),
	})
	if err != nil {
		return err
	}

	return h.success(c, MsgCreditRequestDecided, result)
}

func (h *Handler) GetOwnReconciliation(c *fiber.Ctx) error {
	seller, err := h.seller(c)
	if err != nil {
		return err
	}

	report, err := h.reconciliation.Check(c.UserContext(), seller.ID)
	if err != nil {
		return err
	}

	return h.success(c, MsgReconciled, report)
}

func (h *Handler) GetReconciliation(c *fiber.Ctx) error {
	sellerID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	report, err := h.reconciliation.Check(c.UserContext(), sellerID)
	if err != nil {
		return err
	}

	return h.success(c, MsgReconciled, report)
}
