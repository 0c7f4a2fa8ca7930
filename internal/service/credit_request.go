package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Behyna/credit-ledger/internal/constants"
	"github.com/Behyna/credit-ledger/internal/metrics"
	"github.com/Behyna/credit-ledger/internal/model"
	"github.com/Behyna/credit-ledger/internal/repository"
	"go.uber.org/zap"
)

// Decision is the closed set of outcomes an admin may give a pending request.
type Decision int

const (
	DecisionApprove Decision = iota + 1
	DecisionReject
)

func (d Decision) String() string {
	switch d {
	case DecisionApprove:
		return string(model.RequestStatusApproved)
	case DecisionReject:
		return string(model.RequestStatusRejected)
	default:
		return "UNKNOWN"
	}
}

// ParseDecision accepts the target status case-insensitively. PENDING is not
// a decision.
func ParseDecision(status string) (Decision, error) {
	switch model.RequestStatus(strings.ToUpper(strings.TrimSpace(status))) {
	case model.RequestStatusApproved:
		return DecisionApprove, nil
	case model.RequestStatusRejected:
		return DecisionReject, nil
	default:
		return 0, NewServiceError(constants.ErrCodeInvalidInput, ErrUnknownStatus)
	}
}

type CreditRequestService interface {
	Submit(ctx context.Context, cmd SubmitCreditRequestCommand) (model.CreditRequest, error)
	Approve(ctx context.Context, cmd DecisionCommand) (DecisionResult, error)
	Reject(ctx context.Context, cmd DecisionCommand) (DecisionResult, error)
	Decide(ctx context.Context, cmd DecideCreditRequestCommand) (DecisionResult, error)
	List(ctx context.Context, query ListCreditRequestsQuery) (CreditRequestsResult, error)
}

type creditRequestService struct {
	txManager       repository.TxManager
	requestRepo     repository.CreditRequestRepository
	sellerRepo      repository.SellerRepository
	transactionRepo repository.TransactionRepository
	events          eventSink
	log             *zap.Logger
	metrics         *metrics.Metrics
}

func NewCreditRequestService(txManager repository.TxManager, requestRepo repository.CreditRequestRepository,
	sellerRepo repository.SellerRepository, transactionRepo repository.TransactionRepository,
	publisher EventPublisher, log *zap.Logger, metrics *metrics.Metrics) CreditRequestService {
	return &creditRequestService{
		txManager:       txManager,
		requestRepo:     requestRepo,
		sellerRepo:      sellerRepo,
		transactionRepo: transactionRepo,
		events:          eventSink{publisher: publisher, log: log, metrics: metrics},
		log:             log,
		metrics:         metrics,
	}
}

func (s *creditRequestService) Submit(ctx context.Context, cmd SubmitCreditRequestCommand) (model.CreditRequest, error) {
	if cmd.Amount <= 0 {
		return model.CreditRequest{}, NewServiceError(constants.ErrCodeInvalidInput, ErrInvalidAmount)
	}

	if _, err := s.sellerRepo.FindByID(ctx, cmd.SellerID); err != nil {
		return model.CreditRequest{}, fromRepository(err)
	}

	req := model.CreditRequest{
		SellerID:  cmd.SellerID,
		Amount:    cmd.Amount,
		Status:    model.RequestStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.requestRepo.Create(ctx, &req); err != nil {
		s.log.Error("Failed to create credit request",
			zap.Int64("sellerID", cmd.SellerID),
			zap.Int64("amount", cmd.Amount),
			zap.Error(err),
		)
		return model.CreditRequest{}, fromRepository(err)
	}

	s.metrics.RecordCreditRequest(string(model.RequestStatusPending))

	s.log.Info("Credit request submitted",
		zap.Int64("requestID", req.ID),
		zap.Int64("sellerID", req.SellerID),
		zap.Int64("amount", req.Amount),
	)

	return req, nil
}

func (s *creditRequestService) Decide(ctx context.Context, cmd DecideCreditRequestCommand) (DecisionResult, error) {
	decision, err := ParseDecision(cmd.Status)
	if err != nil {
		return DecisionResult{}, err
	}

	dc := DecisionCommand{RequestID: cmd.RequestID, AdminID: cmd.AdminID, TrackID: cmd.TrackID}

	switch decision {
	case DecisionApprove:
		return s.Approve(ctx, dc)
	default:
		return s.Reject(ctx, dc)
	}
}

// Approve moves a PENDING request to APPROVED and credits the seller in the
// same transaction. The request row is locked before the seller row.
func (s *creditRequestService) Approve(ctx context.Context, cmd DecisionCommand) (DecisionResult, error) {
	if cmd.AdminID == "" {
		return DecisionResult{}, NewServiceError(constants.ErrCodeInvalidInput, ErrInvalidAdminID)
	}

	start := time.Now()

	var (
		req    model.CreditRequest
		seller model.Seller
	)
	transaction := model.Transaction{Type: model.TxTypeDeposit}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error

		req, err = s.lockPending(ctx, cmd.RequestID)
		if err != nil {
			return err
		}

		seller, err = s.sellerRepo.LockByID(ctx, req.SellerID)
		if err != nil {
			return fromRepository(err)
		}

		now := time.Now().UTC()
		markDecided(&req, model.RequestStatusApproved, cmd.AdminID, now)

		if err := s.writeDecision(ctx, &req); err != nil {
			return err
		}

		if err := s.sellerRepo.AddCredit(ctx, seller.ID, req.Amount); err != nil {
			s.log.Error("error increase seller credit", zap.Error(err))
			return fromRepository(err)
		}

		transaction.SellerID = seller.ID
		transaction.Amount = req.Amount
		transaction.CreatedAt = now
		if err := s.transactionRepo.Create(ctx, &transaction); err != nil {
			s.log.Error("error create deposit transaction", zap.Error(err))
			return fromRepository(err)
		}

		seller.Credit += req.Amount
		seller.UpdatedAt = now

		return nil
	})
	if err != nil {
		err = fromRepository(err)
	}

	s.metrics.RecordMutation("approve_credit_request", time.Since(start), ErrorCode(err))

	if err != nil {
		logFailure(s.log, "Credit request approval failed", err,
			zap.Int64("requestID", cmd.RequestID),
			zap.String("adminID", cmd.AdminID),
			zap.String("trackID", cmd.TrackID),
		)
		return DecisionResult{}, err
	}

	s.metrics.RecordCreditRequest(string(model.RequestStatusApproved))
	s.metrics.RecordTransactionCreated(string(model.TxTypeDeposit), req.Amount)

	s.log.Info("Credit request approved",
		zap.Int64("requestID", req.ID),
		zap.Int64("sellerID", seller.ID),
		zap.Int64("amount", req.Amount),
		zap.Int64("credit", seller.Credit),
		zap.String("adminID", cmd.AdminID),
		zap.Int64("transactionID", transaction.ID),
	)

	requestID := req.ID
	s.events.emit(ctx, LedgerEvent{
		Type:            EventTypeCharge,
		SellerID:        seller.ID,
		Amount:          req.Amount,
		Credit:          seller.Credit,
		TransactionID:   transaction.ID,
		CreditRequestID: &requestID,
		TrackID:         cmd.TrackID,
		CreatedAt:       transaction.CreatedAt,
	})

	return DecisionResult{
		Request:         req,
		Seller:          &seller,
		TransactionID:   &transaction.ID,
		TransactionTime: &transaction.CreatedAt,
	}, nil
}

func (s *creditRequestService) Reject(ctx context.Context, cmd DecisionCommand) (DecisionResult, error) {
	if cmd.AdminID == "" {
		return DecisionResult{}, NewServiceError(constants.ErrCodeInvalidInput, ErrInvalidAdminID)
	}

	start := time.Now()

	var req model.CreditRequest

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error

		req, err = s.lockPending(ctx, cmd.RequestID)
		if err != nil {
			return err
		}

		markDecided(&req, model.RequestStatusRejected, cmd.AdminID, time.Now().UTC())

		return s.writeDecision(ctx, &req)
	})
	if err != nil {
		err = fromRepository(err)
	}

	s.metrics.RecordMutation("reject_credit_request", time.Since(start), ErrorCode(err))

	if err != nil {
		logFailure(s.log, "Credit request rejection failed", err,
			zap.Int64("requestID", cmd.RequestID),
			zap.String("adminID", cmd.AdminID),
			zap.String("trackID", cmd.TrackID),
		)
		return DecisionResult{}, err
	}

	s.metrics.RecordCreditRequest(string(model.RequestStatusRejected))

	s.log.Info("Credit request rejected",
		zap.Int64("requestID", req.ID),
		zap.Int64("sellerID", req.SellerID),
		zap.String("adminID", cmd.AdminID),
	)

	return DecisionResult{Request: req}, nil
}

func (s *creditRequestService) List(ctx context.Context, query ListCreditRequestsQuery) (CreditRequestsResult, error) {
	limit, offset := page(query.Limit, query.Offset)

	filter := repository.CreditRequestFilter{
		SellerID: query.SellerID,
		Limit:    limit,
		Offset:   offset,
	}

	if query.Status != "" {
		status := model.RequestStatus(strings.ToUpper(query.Status))
		switch status {
		case model.RequestStatusPending, model.RequestStatusApproved, model.RequestStatusRejected:
			filter.Status = &status
		default:
			return CreditRequestsResult{}, NewServiceError(constants.ErrCodeInvalidInput, ErrInvalidStatus)
		}
	}

	reqs, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list credit requests", zap.Error(err))
		return CreditRequestsResult{}, fromRepository(err)
	}

	return CreditRequestsResult{CreditRequests: reqs, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *creditRequestService) lockPending(ctx context.Context, requestID int64) (model.CreditRequest, error) {
	req, err := s.requestRepo.LockByID(ctx, requestID)
	if err != nil {
		return model.CreditRequest{}, fromRepository(err)
	}

	if req.Status != model.RequestStatusPending {
		return model.CreditRequest{}, NewServiceError(constants.ErrCodeInvalidTransition, ErrInvalidTransition)
	}

	return req, nil
}

func (s *creditRequestService) writeDecision(ctx context.Context, req *model.CreditRequest) error {
	err := s.requestRepo.UpdateDecision(ctx, req)
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrNoRowsAffected) {
		return NewServiceError(constants.ErrCodeInvalidTransition, ErrInvalidTransition)
	}

	s.log.Error("error update credit request", zap.Int64("requestID", req.ID), zap.Error(err))
	return fromRepository(err)
}

func markDecided(req *model.CreditRequest, status model.RequestStatus, adminID string, at time.Time) {
	admin := adminID
	req.Status = status
	req.AdminUserID = &admin
	req.ChangeStatusAt = &at
	req.IsProcessed = true
}
