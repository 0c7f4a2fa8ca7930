package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/Behyna/credit-ledger/internal/constants"
	"github.com/Behyna/credit-ledger/internal/metrics"
	"github.com/Behyna/credit-ledger/internal/model"
	"github.com/Behyna/credit-ledger/internal/repository"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var phonePattern = regexp.MustCompile(`^09\d{9}$`)

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

type LedgerService interface {
	CreateSeller(ctx context.Context, cmd CreateSellerCommand) (model.Seller, error)
	GetSeller(ctx context.Context, sellerID int64) (model.Seller, error)
	GetSellerByUserID(ctx context.Context, userID string) (model.Seller, error)
	ListTransactions(ctx context.Context, query ListTransactionsQuery) (TransactionsResult, error)
	Deposit(ctx context.Context, cmd DepositCommand) (MutationResult, error)
	ChargeSale(ctx context.Context, cmd ChargeSaleCommand) (MutationResult, error)
}

type ledgerService struct {
	txManager       repository.TxManager
	sellerRepo      repository.SellerRepository
	transactionRepo repository.TransactionRepository
	phoneRepo       repository.PhoneNumberRepository
	events          eventSink
	log             *zap.Logger
	metrics         *metrics.Metrics
}

func NewLedgerService(txManager repository.TxManager, sellerRepo repository.SellerRepository,
	transactionRepo repository.TransactionRepository, phoneRepo repository.PhoneNumberRepository,
	publisher EventPublisher, log *zap.Logger, metrics *metrics.Metrics) LedgerService {
	return &ledgerService{
		txManager:       txManager,
		sellerRepo:      sellerRepo,
		transactionRepo: transactionRepo,
		phoneRepo:       phoneRepo,
		events:          eventSink{publisher: publisher, log: log, metrics: metrics},
		log:             log,
		metrics:         metrics,
	}
}

func (s *ledgerService) CreateSeller(ctx context.Context, cmd CreateSellerCommand) (model.Seller, error) {
	if cmd.UserID == "" {
		return model.Seller{}, NewServiceError(constants.ErrCodeInvalidInput, ErrInvalidUserID)
	}

	seller := model.Seller{UserID: cmd.UserID}

	start := time.Now()
	err := s.sellerRepo.Create(ctx, &seller)
	if err != nil {
		s.metrics.RecordDBQuery("insert", "sellers", "error", time.Since(start))

		if errors.Is(err, repository.ErrSellerExists) {
			s.log.Warn("Seller already exists", zap.String("userID", cmd.UserID))
		} else {
			s.log.Error("Failed to create seller", zap.String("userID", cmd.UserID), zap.Error(err))
		}

		return model.Seller{}, fromRepository(err)
	}

	s.metrics.RecordDBQuery("insert", "sellers", "success", time.Since(start))
	s.metrics.RecordSellerCreated()

	s.log.Info("Seller created",
		zap.Int64("sellerID", seller.ID),
		zap.String("userID", seller.UserID),
	)

	return seller, nil
}

func (s *ledgerService) GetSeller(ctx context.Context, sellerID int64) (model.Seller, error) {
	start := time.Now()

	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		s.metrics.RecordDBQuery("select", "sellers", "error", time.Since(start))
		return model.Seller{}, fromRepository(err)
	}

	s.metrics.RecordDBQuery("select", "sellers", "success", time.Since(start))

	return seller, nil
}

func (s *ledgerService) GetSellerByUserID(ctx context.Context, userID string) (model.Seller, error) {
	start := time.Now()

	seller, err := s.sellerRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.metrics.RecordDBQuery("select", "sellers", "error", time.Since(start))
		return model.Seller{}, fromRepository(err)
	}

	s.metrics.RecordDBQuery("select", "sellers", "success", time.Since(start))

	return seller, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, query ListTransactionsQuery) (TransactionsResult, error) {
	limit, offset := page(query.Limit, query.Offset)

	if _, err := s.sellerRepo.FindByID(ctx, query.SellerID); err != nil {
		return TransactionsResult{}, fromRepository(err)
	}

	txs, err := s.transactionRepo.ListBySeller(ctx, query.SellerID, limit, offset)
	if err != nil {
		s.log.Error("Failed to list transactions", zap.Int64("sellerID", query.SellerID), zap.Error(err))
		return TransactionsResult{}, fromRepository(err)
	}

	total, err := s.transactionRepo.CountBySeller(ctx, query.SellerID)
	if err != nil {
		s.log.Error("Failed to count transactions", zap.Int64("sellerID", query.SellerID), zap.Error(err))
		return TransactionsResult{}, fromRepository(err)
	}

	return TransactionsResult{Transactions: txs, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *ledgerService) Deposit(ctx context.Context, cmd DepositCommand) (MutationResult, error) {
	if cmd.Amount <= 0 {
		return MutationResult{}, NewServiceError(constants.ErrCodeInvalidInput, ErrInvalidAmount)
	}

	start := time.Now()

	var seller model.Seller
	transaction := model.Transaction{
		SellerID: cmd.SellerID,
		Type:     model.TxTypeDeposit,
		Amount:   cmd.Amount,
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		locked, err := s.sellerRepo.LockByID(ctx, cmd.SellerID)
		if err != nil {
			return fromRepository(err)
		}

		if err := s.sellerRepo.AddCredit(ctx, locked.ID, cmd.Amount); err != nil {
			s.log.Error("error increase seller credit", zap.Error(err))
			return fromRepository(err)
		}

		transaction.CreatedAt = time.Now().UTC()
		if err := s.transactionRepo.Create(ctx, &transaction); err != nil {
			s.log.Error("error create deposit transaction", zap.Error(err))
			return fromRepository(err)
		}

		seller = locked
		seller.Credit += cmd.Amount
		seller.UpdatedAt = transaction.CreatedAt

		return nil
	})
	if err != nil {
		err = fromRepository(err)
	}

	s.metrics.RecordMutation("deposit", time.Since(start), ErrorCode(err))

	if err != nil {
		s.logFailure("Deposit failed", err,
			zap.Int64("sellerID", cmd.SellerID),
			zap.Int64("amount", cmd.Amount),
			zap.String("trackID", cmd.TrackID),
		)
		return MutationResult{}, err
	}

	s.metrics.RecordTransactionCreated(string(model.TxTypeDeposit), cmd.Amount)

	s.log.Info("Deposit committed",
		zap.Int64("sellerID", seller.ID),
		zap.Int64("amount", cmd.Amount),
		zap.Int64("credit", seller.Credit),
		zap.Int64("transactionID", transaction.ID),
		zap.String("trackID", cmd.TrackID),
		zap.Duration("duration", time.Since(start)),
	)

	s.events.emit(ctx, LedgerEvent{
		Type:          EventTypeCharge,
		SellerID:      seller.ID,
		Amount:        cmd.Amount,
		Credit:        seller.Credit,
		TransactionID: transaction.ID,
		TrackID:       cmd.TrackID,
		CreatedAt:     transaction.CreatedAt,
	})

	return MutationResult{
		Seller:          seller,
		TransactionID:   transaction.ID,
		TransactionTime: transaction.CreatedAt,
	}, nil
}

func (s *ledgerService) ChargeSale(ctx context.Context, cmd ChargeSaleCommand) (MutationResult, error) {
	if cmd.Amount <= 0 {
		return MutationResult{}, NewServiceError(constants.ErrCodeInvalidInput, ErrInvalidAmount)
	}
	if !ValidPhone(cmd.Phone) {
		return MutationResult{}, NewServiceError(constants.ErrCodeInvalidInput, ErrInvalidPhone)
	}

	start := time.Now()

	var seller model.Seller
	phone := cmd.Phone
	transaction := model.Transaction{
		SellerID: cmd.SellerID,
		Phone:    &phone,
		Type:     model.TxTypeSell,
		Amount:   cmd.Amount,
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		locked, err := s.sellerRepo.LockByID(ctx, cmd.SellerID)
		if err != nil {
			return fromRepository(err)
		}

		if locked.Credit < cmd.Amount {
			return NewServiceError(constants.ErrCodeInsufficientCredit, ErrInsufficientCredit)
		}

		if err := s.sellerRepo.DeductCredit(ctx, locked.ID, cmd.Amount); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return NewServiceError(constants.ErrCodeInsufficientCredit, ErrInsufficientCredit)
			}
			s.log.Error("error decrease seller credit", zap.Error(err))
			return fromRepository(err)
		}

		transaction.CreatedAt = time.Now().UTC()
		if err := s.transactionRepo.Create(ctx, &transaction); err != nil {
			s.log.Error("error create sell transaction", zap.Error(err))
			return fromRepository(err)
		}

		if _, err := s.phoneRepo.GetOrCreate(ctx, cmd.Phone); err != nil {
			s.log.Error("error register phone number", zap.Error(err))
			return fromRepository(err)
		}

		seller = locked
		seller.Credit -= cmd.Amount
		seller.UpdatedAt = transaction.CreatedAt

		return nil
	})
	if err != nil {
		err = fromRepository(err)
	}

	s.metrics.RecordMutation("charge_sale", time.Since(start), ErrorCode(err))

	if err != nil {
		s.logFailure("Charge sale failed", err,
			zap.Int64("sellerID", cmd.SellerID),
			zap.String("phone", cmd.Phone),
			zap.Int64("amount", cmd.Amount),
			zap.String("trackID", cmd.TrackID),
		)
		return MutationResult{}, err
	}

	s.metrics.RecordTransactionCreated(string(model.TxTypeSell), cmd.Amount)

	s.log.Info("Charge sale committed",
		zap.Int64("sellerID", seller.ID),
		zap.String("phone", cmd.Phone),
		zap.Int64("amount", cmd.Amount),
		zap.Int64("credit", seller.Credit),
		zap.Int64("transactionID", transaction.ID),
		zap.String("trackID", cmd.TrackID),
		zap.Duration("duration", time.Since(start)),
	)

	s.events.emit(ctx, LedgerEvent{
		Type:          EventTypeSell,
		SellerID:      seller.ID,
		Phone:         cmd.Phone,
		Amount:        cmd.Amount,
		Credit:        seller.Credit,
		TransactionID: transaction.ID,
		TrackID:       cmd.TrackID,
		CreatedAt:     transaction.CreatedAt,
	})

	return MutationResult{
		Seller:          seller,
		TransactionID:   transaction.ID,
		TransactionTime: transaction.CreatedAt,
	}, nil
}

func (s *ledgerService) logFailure(msg string, err error, fields ...zap.Field) {
	logFailure(s.log, msg, err, fields...)
}

// logFailure logs business rejections at Warn and store faults at Error.
func logFailure(log *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("code", ErrorCode(err)), zap.Error(err))

	switch ErrorCode(err) {
	case constants.ErrCodeOperationFailed, constants.ErrCodeInternalError:
		log.Error(msg, fields...)
	default:
		log.Warn(msg, fields...)
	}
}

func page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
