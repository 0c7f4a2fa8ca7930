package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrSellerNotFound        = errors.New("SELLER_NOT_FOUND")
	ErrSellerExists          = errors.New("SELLER_EXISTS")
	ErrCreditRequestNotFound = errors.New("CREDIT_REQUEST_NOT_FOUND")
	ErrPhoneNumberNotFound   = errors.New("PHONE_NUMBER_NOT_FOUND")
	ErrLockTimeout           = errors.New("LOCK_TIMEOUT")
	ErrNoRowsAffected        = errors.New("NO_ROWS_AFFECTED")
)

const (
	mysqlDuplicateEntry   = 1062
	mysqlLockWaitTimeout  = 1205
	mysqlDeadlock         = 1213
	pgUniqueViolation     = "23505"
	pgLockNotAvailable    = "55P03"
	pgDeadlockDetected    = "40P01"
	pgSerializationFailed = "40001"
)

// translate maps driver level failures onto repository sentinels. Anything
// it does not recognise is returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case isLockTimeout(err):
		return fmt.Errorf("%w: %s", ErrLockTimeout, err.Error())
	default:
		return err
	}
}

func isLockTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlLockWaitTimeout || mysqlErr.Number == mysqlDeadlock
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgDeadlockDetected, pgSerializationFailed:
			return true
		}
	}

	return false
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	return false
}

// IsBusy reports whether err means the row lock could not be taken in time,
// the transaction lost a deadlock, or the caller's deadline expired. Such
// operations left no writes behind and are safe to retry.
func IsBusy(err error) bool {
	return errors.Is(err, ErrLockTimeout) || isLockTimeout(err)
}
