package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrLimitExceeded       = errors.New("daily limit exceeded")
	ErrNotFound            = errors.New("not found")
	ErrExpired             = errors.New("expired")
	ErrNotStarted          = errors.New("not started")
	ErrAlreadyUsed         = errors.New("already used")
	ErrNotEligible         = errors.New("not eligible")
	ErrLimitReached        = errors.New("activation limit reached")
	ErrConflict            = errors.New("concurrent modification")
	ErrRatesUnavailable    = errors.New("exchange rates unavailable")
	ErrBusy                = errors.New("store busy")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidWalletKind   = errors.New("invalid wallet kind")
)

// InsufficientBalanceError carries the spendable balance at the moment of rejection.
type InsufficientBalanceError struct {
	Available decimal.Decimal
}

func NewInsufficientBalance(available decimal.Decimal) *InsufficientBalanceError {
	return &InsufficientBalanceError{Available: available}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %s GTON", e.Available.StringFixed(Scale))
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// Retryable reports whether err is transient store contention.
func Retryable(err error) bool {
	return errors.Is(err, ErrBusy) || errors.Is(err, ErrConflict)
}
