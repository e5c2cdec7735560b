package transfer

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrTransferNotFound    = fmt.Errorf("transfer not found")
	ErrTransferNotPending  = fmt.Errorf("transfer is no longer pending")
	ErrInvalidAmount       = fmt.Errorf("transfer amount must be greater than zero")
	ErrInvalidTransferType = fmt.Errorf("unknown transfer type")
	ErrMissingDestination  = fmt.Errorf("internal transfer requires a destination account")
	ErrMissingRecipient    = fmt.Errorf("external transfer requires recipient details")
	ErrSameAccount         = fmt.Errorf("cannot transfer to the source account")
	ErrAccountNotFound     = fmt.Errorf("account not found")
	ErrAccountNotActive    = fmt.Errorf("account is not active")
	ErrCurrencyMismatch    = fmt.Errorf("currency does not match account currency")
	ErrRateUnavailable     = fmt.Errorf("no exchange rate available for currency pair")
	ErrDailyCapExceeded    = fmt.Errorf("daily transfer limit exceeded")
	ErrNotYours            = fmt.Errorf("transfer does not belong to this customer")
)

// InsufficientFundsError reports exactly how short the source account is,
// so callers can surface a useful message instead of a bare refusal.
type InsufficientFundsError struct {
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %v, required %v (amount plus fee)", e.Available, e.Required)
}

type TransferError struct {
	inner      error
	TransferID string
}

func NewTransferError(inner error, transferID string) *TransferError {
	return &TransferError{inner: inner, TransferID: transferID}
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer %v: %v", e.TransferID, e.inner)
}

func (e *TransferError) Unwrap() error {
	return e.inner
}
