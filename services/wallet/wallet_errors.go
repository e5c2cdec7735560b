package wallet

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound       = fmt.Errorf("wallet not found")
	ErrInvalidAddress       = fmt.Errorf("not a valid tron address")
	ErrInvalidAmount        = fmt.Errorf("amount must be greater than zero")
	ErrBlockchainSubmission = fmt.Errorf("blockchain submission failed")
	ErrKeyUnavailable       = fmt.Errorf("wallet signing key could not be recovered")
)

// InsufficientBalanceError names the asset so an operator can tell a token
// shortfall from a gas shortfall at a glance.
type InsufficientBalanceError struct {
	Asset     string
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %v balance: available %v, required %v", e.Asset, e.Available, e.Required)
}
