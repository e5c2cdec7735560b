package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger entry types. Credits raise an account balance, the rest lower it.
const (
	TypeCredit      = "credit"
	TypeDebit       = "debit"
	TypeTransferIn  = "transfer_in"
	TypeTransferOut = "transfer_out"
	TypeCardPayment = "card_payment"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Entry is a request to append one immutable ledger record.
type Entry struct {
	CustomerID  int64
	AccountID   uuid.UUID
	CardID      uuid.NullUUID
	TransferID  uuid.NullUUID
	Type        string
	Amount      decimal.Decimal
	Currency    string
	Description string
	Status      string
}

type TransactionModel struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  int64           `json:"customer_id"`
	AccountID   uuid.UUID       `json:"account_id"`
	CardID      *uuid.UUID      `json:"card_id,omitempty"`
	TransferID  *uuid.UUID      `json:"transfer_id,omitempty"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

func IsCredit(entryType string) bool {
	return entryType == TypeCredit || entryType == TypeTransferIn
}

func IsValidEntryType(entryType string) bool {
	switch entryType {
	case TypeCredit, TypeDebit, TypeTransferIn, TypeTransferOut, TypeCardPayment:
		return true
	}
	return false
}
