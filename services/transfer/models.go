package transfer

import (
	"time"

	db "github.com/GenPay/GenPay-Backend/db/sqlc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

const (
	TypeInternal    = "internal"
	TypeExternal    = "external"
	TypeCardPayment = "card_payment"
)

// Recipient describes an external counterparty. The fields are opaque to
// the engine; delivery is someone else's problem.
type Recipient struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Iban  string `json:"iban,omitempty"`
	Bic   string `json:"bic,omitempty"`
}

func (r Recipient) IsZero() bool {
	return r.Email == "" && r.Name == "" && r.Iban == "" && r.Bic == ""
}

// InitiateRequest carries everything needed to create a pending transfer.
type InitiateRequest struct {
	FromAccountID uuid.UUID
	ToAccountID   *uuid.UUID
	Recipient     Recipient
	Amount        decimal.Decimal
	FromCurrency  string
	ToCurrency    string
	TransferType  string
	Reference     string
}

type TransferModel struct {
	ID               uuid.UUID        `json:"id"`
	CustomerID       int64            `json:"customer_id"`
	FromAccountID    uuid.UUID        `json:"from_account_id"`
	ToAccountID      *uuid.UUID       `json:"to_account_id,omitempty"`
	Recipient        *Recipient       `json:"recipient,omitempty"`
	Amount           decimal.Decimal  `json:"amount"`
	FromCurrency     string           `json:"from_currency"`
	ToCurrency       string           `json:"to_currency"`
	ExchangeRate     *decimal.Decimal `json:"exchange_rate,omitempty"`
	Fee              decimal.Decimal  `json:"fee"`
	TotalAmount      decimal.Decimal  `json:"total_amount"`
	Reference        string           `json:"reference,omitempty"`
	Status           string           `json:"status"`
	TransferType     string           `json:"transfer_type"`
	EstimatedArrival time.Time        `json:"estimated_arrival"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func ToTransferModel(t db.Transfer) *TransferModel {
	model := &TransferModel{
		ID:               t.ID,
		CustomerID:       t.CustomerID,
		FromAccountID:    t.FromAccountID,
		Amount:           mustDecimal(t.Amount),
		FromCurrency:     t.FromCurrency,
		ToCurrency:       t.ToCurrency,
		Fee:              mustDecimal(t.Fee),
		TotalAmount:      mustDecimal(t.TotalAmount),
		Status:           t.Status,
		TransferType:     t.TransferType,
		EstimatedArrival: t.EstimatedArrival,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if t.ToAccountID.Valid {
		id := t.ToAccountID.UUID
		model.ToAccountID = &id
	}
	if t.ExchangeRate.Valid {
		rate := mustDecimal(t.ExchangeRate.String)
		model.ExchangeRate = &rate
	}
	if t.Reference.Valid {
		model.Reference = t.Reference.String
	}
	recipient := Recipient{
		Email: t.RecipientEmail.String,
		Name:  t.RecipientName.String,
		Iban:  t.RecipientIban.String,
		Bic:   t.RecipientBic.String,
	}
	if !recipient.IsZero() {
		model.Recipient = &recipient
	}
	return model
}

func ToTransferCollection(transfers []db.Transfer) []*TransferModel {
	collection := make([]*TransferModel, 0, len(transfers))
	for _, t := range transfers {
		collection = append(collection, ToTransferModel(t))
	}
	return collection
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
