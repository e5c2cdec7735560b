package account

import (
	"time"

	db "github.com/GenPay/GenPay-Backend/db/sqlc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountModel struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    int64           `json:"customer_id"`
	Currency      string          `json:"currency"`
	AccountNumber string          `json:"account_number"`
	Type          string          `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
	IsPrimary     bool            `json:"is_primary"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func ToAccountModel(account db.Account) *AccountModel {
	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		balance = decimal.Zero
	}
	return &AccountModel{
		ID:            account.ID,
		CustomerID:    account.CustomerID,
		Currency:      account.Currency,
		AccountNumber: account.AccountNumber,
		Type:          account.Type,
		Balance:       balance,
		Status:        account.Status,
		IsPrimary:     account.IsPrimary,
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}
}

func ToAccountCollection(accounts []db.Account) []*AccountModel {
	collection := make([]*AccountModel, 0, len(accounts))
	for _, a := range accounts {
		collection = append(collection, ToAccountModel(a))
	}
	return collection
}
