package transaction

import (
	"database/sql"

	db "github.com/GenPay/GenPay-Backend/db/sqlc"
	"github.com/shopspring/decimal"
)

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func ToTransactionModel(entry db.LedgerEntry) *TransactionModel {
	amount, err := decimal.NewFromString(entry.Amount)
	if err != nil {
		amount = decimal.Zero
	}

	model := &TransactionModel{
		ID:         entry.ID,
		CustomerID: entry.CustomerID,
		AccountID:  entry.AccountID,
		Type:       entry.Type,
		Amount:     amount,
		Currency:   entry.Currency,
		Status:     entry.Status,
		CreatedAt:  entry.CreatedAt,
	}
	if entry.CardID.Valid {
		id := entry.CardID.UUID
		model.CardID = &id
	}
	if entry.TransferID.Valid {
		id := entry.TransferID.UUID
		model.TransferID = &id
	}
	if entry.Description.Valid {
		model.Description = entry.Description.String
	}
	return model
}

func ToTransactionCollection(entries []db.LedgerEntry) []*TransactionModel {
	collection := make([]*TransactionModel, 0, len(entries))
	for _, e := range entries {
		collection = append(collection, ToTransactionModel(e))
	}
	return collection
}
