package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const createLedgerEntry = `-- name: CreateLedgerEntry :one
INSERT INTO ledger_entries (
    customer_id, account_id, card_id, transfer_id,
    type, amount, currency, merchant_name, category, description, status
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, customer_id, account_id, card_id, transfer_id, type, amount, currency, merchant_name, category, description, status, created_at
`

type CreateLedgerEntryParams struct {
	CustomerID   int64          `json:"customer_id"`
	AccountID    uuid.UUID      `json:"account_id"`
	CardID       uuid.NullUUID  `json:"card_id"`
	TransferID   uuid.NullUUID  `json:"transfer_id"`
	Type         string         `json:"type"`
	Amount       string         `json:"amount"`
	Currency     string         `json:"currency"`
	MerchantName sql.NullString `json:"merchant_name"`
	Category     sql.NullString `json:"category"`
	Description  sql.NullString `json:"description"`
	Status       string         `json:"status"`
}

func (q *Queries) CreateLedgerEntry(ctx context.Context, arg CreateLedgerEntryParams) (LedgerEntry, error) {
	row := q.db.QueryRowContext(ctx, createLedgerEntry,
		arg.CustomerID,
		arg.AccountID,
		arg.CardID,
		arg.TransferID,
		arg.Type,
		arg.Amount,
		arg.Currency,
		arg.MerchantName,
		arg.Category,
		arg.Description,
		arg.Status,
	)
	var i LedgerEntry
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.AccountID,
		&i.CardID,
		&i.TransferID,
		&i.Type,
		&i.Amount,
		&i.Currency,
		&i.MerchantName,
		&i.Category,
		&i.Description,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const listLedgerEntriesByAccountID = `-- name: ListLedgerEntriesByAccountID :many
SELECT id, customer_id, account_id, card_id, transfer_id, type, amount, currency, merchant_name, category, description, status, created_at
FROM ledger_entries
WHERE account_id = $1
ORDER BY created_at DESC
LIMIT $2
`

type ListLedgerEntriesByAccountIDParams struct {
	AccountID uuid.UUID `json:"account_id"`
	Limit     int32     `json:"limit"`
}

func (q *Queries) ListLedgerEntriesByAccountID(ctx context.Context, arg ListLedgerEntriesByAccountIDParams) ([]LedgerEntry, error) {
	rows, err := q.db.QueryContext(ctx, listLedgerEntriesByAccountID, arg.AccountID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []LedgerEntry{}
	for rows.Next() {
		var i LedgerEntry
		if err := rows.Scan(
			&i.ID,
			&i.CustomerID,
			&i.AccountID,
			&i.CardID,
			&i.TransferID,
			&i.Type,
			&i.Amount,
			&i.Currency,
			&i.MerchantName,
			&i.Category,
			&i.Description,
			&i.Status,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listLedgerEntriesByCardID = `-- name: ListLedgerEntriesByCardID :many
SELECT id, customer_id, account_id, card_id, transfer_id, type, amount, currency, merchant_name, category, description, status, created_at
FROM ledger_entries
WHERE card_id = $1
ORDER BY created_at DESC
LIMIT $2
`

type ListLedgerEntriesByCardIDParams struct {
	CardID uuid.NullUUID `json:"card_id"`
	Limit  int32         `json:"limit"`
}

func (q *Queries) ListLedgerEntriesByCardID(ctx context.Context, arg ListLedgerEntriesByCardIDParams) ([]LedgerEntry, error) {
	rows, err := q.db.QueryContext(ctx, listLedgerEntriesByCardID, arg.CardID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []LedgerEntry{}
	for rows.Next() {
		var i LedgerEntry
		if err := rows.Scan(
			&i.ID,
			&i.CustomerID,
			&i.AccountID,
			&i.CardID,
			&i.TransferID,
			&i.Type,
			&i.Amount,
			&i.Currency,
			&i.MerchantName,
			&i.Category,
			&i.Description,
			&i.Status,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getLedgerEntryByTransferAndType = `-- name: GetLedgerEntryByTransferAndType :one
SELECT id, customer_id, account_id, card_id, transfer_id, type, amount, currency, merchant_name, category, description, status, created_at
FROM ledger_entries
WHERE transfer_id = $1 AND type = $2
`

type GetLedgerEntryByTransferAndTypeParams struct {
	TransferID uuid.NullUUID `json:"transfer_id"`
	Type       string        `json:"type"`
}

func (q *Queries) GetLedgerEntryByTransferAndType(ctx context.Context, arg GetLedgerEntryByTransferAndTypeParams) (LedgerEntry, error) {
	row := q.db.QueryRowContext(ctx, getLedgerEntryByTransferAndType, arg.TransferID, arg.Type)
	var i LedgerEntry
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.AccountID,
		&i.CardID,
		&i.TransferID,
		&i.Type,
		&i.Amount,
		&i.Currency,
		&i.MerchantName,
		&i.Category,
		&i.Description,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const sumPostedLedgerAmounts = `-- name: SumPostedLedgerAmounts :one
SELECT COALESCE(SUM(
    CASE WHEN type IN ('credit', 'transfer_in') THEN amount ELSE -amount END
), 0)::text AS posted
FROM ledger_entries
WHERE account_id = $1 AND status = 'completed'
`

// SumPostedLedgerAmounts recomputes an account balance from its completed
// entries. The cached accounts.balance must always agree with this figure.
func (q *Queries) SumPostedLedgerAmounts(ctx context.Context, accountID uuid.UUID) (string, error) {
	row := q.db.QueryRowContext(ctx, sumPostedLedgerAmounts, accountID)
	var posted string
	err := row.Scan(&posted)
	return posted, err
}
