package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const createTransfer = `-- name: CreateTransfer :one
INSERT INTO transfers (
    customer_id, from_account_id, to_account_id,
    recipient_email, recipient_name, recipient_iban, recipient_bic,
    amount, from_currency, to_currency, exchange_rate,
    fee, total_amount, reference, status, transfer_type, estimated_arrival
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 'pending', $15, $16)
RETURNING id, customer_id, from_account_id, to_account_id, recipient_email, recipient_name, recipient_iban, recipient_bic, amount, from_currency, to_currency, exchange_rate, fee, total_amount, reference, status, transfer_type, estimated_arrival, created_at, updated_at
`

type CreateTransferParams struct {
	CustomerID       int64          `json:"customer_id"`
	FromAccountID    uuid.UUID      `json:"from_account_id"`
	ToAccountID      uuid.NullUUID  `json:"to_account_id"`
	RecipientEmail   sql.NullString `json:"recipient_email"`
	RecipientName    sql.NullString `json:"recipient_name"`
	RecipientIban    sql.NullString `json:"recipient_iban"`
	RecipientBic     sql.NullString `json:"recipient_bic"`
	Amount           string         `json:"amount"`
	FromCurrency     string         `json:"from_currency"`
	ToCurrency       string         `json:"to_currency"`
	ExchangeRate     sql.NullString `json:"exchange_rate"`
	Fee              string         `json:"fee"`
	TotalAmount      string         `json:"total_amount"`
	Reference        sql.NullString `json:"reference"`
	TransferType     string         `json:"transfer_type"`
	EstimatedArrival time.Time      `json:"estimated_arrival"`
}

func (q *Queries) CreateTransfer(ctx context.Context, arg CreateTransferParams) (Transfer, error) {
	row := q.db.QueryRowContext(ctx, createTransfer,
		arg.CustomerID,
		arg.FromAccountID,
		arg.ToAccountID,
		arg.RecipientEmail,
		arg.RecipientName,
		arg.RecipientIban,
		arg.RecipientBic,
		arg.Amount,
		arg.FromCurrency,
		arg.ToCurrency,
		arg.ExchangeRate,
		arg.Fee,
		arg.TotalAmount,
		arg.Reference,
		arg.TransferType,
		arg.EstimatedArrival,
	)
	var i Transfer
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.FromAccountID,
		&i.ToAccountID,
		&i.RecipientEmail,
		&i.RecipientName,
		&i.RecipientIban,
		&i.RecipientBic,
		&i.Amount,
		&i.FromCurrency,
		&i.ToCurrency,
		&i.ExchangeRate,
		&i.Fee,
		&i.TotalAmount,
		&i.Reference,
		&i.Status,
		&i.TransferType,
		&i.EstimatedArrival,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getTransfer = `-- name: GetTransfer :one
SELECT id, customer_id, from_account_id, to_account_id, recipient_email, recipient_name, recipient_iban, recipient_bic, amount, from_currency, to_currency, exchange_rate, fee, total_amount, reference, status, transfer_type, estimated_arrival, created_at, updated_at
FROM transfers
WHERE id = $1
`

func (q *Queries) GetTransfer(ctx context.Context, id uuid.UUID) (Transfer, error) {
	row := q.db.QueryRowContext(ctx, getTransfer, id)
	var i Transfer
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.FromAccountID,
		&i.ToAccountID,
		&i.RecipientEmail,
		&i.RecipientName,
		&i.RecipientIban,
		&i.RecipientBic,
		&i.Amount,
		&i.FromCurrency,
		&i.ToCurrency,
		&i.ExchangeRate,
		&i.Fee,
		&i.TotalAmount,
		&i.Reference,
		&i.Status,
		&i.TransferType,
		&i.EstimatedArrival,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getTransferForUpdate = `-- name: GetTransferForUpdate :one
SELECT id, customer_id, from_account_id, to_account_id, recipient_email, recipient_name, recipient_iban, recipient_bic, amount, from_currency, to_currency, exchange_rate, fee, total_amount, reference, status, transfer_type, estimated_arrival, created_at, updated_at
FROM transfers
WHERE id = $1
FOR NO KEY UPDATE
`

func (q *Queries) GetTransferForUpdate(ctx context.Context, id uuid.UUID) (Transfer, error) {
	row := q.db.QueryRowContext(ctx, getTransferForUpdate, id)
	var i Transfer
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.FromAccountID,
		&i.ToAccountID,
		&i.RecipientEmail,
		&i.RecipientName,
		&i.RecipientIban,
		&i.RecipientBic,
		&i.Amount,
		&i.FromCurrency,
		&i.ToCurrency,
		&i.ExchangeRate,
		&i.Fee,
		&i.TotalAmount,
		&i.Reference,
		&i.Status,
		&i.TransferType,
		&i.EstimatedArrival,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listTransfersByCustomerID = `-- name: ListTransfersByCustomerID :many
SELECT id, customer_id, from_account_id, to_account_id, recipient_email, recipient_name, recipient_iban, recipient_bic, amount, from_currency, to_currency, exchange_rate, fee, total_amount, reference, status, transfer_type, estimated_arrival, created_at, updated_at
FROM transfers
WHERE customer_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListTransfersByCustomerID(ctx context.Context, customerID int64) ([]Transfer, error) {
	rows, err := q.db.QueryContext(ctx, listTransfersByCustomerID, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transfer{}
	for rows.Next() {
		var i Transfer
		if err := rows.Scan(
			&i.ID,
			&i.CustomerID,
			&i.FromAccountID,
			&i.ToAccountID,
			&i.RecipientEmail,
			&i.RecipientName,
			&i.RecipientIban,
			&i.RecipientBic,
			&i.Amount,
			&i.FromCurrency,
			&i.ToCurrency,
			&i.ExchangeRate,
			&i.Fee,
			&i.TotalAmount,
			&i.Reference,
			&i.Status,
			&i.TransferType,
			&i.EstimatedArrival,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const updateTransferStatus = `-- name: UpdateTransferStatus :one
UPDATE transfers
SET status = $2, updated_at = now()
WHERE id = $1 AND status = $3
RETURNING id, customer_id, from_account_id, to_account_id, recipient_email, recipient_name, recipient_iban, recipient_bic, amount, from_currency, to_currency, exchange_rate, fee, total_amount, reference, status, transfer_type, estimated_arrival, created_at, updated_at
`

type UpdateTransferStatusParams struct {
	ID         uuid.UUID `json:"id"`
	Status     string    `json:"status"`
	FromStatus string    `json:"from_status"`
}

// UpdateTransferStatus flips a transfer between states. The guard on the
// current status keeps terminal states terminal even under concurrent calls.
func (q *Queries) UpdateTransferStatus(ctx context.Context, arg UpdateTransferStatusParams) (Transfer, error) {
	row := q.db.QueryRowContext(ctx, updateTransferStatus, arg.ID, arg.Status, arg.FromStatus)
	var i Transfer
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.FromAccountID,
		&i.ToAccountID,
		&i.RecipientEmail,
		&i.RecipientName,
		&i.RecipientIban,
		&i.RecipientBic,
		&i.Amount,
		&i.FromCurrency,
		&i.ToCurrency,
		&i.ExchangeRate,
		&i.Fee,
		&i.TotalAmount,
		&i.Reference,
		&i.Status,
		&i.TransferType,
		&i.EstimatedArrival,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listUnsettledTransfers = `-- name: ListUnsettledTransfers :many
SELECT id, customer_id, from_account_id, to_account_id, recipient_email, recipient_name, recipient_iban, recipient_bic, amount, from_currency, to_currency, exchange_rate, fee, total_amount, reference, status, transfer_type, estimated_arrival, created_at, updated_at
FROM transfers
WHERE status IN ('pending', 'processing') AND updated_at < $1
ORDER BY created_at
`

func (q *Queries) ListUnsettledTransfers(ctx context.Context, updatedBefore time.Time) ([]Transfer, error) {
	rows, err := q.db.QueryContext(ctx, listUnsettledTransfers, updatedBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transfer{}
	for rows.Next() {
		var i Transfer
		if err := rows.Scan(
			&i.ID,
			&i.CustomerID,
			&i.FromAccountID,
			&i.ToAccountID,
			&i.RecipientEmail,
			&i.RecipientName,
			&i.RecipientIban,
			&i.RecipientBic,
			&i.Amount,
			&i.FromCurrency,
			&i.ToCurrency,
			&i.ExchangeRate,
			&i.Fee,
			&i.TotalAmount,
			&i.Reference,
			&i.Status,
			&i.TransferType,
			&i.EstimatedArrival,
			&i.CreatedAt,
			&i.UpdatedAt,
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
