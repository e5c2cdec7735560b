package db

import (
	"context"

	"github.com/google/uuid"
)

const createAccount = `-- name: CreateAccount :one
INSERT INTO accounts (customer_id, currency, account_number, type, balance, status, is_primary)
VALUES ($1, $2, $3, $4, $5, 'active', $6)
RETURNING id, customer_id, currency, account_number, type, balance, status, is_primary, created_at, updated_at
`

type CreateAccountParams struct {
	CustomerID    int64  `json:"customer_id"`
	Currency      string `json:"currency"`
	AccountNumber string `json:"account_number"`
	Type          string `json:"type"`
	Balance       string `json:"balance"`
	IsPrimary     bool   `json:"is_primary"`
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error) {
	row := q.db.QueryRowContext(ctx, createAccount,
		arg.CustomerID,
		arg.Currency,
		arg.AccountNumber,
		arg.Type,
		arg.Balance,
		arg.IsPrimary,
	)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Currency,
		&i.AccountNumber,
		&i.Type,
		&i.Balance,
		&i.Status,
		&i.IsPrimary,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const clearPrimaryAccounts = `-- name: ClearPrimaryAccounts :exec
UPDATE accounts
SET is_primary = false, updated_at = now()
WHERE customer_id = $1 AND currency = $2 AND is_primary = true
`

type ClearPrimaryAccountsParams struct {
	CustomerID int64  `json:"customer_id"`
	Currency   string `json:"currency"`
}

func (q *Queries) ClearPrimaryAccounts(ctx context.Context, arg ClearPrimaryAccountsParams) error {
	_, err := q.db.ExecContext(ctx, clearPrimaryAccounts, arg.CustomerID, arg.Currency)
	return err
}

const getAccount = `-- name: GetAccount :one
SELECT id, customer_id, currency, account_number, type, balance, status, is_primary, created_at, updated_at
FROM accounts
WHERE id = $1
`

func (q *Queries) GetAccount(ctx context.Context, id uuid.UUID) (Account, error) {
	row := q.db.QueryRowContext(ctx, getAccount, id)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Currency,
		&i.AccountNumber,
		&i.Type,
		&i.Balance,
		&i.Status,
		&i.IsPrimary,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listAccountsByCustomerID = `-- name: ListAccountsByCustomerID :many
SELECT id, customer_id, currency, account_number, type, balance, status, is_primary, created_at, updated_at
FROM accounts
WHERE customer_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListAccountsByCustomerID(ctx context.Context, customerID int64) ([]Account, error) {
	rows, err := q.db.QueryContext(ctx, listAccountsByCustomerID, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.CustomerID,
			&i.Currency,
			&i.AccountNumber,
			&i.Type,
			&i.Balance,
			&i.Status,
			&i.IsPrimary,
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

const listAccountsByCustomerAndCurrency = `-- name: ListAccountsByCustomerAndCurrency :many
SELECT id, customer_id, currency, account_number, type, balance, status, is_primary, created_at, updated_at
FROM accounts
WHERE customer_id = $1 AND currency = $2
ORDER BY created_at DESC
`

type ListAccountsByCustomerAndCurrencyParams struct {
	CustomerID int64  `json:"customer_id"`
	Currency   string `json:"currency"`
}

func (q *Queries) ListAccountsByCustomerAndCurrency(ctx context.Context, arg ListAccountsByCustomerAndCurrencyParams) ([]Account, error) {
	rows, err := q.db.QueryContext(ctx, listAccountsByCustomerAndCurrency, arg.CustomerID, arg.Currency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.CustomerID,
			&i.Currency,
			&i.AccountNumber,
			&i.Type,
			&i.Balance,
			&i.Status,
			&i.IsPrimary,
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

const adjustAccountBalance = `-- name: AdjustAccountBalance :one
UPDATE accounts
SET balance = balance + $2, updated_at = now()
WHERE id = $1
  AND status = 'active'
  AND balance + $2 >= 0
RETURNING id, customer_id, currency, account_number, type, balance, status, is_primary, created_at, updated_at
`

type AdjustAccountBalanceParams struct {
	ID     uuid.UUID `json:"id"`
	Amount string    `json:"amount"`
}

// AdjustAccountBalance is the single privileged balance mutation. The WHERE
// clause makes the update conditional so a concurrent debit can never drive
// the balance negative; no rows updated means the condition failed.
func (q *Queries) AdjustAccountBalance(ctx context.Context, arg AdjustAccountBalanceParams) (Account, error) {
	row := q.db.QueryRowContext(ctx, adjustAccountBalance, arg.ID, arg.Amount)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Currency,
		&i.AccountNumber,
		&i.Type,
		&i.Balance,
		&i.Status,
		&i.IsPrimary,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const closeAccountIfZero = `-- name: CloseAccountIfZero :one
UPDATE accounts
SET status = 'closed', is_primary = false, updated_at = now()
WHERE id = $1
  AND status <> 'closed'
  AND balance = 0
RETURNING id, customer_id, currency, account_number, type, balance, status, is_primary, created_at, updated_at
`

func (q *Queries) CloseAccountIfZero(ctx context.Context, id uuid.UUID) (Account, error) {
	row := q.db.QueryRowContext(ctx, closeAccountIfZero, id)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Currency,
		&i.AccountNumber,
		&i.Type,
		&i.Balance,
		&i.Status,
		&i.IsPrimary,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
