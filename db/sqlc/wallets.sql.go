package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const createCustodialWallet = `-- name: CreateCustodialWallet :one
INSERT INTO custodial_wallets (customer_id, address, encrypted_private_key, balance_usdt, balance_trx)
VALUES ($1, $2, $3, 0, 0)
RETURNING id, customer_id, address, encrypted_private_key, balance_usdt, balance_trx, created_at, updated_at
`

type CreateCustodialWalletParams struct {
	CustomerID          int64  `json:"customer_id"`
	Address             string `json:"address"`
	EncryptedPrivateKey string `json:"encrypted_private_key"`
}

func (q *Queries) CreateCustodialWallet(ctx context.Context, arg CreateCustodialWalletParams) (CustodialWallet, error) {
	row := q.db.QueryRowContext(ctx, createCustodialWallet, arg.CustomerID, arg.Address, arg.EncryptedPrivateKey)
	var i CustodialWallet
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Address,
		&i.EncryptedPrivateKey,
		&i.BalanceUsdt,
		&i.BalanceTrx,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getCustodialWallet = `-- name: GetCustodialWallet :one
SELECT id, customer_id, address, encrypted_private_key, balance_usdt, balance_trx, created_at, updated_at
FROM custodial_wallets
WHERE id = $1
`

func (q *Queries) GetCustodialWallet(ctx context.Context, id uuid.UUID) (CustodialWallet, error) {
	row := q.db.QueryRowContext(ctx, getCustodialWallet, id)
	var i CustodialWallet
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Address,
		&i.EncryptedPrivateKey,
		&i.BalanceUsdt,
		&i.BalanceTrx,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getCustodialWalletByCustomerID = `-- name: GetCustodialWalletByCustomerID :one
SELECT id, customer_id, address, encrypted_private_key, balance_usdt, balance_trx, created_at, updated_at
FROM custodial_wallets
WHERE customer_id = $1
`

func (q *Queries) GetCustodialWalletByCustomerID(ctx context.Context, customerID int64) (CustodialWallet, error) {
	row := q.db.QueryRowContext(ctx, getCustodialWalletByCustomerID, customerID)
	var i CustodialWallet
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Address,
		&i.EncryptedPrivateKey,
		&i.BalanceUsdt,
		&i.BalanceTrx,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateCustodialWalletBalances = `-- name: UpdateCustodialWalletBalances :one
UPDATE custodial_wallets
SET balance_usdt = $2, balance_trx = $3, updated_at = now()
WHERE id = $1
RETURNING id, customer_id, address, encrypted_private_key, balance_usdt, balance_trx, created_at, updated_at
`

type UpdateCustodialWalletBalancesParams struct {
	ID          uuid.UUID `json:"id"`
	BalanceUsdt string    `json:"balance_usdt"`
	BalanceTrx  string    `json:"balance_trx"`
}

func (q *Queries) UpdateCustodialWalletBalances(ctx context.Context, arg UpdateCustodialWalletBalancesParams) (CustodialWallet, error) {
	row := q.db.QueryRowContext(ctx, updateCustodialWalletBalances, arg.ID, arg.BalanceUsdt, arg.BalanceTrx)
	var i CustodialWallet
	err := row.Scan(
		&i.ID,
		&i.CustomerID,
		&i.Address,
		&i.EncryptedPrivateKey,
		&i.BalanceUsdt,
		&i.BalanceTrx,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createWalletTransaction = `-- name: CreateWalletTransaction :one
INSERT INTO wallet_transactions (wallet_id, direction, amount, counterparty_address, tx_hash, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, wallet_id, direction, amount, counterparty_address, tx_hash, status, created_at, updated_at
`

type CreateWalletTransactionParams struct {
	WalletID            uuid.UUID      `json:"wallet_id"`
	Direction           string         `json:"direction"`
	Amount              string         `json:"amount"`
	CounterpartyAddress string         `json:"counterparty_address"`
	TxHash              sql.NullString `json:"tx_hash"`
	Status              string         `json:"status"`
}

func (q *Queries) CreateWalletTransaction(ctx context.Context, arg CreateWalletTransactionParams) (WalletTransaction, error) {
	row := q.db.QueryRowContext(ctx, createWalletTransaction,
		arg.WalletID,
		arg.Direction,
		arg.Amount,
		arg.CounterpartyAddress,
		arg.TxHash,
		arg.Status,
	)
	var i WalletTransaction
	err := row.Scan(
		&i.ID,
		&i.WalletID,
		&i.Direction,
		&i.Amount,
		&i.CounterpartyAddress,
		&i.TxHash,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listWalletTransactionsByWalletID = `-- name: ListWalletTransactionsByWalletID :many
SELECT id, wallet_id, direction, amount, counterparty_address, tx_hash, status, created_at, updated_at
FROM wallet_transactions
WHERE wallet_id = $1
ORDER BY created_at DESC
LIMIT $2
`

type ListWalletTransactionsByWalletIDParams struct {
	WalletID uuid.UUID `json:"wallet_id"`
	Limit    int32     `json:"limit"`
}

func (q *Queries) ListWalletTransactionsByWalletID(ctx context.Context, arg ListWalletTransactionsByWalletIDParams) ([]WalletTransaction, error) {
	rows, err := q.db.QueryContext(ctx, listWalletTransactionsByWalletID, arg.WalletID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []WalletTransaction{}
	for rows.Next() {
		var i WalletTransaction
		if err := rows.Scan(
			&i.ID,
			&i.WalletID,
			&i.Direction,
			&i.Amount,
			&i.CounterpartyAddress,
			&i.TxHash,
			&i.Status,
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

const updateWalletTransactionStatus = `-- name: UpdateWalletTransactionStatus :one
UPDATE wallet_transactions
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING id, wallet_id, direction, amount, counterparty_address, tx_hash, status, created_at, updated_at
`

type UpdateWalletTransactionStatusParams struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

func (q *Queries) UpdateWalletTransactionStatus(ctx context.Context, arg UpdateWalletTransactionStatusParams) (WalletTransaction, error) {
	row := q.db.QueryRowContext(ctx, updateWalletTransactionStatus, arg.ID, arg.Status)
	var i WalletTransaction
	err := row.Scan(
		&i.ID,
		&i.WalletID,
		&i.Direction,
		&i.Amount,
		&i.CounterpartyAddress,
		&i.TxHash,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
