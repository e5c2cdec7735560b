package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID            uuid.UUID `json:"id"`
	CustomerID    int64     `json:"customer_id"`
	Currency      string    `json:"currency"`
	AccountNumber string    `json:"account_number"`
	Type          string    `json:"type"`
	Balance       string    `json:"balance"`
	Status        string    `json:"status"`
	IsPrimary     bool      `json:"is_primary"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Transfer struct {
	ID               uuid.UUID      `json:"id"`
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
	Status           string         `json:"status"`
	TransferType     string         `json:"transfer_type"`
	EstimatedArrival time.Time      `json:"estimated_arrival"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type LedgerEntry struct {
	ID           uuid.UUID      `json:"id"`
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
	CreatedAt    time.Time      `json:"created_at"`
}

type CustodialWallet struct {
	ID                  uuid.UUID `json:"id"`
	CustomerID          int64     `json:"customer_id"`
	Address             string    `json:"address"`
	EncryptedPrivateKey string    `json:"encrypted_private_key"`
	BalanceUsdt         string    `json:"balance_usdt"`
	BalanceTrx          string    `json:"balance_trx"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type WalletTransaction struct {
	ID                  uuid.UUID      `json:"id"`
	WalletID            uuid.UUID      `json:"wallet_id"`
	Direction           string         `json:"direction"`
	Amount              string         `json:"amount"`
	CounterpartyAddress string         `json:"counterparty_address"`
	TxHash              sql.NullString `json:"tx_hash"`
	Status              string         `json:"status"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

type ExchangeRate struct {
	ID            int64     `json:"id"`
	BaseCurrency  string    `json:"base_currency"`
	QuoteCurrency string    `json:"quote_currency"`
	Rate          string    `json:"rate"`
	Source        string    `json:"source"`
	EffectiveTime time.Time `json:"effective_time"`
	CreatedAt     time.Time `json:"created_at"`
}
