package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Querier interface {
	AdjustAccountBalance(ctx context.Context, arg AdjustAccountBalanceParams) (Account, error)
	ClearPrimaryAccounts(ctx context.Context, arg ClearPrimaryAccountsParams) error
	CloseAccountIfZero(ctx context.Context, id uuid.UUID) (Account, error)
	CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error)
	CreateCustodialWallet(ctx context.Context, arg CreateCustodialWalletParams) (CustodialWallet, error)
	CreateExchangeRate(ctx context.Context, arg CreateExchangeRateParams) (ExchangeRate, error)
	CreateLedgerEntry(ctx context.Context, arg CreateLedgerEntryParams) (LedgerEntry, error)
	CreateTransfer(ctx context.Context, arg CreateTransferParams) (Transfer, error)
	CreateWalletTransaction(ctx context.Context, arg CreateWalletTransactionParams) (WalletTransaction, error)
	GetAccount(ctx context.Context, id uuid.UUID) (Account, error)
	GetCustodialWallet(ctx context.Context, id uuid.UUID) (CustodialWallet, error)
	GetCustodialWalletByCustomerID(ctx context.Context, customerID int64) (CustodialWallet, error)
	GetLatestExchangeRate(ctx context.Context, arg GetLatestExchangeRateParams) (ExchangeRate, error)
	GetLedgerEntryByTransferAndType(ctx context.Context, arg GetLedgerEntryByTransferAndTypeParams) (LedgerEntry, error)
	GetTransfer(ctx context.Context, id uuid.UUID) (Transfer, error)
	GetTransferForUpdate(ctx context.Context, id uuid.UUID) (Transfer, error)
	ListAccountsByCustomerAndCurrency(ctx context.Context, arg ListAccountsByCustomerAndCurrencyParams) ([]Account, error)
	ListAccountsByCustomerID(ctx context.Context, customerID int64) ([]Account, error)
	ListLatestExchangeRates(ctx context.Context) ([]ExchangeRate, error)
	ListLedgerEntriesByAccountID(ctx context.Context, arg ListLedgerEntriesByAccountIDParams) ([]LedgerEntry, error)
	ListLedgerEntriesByCardID(ctx context.Context, arg ListLedgerEntriesByCardIDParams) ([]LedgerEntry, error)
	ListTransfersByCustomerID(ctx context.Context, customerID int64) ([]Transfer, error)
	ListUnsettledTransfers(ctx context.Context, updatedBefore time.Time) ([]Transfer, error)
	ListWalletTransactionsByWalletID(ctx context.Context, arg ListWalletTransactionsByWalletIDParams) ([]WalletTransaction, error)
	SumPostedLedgerAmounts(ctx context.Context, accountID uuid.UUID) (string, error)
	UpdateCustodialWalletBalances(ctx context.Context, arg UpdateCustodialWalletBalancesParams) (CustodialWallet, error)
	UpdateTransferStatus(ctx context.Context, arg UpdateTransferStatusParams) (Transfer, error)
	UpdateWalletTransactionStatus(ctx context.Context, arg UpdateWalletTransactionStatusParams) (WalletTransaction, error)
}

var _ Querier = (*Queries)(nil)
