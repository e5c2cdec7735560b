package account

import (
	"context"
	"database/sql"
	"fmt"

	db "github.com/GenPay/GenPay-Backend/db/sqlc"
	"github.com/GenPay/GenPay-Backend/services/currency"
	"github.com/GenPay/GenPay-Backend/services/monitoring/logging"
	"github.com/GenPay/GenPay-Backend/utils"
	"github.com/google/uuid"
)

var ValidAccountTypes = []string{"personal", "business"}

// AccountService owns account records and their cached balances. Balance
// mutation itself is the settlement engine's privilege; this service only
// creates, closes and reads accounts.
type AccountService struct {
	store  db.Datastore
	logger *logging.Logger
	numGen *utils.AccountNumberGenerator
}

func NewAccountService(store db.Datastore, logger *logging.Logger, numGen *utils.AccountNumberGenerator) *AccountService {
	return &AccountService{
		store:  store,
		logger: logger,
		numGen: numGen,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, customerID int64, currencyCode string, accountType string, isPrimary bool) (*AccountModel, error) {
	if currency.IsCurrencyInvalid(currencyCode) {
		return nil, currency.ErrUnsupportedCurrency
	}

	if accountType == "" {
		accountType = "personal"
	}
	if !isValidAccountType(accountType) {
		return nil, ErrInvalidAccountType
	}

	accountNumber, err := s.numGen.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAccountNotPossible, err)
	}

	params := db.CreateAccountParams{
		CustomerID:    customerID,
		Currency:      currencyCode,
		AccountNumber: accountNumber,
		Type:          accountType,
		Balance:       "0",
		IsPrimary:     isPrimary,
	}

	var created db.Account
	if isPrimary {
		// Demoting siblings and inserting happen in one transaction so the
		// one-primary-per-(customer, currency) invariant holds under
		// concurrent creations; the partial unique index backs it up.
		err = s.store.ExecTx(ctx, func(q db.Querier) error {
			if err := q.ClearPrimaryAccounts(ctx, db.ClearPrimaryAccountsParams{
				CustomerID: customerID,
				Currency:   currencyCode,
			}); err != nil {
				return err
			}
			var txErr error
			created, txErr = q.CreateAccount(ctx, params)
			return txErr
		})
	} else {
		created, err = s.store.CreateAccount(ctx, params)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("created %v account %v for customer %v", currencyCode, created.AccountNumber, customerID))
	return ToAccountModel(created), nil
}

func (s *AccountService) CloseAccount(ctx context.Context, customerID int64, accountID uuid.UUID) (*AccountModel, error) {
	existing, err := s.store.GetAccount(ctx, accountID)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, err
	}

	if existing.CustomerID != customerID {
		return nil, ErrNotYours
	}
	if existing.Status == "closed" {
		return nil, NewAccountError(ErrAccountClosed, accountID.String())
	}

	closed, err := s.store.CloseAccountIfZero(ctx, accountID)
	if err == sql.ErrNoRows {
		// The conditional update refused: balance moved since we read it,
		// or it was never zero
		return nil, NewAccountError(ErrNonZeroBalance, accountID.String())
	} else if err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("closed account %v", closed.AccountNumber))
	return ToAccountModel(closed), nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID uuid.UUID) (*AccountModel, error) {
	acct, err := s.store.GetAccount(ctx, accountID)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, err
	}
	return ToAccountModel(acct), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, customerID int64) ([]*AccountModel, error) {
	accounts, err := s.store.ListAccountsByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToAccountCollection(accounts), nil
}

func (s *AccountService) ListAccountsByCurrency(ctx context.Context, customerID int64, currencyCode string) ([]*AccountModel, error) {
	if currency.IsCurrencyInvalid(currencyCode) {
		return nil, currency.ErrUnsupportedCurrency
	}
	accounts, err := s.store.ListAccountsByCustomerAndCurrency(ctx, db.ListAccountsByCustomerAndCurrencyParams{
		CustomerID: customerID,
		Currency:   currencyCode,
	})
	if err != nil {
		return nil, err
	}
	return ToAccountCollection(accounts), nil
}

func isValidAccountType(accountType string) bool {
	for _, t := range ValidAccountTypes {
		if accountType == t {
			return true
		}
	}
	return false
}
