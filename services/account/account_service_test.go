package account

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	db "github.com/GenPay/GenPay-Backend/db/sqlc"
	"github.com/GenPay/GenPay-Backend/services/currency"
	"github.com/GenPay/GenPay-Backend/services/monitoring/logging"
	"github.com/GenPay/GenPay-Backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	logrustest "github.com/sirupsen/logrus/hooks/test"
)

type fakeStore struct {
	db.Querier
	accounts map[uuid.UUID]db.Account
}

func newFakeStore() *fakeStore {
	return &fakeStore{accounts: map[uuid.UUID]db.Account{}}
}

func (f *fakeStore) CreateAccount(ctx context.Context, arg db.CreateAccountParams) (db.Account, error) {
	account := db.Account{
		ID:            uuid.New(),
		CustomerID:    arg.CustomerID,
		Currency:      arg.Currency,
		AccountNumber: arg.AccountNumber,
		Type:          arg.Type,
		Balance:       arg.Balance,
		Status:        "active",
		IsPrimary:     arg.IsPrimary,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.accounts[account.ID] = account
	return account, nil
}

func (f *fakeStore) ClearPrimaryAccounts(ctx context.Context, arg db.ClearPrimaryAccountsParams) error {
	for id, account := range f.accounts {
		if account.CustomerID == arg.CustomerID && account.Currency == arg.Currency && account.IsPrimary {
			account.IsPrimary = false
			f.accounts[id] = account
		}
	}
	return nil
}

func (f *fakeStore) GetAccount(ctx context.Context, id uuid.UUID) (db.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return db.Account{}, sql.ErrNoRows
	}
	return account, nil
}

func (f *fakeStore) ListAccountsByCustomerID(ctx context.Context, customerID int64) ([]db.Account, error) {
	out := []db.Account{}
	for _, account := range f.accounts {
		if account.CustomerID == customerID {
			out = append(out, account)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAccountsByCustomerAndCurrency(ctx context.Context, arg db.ListAccountsByCustomerAndCurrencyParams) ([]db.Account, error) {
	out := []db.Account{}
	for _, account := range f.accounts {
		if account.CustomerID == arg.CustomerID && account.Currency == arg.Currency {
			out = append(out, account)
		}
	}
	return out, nil
}

func (f *fakeStore) CloseAccountIfZero(ctx context.Context, id uuid.UUID) (db.Account, error) {
	account, ok := f.accounts[id]
	if !ok || account.Status == "closed" {
		return db.Account{}, sql.ErrNoRows
	}
	if !decimal.RequireFromString(account.Balance).IsZero() {
		return db.Account{}, sql.ErrNoRows
	}
	account.Status = "closed"
	f.accounts[id] = account
	return account, nil
}

func (f *fakeStore) ExecTx(ctx context.Context, fq func(q db.Querier) error) error {
	return fq(f)
}

func newTestService(t *testing.T, store *fakeStore) *AccountService {
	t.Helper()
	l, _ := logrustest.NewNullLogger()
	numGen, err := utils.NewAccountNumberGenerator("test-salt")
	if err != nil {
		t.Fatalf("number generator: %v", err)
	}
	return NewAccountService(store, &logging.Logger{Logger: l}, numGen)
}

func TestCreateAccount(t *testing.T) {
	store := newFakeStore()
	service := newTestService(t, store)

	created, err := service.CreateAccount(context.Background(), 1, "USD", "personal", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.Currency != "USD" || created.Type != "personal" {
		t.Errorf("unexpected account: %+v", created)
	}
	if created.Status != "active" {
		t.Errorf("status: got %v, want active", created.Status)
	}
	if !created.Balance.IsZero() {
		t.Errorf("new account balance: got %v, want 0", created.Balance)
	}
	if len(created.AccountNumber) < 13 || created.AccountNumber[:3] != "GEN" {
		t.Errorf("account number format: got %v", created.AccountNumber)
	}
}

func TestCreateAccountValidation(t *testing.T) {
	service := newTestService(t, newFakeStore())

	if _, err := service.CreateAccount(context.Background(), 1, "NGN", "personal", false); !errors.Is(err, currency.ErrUnsupportedCurrency) {
		t.Errorf("unsupported currency: got %v", err)
	}
	if _, err := service.CreateAccount(context.Background(), 1, "USD", "savings", false); !errors.Is(err, ErrInvalidAccountType) {
		t.Errorf("bad type: got %v", err)
	}
}

func TestCreatePrimaryDemotesSiblings(t *testing.T) {
	store := newFakeStore()
	service := newTestService(t, store)

	first, err := service.CreateAccount(context.Background(), 1, "USD", "personal", true)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := service.CreateAccount(context.Background(), 1, "USD", "personal", true)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	if store.accounts[first.ID].IsPrimary {
		t.Error("old primary was not demoted")
	}
	if !store.accounts[second.ID].IsPrimary {
		t.Error("new account is not primary")
	}

	// A different currency keeps its own primary
	other, err := service.CreateAccount(context.Background(), 1, "EUR", "personal", true)
	if err != nil {
		t.Fatalf("eur create: %v", err)
	}
	if !store.accounts[other.ID].IsPrimary || !store.accounts[second.ID].IsPrimary {
		t.Error("primary flags must be independent per currency")
	}
}

func TestCloseAccount(t *testing.T) {
	store := newFakeStore()
	service := newTestService(t, store)

	created, err := service.CreateAccount(context.Background(), 1, "USD", "personal", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := service.CloseAccount(context.Background(), 7, created.ID); !errors.Is(err, ErrNotYours) {
		t.Errorf("foreign close: got %v", err)
	}

	closed, err := service.CloseAccount(context.Background(), 1, created.ID)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != "closed" {
		t.Errorf("status: got %v, want closed", closed.Status)
	}

	if _, err := service.CloseAccount(context.Background(), 1, created.ID); !errors.Is(err, ErrAccountClosed) {
		t.Errorf("double close: got %v", err)
	}
}

func TestCloseAccountWithBalanceRefused(t *testing.T) {
	store := newFakeStore()
	service := newTestService(t, store)

	created, err := service.CreateAccount(context.Background(), 1, "USD", "personal", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	funded := store.accounts[created.ID]
	funded.Balance = "25.50"
	store.accounts[created.ID] = funded

	if _, err := service.CloseAccount(context.Background(), 1, created.ID); !errors.Is(err, ErrNonZeroBalance) {
		t.Errorf("expected ErrNonZeroBalance, got %v", err)
	}
	if store.accounts[created.ID].Status != "active" {
		t.Error("account was closed despite holding funds")
	}
}

func TestCloseMissingAccount(t *testing.T) {
	service := newTestService(t, newFakeStore())
	if _, err := service.CloseAccount(context.Background(), 1, uuid.New()); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestListAccountsByCurrency(t *testing.T) {
	store := newFakeStore()
	service := newTestService(t, store)

	if _, err := service.CreateAccount(context.Background(), 1, "USD", "personal", false); err != nil {
		t.Fatal(err)
	}
	if _, err := service.CreateAccount(context.Background(), 1, "EUR", "personal", false); err != nil {
		t.Fatal(err)
	}

	usd, err := service.ListAccountsByCurrency(context.Background(), 1, "USD")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(usd) != 1 || usd[0].Currency != "USD" {
		t.Errorf("unexpected result: %+v", usd)
	}

	if _, err := service.ListAccountsByCurrency(context.Background(), 1, "XXX"); !errors.Is(err, currency.ErrUnsupportedCurrency) {
		t.Errorf("invalid currency: got %v", err)
	}
}
