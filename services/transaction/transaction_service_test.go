package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	db "github.com/GenPay/GenPay-Backend/db/sqlc"
	"github.com/GenPay/GenPay-Backend/services/monitoring/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	logrustest "github.com/sirupsen/logrus/hooks/test"
)

type fakeStore struct {
	db.Querier
	entries []db.LedgerEntry
}

func (f *fakeStore) CreateLedgerEntry(ctx context.Context, arg db.CreateLedgerEntryParams) (db.LedgerEntry, error) {
	entry := db.LedgerEntry{
		ID:          uuid.New(),
		CustomerID:  arg.CustomerID,
		AccountID:   arg.AccountID,
		CardID:      arg.CardID,
		TransferID:  arg.TransferID,
		Type:        arg.Type,
		Amount:      arg.Amount,
		Currency:    arg.Currency,
		Description: arg.Description,
		Status:      arg.Status,
		CreatedAt:   time.Now(),
	}
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeStore) ListLedgerEntriesByAccountID(ctx context.Context, arg db.ListLedgerEntriesByAccountIDParams) ([]db.LedgerEntry, error) {
	out := []db.LedgerEntry{}
	for _, e := range f.entries {
		if e.AccountID == arg.AccountID && int32(len(out)) < arg.Limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ExecTx(ctx context.Context, fq func(q db.Querier) error) error {
	return fq(f)
}

func testLogger() *logging.Logger {
	l, _ := logrustest.NewNullLogger()
	return &logging.Logger{Logger: l}
}

func TestRecordValidation(t *testing.T) {
	store := &fakeStore{}
	service := NewTransactionService(store, testLogger())
	accountID := uuid.New()

	cases := []struct {
		name  string
		entry Entry
		want  error
	}{
		{
			"unknown type",
			Entry{CustomerID: 1, AccountID: accountID, Type: "withdrawal", Amount: decimal.NewFromInt(10), Currency: "USD"},
			ErrInvalidEntryType,
		},
		{
			"zero amount",
			Entry{CustomerID: 1, AccountID: accountID, Type: TypeCredit, Amount: decimal.Zero, Currency: "USD"},
			ErrNonPositiveAmount,
		},
		{
			"negative amount",
			Entry{CustomerID: 1, AccountID: accountID, Type: TypeCredit, Amount: decimal.NewFromInt(-5), Currency: "USD"},
			ErrNonPositiveAmount,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Record(context.Background(), nil, tc.entry); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}

	if len(store.entries) != 0 {
		t.Error("invalid entries were recorded")
	}
}

func TestRecordDefaultsToCompleted(t *testing.T) {
	store := &fakeStore{}
	service := NewTransactionService(store, testLogger())

	recorded, err := service.Record(context.Background(), nil, Entry{
		CustomerID: 1,
		AccountID:  uuid.New(),
		Type:       TypeCredit,
		Amount:     decimal.NewFromInt(25),
		Currency:   "USD",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if recorded.Status != StatusCompleted {
		t.Errorf("status: got %v, want completed", recorded.Status)
	}
}

func TestRecordEnlistsInCallerTransaction(t *testing.T) {
	store := &fakeStore{}
	other := &fakeStore{}
	service := NewTransactionService(store, testLogger())

	// Passing a Querier routes the append there, not to the service store
	_, err := service.Record(context.Background(), other, Entry{
		CustomerID: 1,
		AccountID:  uuid.New(),
		Type:       TypeDebit,
		Amount:     decimal.NewFromInt(10),
		Currency:   "USD",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(other.entries) != 1 || len(store.entries) != 0 {
		t.Errorf("entry routed wrong: caller=%d service=%d", len(other.entries), len(store.entries))
	}
}

func TestIsCredit(t *testing.T) {
	credits := []string{TypeCredit, TypeTransferIn}
	debits := []string{TypeDebit, TypeTransferOut, TypeCardPayment}

	for _, entryType := range credits {
		if !IsCredit(entryType) {
			t.Errorf("%v should be a credit", entryType)
		}
	}
	for _, entryType := range debits {
		if IsCredit(entryType) {
			t.Errorf("%v should not be a credit", entryType)
		}
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct {
		in   int32
		want int32
	}{
		{-1, 20},
		{0, 20},
		{1, 1},
		{100, 100},
		{101, 100},
		{5000, 100},
	}
	for _, tc := range cases {
		if got := ClampLimit(tc.in); got != tc.want {
			t.Errorf("ClampLimit(%d): got %d, want %d", tc.in, got, tc.want)
		}
	}
}
