package transaction

import (
	"context"
	"fmt"

	db "github.com/GenPay/GenPay-Backend/db/sqlc"
	"github.com/GenPay/GenPay-Backend/services/monitoring/logging"
	"github.com/google/uuid"
)

const (
	defaultQueryLimit = 20
	maxQueryLimit     = 100
)

// TransactionService is the append-only recorder of balance-affecting
// events. Entries are never updated or deleted; the sum of an account's
// completed entries is the authoritative balance.
type TransactionService struct {
	store  db.Datastore
	logger *logging.Logger
}

func NewTransactionService(store db.Datastore, logger *logging.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

// Record appends one ledger entry. Pass the Querier of an open transaction
// to enlist the append in the caller's unit of work; pass nil to append
// standalone.
func (s *TransactionService) Record(ctx context.Context, q db.Querier, entry Entry) (*TransactionModel, error) {
	if q == nil {
		q = s.store
	}

	if !IsValidEntryType(entry.Type) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntryType, entry.Type)
	}
	if !entry.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	status := entry.Status
	if status == "" {
		status = StatusCompleted
	}

	created, err := q.CreateLedgerEntry(ctx, db.CreateLedgerEntryParams{
		CustomerID:  entry.CustomerID,
		AccountID:   entry.AccountID,
		CardID:      entry.CardID,
		TransferID:  entry.TransferID,
		Type:        entry.Type,
		Amount:      entry.Amount.String(),
		Currency:    entry.Currency,
		Description: nullString(entry.Description),
		Status:      status,
	})
	if err != nil {
		return nil, err
	}

	return ToTransactionModel(created), nil
}

// ListByAccount returns an account's entries, most recent first. The limit
// is clamped server-side regardless of what the caller asked for.
func (s *TransactionService) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int32) ([]*TransactionModel, error) {
	entries, err := s.store.ListLedgerEntriesByAccountID(ctx, db.ListLedgerEntriesByAccountIDParams{
		AccountID: accountID,
		Limit:     ClampLimit(limit),
	})
	if err != nil {
		return nil, err
	}
	return ToTransactionCollection(entries), nil
}

func (s *TransactionService) ListByCard(ctx context.Context, cardID uuid.UUID, limit int32) ([]*TransactionModel, error) {
	entries, err := s.store.ListLedgerEntriesByCardID(ctx, db.ListLedgerEntriesByCardIDParams{
		CardID: uuid.NullUUID{UUID: cardID, Valid: true},
		Limit:  ClampLimit(limit),
	})
	if err != nil {
		return nil, err
	}
	return ToTransactionCollection(entries), nil
}

func ClampLimit(limit int32) int32 {
	if limit <= 0 {
		return defaultQueryLimit
	}
	if limit > maxQueryLimit {
		return maxQueryLimit
	}
	return limit
}
