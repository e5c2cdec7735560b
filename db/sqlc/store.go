package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Datastore is the capability surface the services program against. The
// concrete Store satisfies it; tests substitute in-memory fakes.
type Datastore interface {
	Querier
	ExecTx(ctx context.Context, fq func(q Querier) error) error
}

type Store struct {
	*Queries
	DB *sql.DB
}

var _ Datastore = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{
		DB:      db,
		Queries: New(db),
	}
}

// ExecTx runs fq inside a single database transaction. Money movements
// (debit, credit and their ledger entries) always go through here so they
// commit or roll back as one unit.
func (s *Store) ExecTx(ctx context.Context, fq func(q Querier) error) error {
	// initialize transaction
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	q := New(tx)
	err = fq(q)

	if err != nil {
		txErr := tx.Rollback()
		if txErr != nil && txErr != sql.ErrTxDone {
			return fmt.Errorf("encountered rollback error: %v", txErr)
		}
		return err
	}

	return tx.Commit()
}
