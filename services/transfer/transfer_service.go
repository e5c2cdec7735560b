package transfer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	db "github.com/GenPay/GenPay-Backend/db/sqlc"
	"github.com/GenPay/GenPay-Backend/services/currency"
	"github.com/GenPay/GenPay-Backend/services/monitoring/logging"
	"github.com/GenPay/GenPay-Backend/services/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateProvider supplies the exchange rate captured at initiation time.
type RateProvider interface {
	GetExchangeRate(ctx context.Context, fromCurrency string, toCurrency string) (decimal.Decimal, error)
}

// Recorder appends ledger entries, enlisting in the caller's transaction
// when given its Querier.
type Recorder interface {
	Record(ctx context.Context, q db.Querier, entry transaction.Entry) (*transaction.TransactionModel, error)
}

// VolumeTracker keeps a rolling total of what a customer has moved today.
type VolumeTracker interface {
	DailyVolume(ctx context.Context, customerID int64) (decimal.Decimal, error)
	AddDailyVolume(ctx context.Context, customerID int64, amount decimal.Decimal) error
}

type TransferService struct {
	store    db.Datastore
	logger   *logging.Logger
	rates    RateProvider
	recorder Recorder

	volumes  VolumeTracker
	dailyCap decimal.Decimal
}

func NewTransferService(store db.Datastore, logger *logging.Logger, rates RateProvider, recorder Recorder) *TransferService {
	return &TransferService{
		store:    store,
		logger:   logger,
		rates:    rates,
		recorder: recorder,
	}
}

// EnableDailyCap turns on per-customer volume limiting. Without it transfers
// are uncapped.
func (s *TransferService) EnableDailyCap(volumes VolumeTracker, cap decimal.Decimal) {
	s.volumes = volumes
	s.dailyCap = cap
}

// InitiateTransfer validates the request, captures the exchange rate and
// computes the fee up front, then records the transfer as pending. Balances
// are not touched here; money only moves in CompleteTransfer.
func (s *TransferService) InitiateTransfer(ctx context.Context, customerID int64, request InitiateRequest) (*TransferModel, error) {
	if !request.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if request.TransferType != TypeInternal && request.TransferType != TypeExternal {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransferType, request.TransferType)
	}
	if currency.IsCurrencyInvalid(request.FromCurrency) || currency.IsCurrencyInvalid(request.ToCurrency) {
		return nil, currency.NewCurrencyError(currency.ErrUnsupportedCurrency, request.FromCurrency, request.ToCurrency)
	}

	source, err := s.store.GetAccount(ctx, request.FromAccountID)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, err
	}
	if source.CustomerID != customerID {
		return nil, ErrNotYours
	}
	if source.Status != "active" {
		return nil, ErrAccountNotActive
	}
	if source.Currency != request.FromCurrency {
		return nil, ErrCurrencyMismatch
	}

	toAccountID := uuid.NullUUID{}
	switch request.TransferType {
	case TypeInternal:
		if request.ToAccountID == nil {
			return nil, ErrMissingDestination
		}
		if *request.ToAccountID == request.FromAccountID {
			return nil, ErrSameAccount
		}
		destination, err := s.store.GetAccount(ctx, *request.ToAccountID)
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		} else if err != nil {
			return nil, err
		}
		if destination.Status != "active" {
			return nil, ErrAccountNotActive
		}
		if destination.Currency != request.ToCurrency {
			return nil, ErrCurrencyMismatch
		}
		toAccountID = uuid.NullUUID{UUID: destination.ID, Valid: true}
	case TypeExternal:
		if request.Recipient.IsZero() {
			return nil, ErrMissingRecipient
		}
	}

	// The rate is locked in now. If no rate exists the transfer is refused
	// before anything is persisted.
	rate := sql.NullString{}
	if request.FromCurrency != request.ToCurrency {
		fetched, err := s.rates.GetExchangeRate(ctx, request.FromCurrency, request.ToCurrency)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
		}
		rate = sql.NullString{String: fetched.String(), Valid: true}
	}

	fee, err := CalculateFee(request.Amount, request.TransferType)
	if err != nil {
		return nil, err
	}
	totalAmount := request.Amount.Add(fee)

	if err := s.checkDailyCap(ctx, customerID, request.Amount); err != nil {
		return nil, err
	}

	created, err := s.store.CreateTransfer(ctx, db.CreateTransferParams{
		CustomerID:       customerID,
		FromAccountID:    source.ID,
		ToAccountID:      toAccountID,
		RecipientEmail:   nullString(request.Recipient.Email),
		RecipientName:    nullString(request.Recipient.Name),
		RecipientIban:    nullString(request.Recipient.Iban),
		RecipientBic:     nullString(request.Recipient.Bic),
		Amount:           request.Amount.String(),
		FromCurrency:     request.FromCurrency,
		ToCurrency:       request.ToCurrency,
		ExchangeRate:     rate,
		Fee:              fee.String(),
		TotalAmount:      totalAmount.String(),
		Reference:        nullString(request.Reference),
		TransferType:     request.TransferType,
		EstimatedArrival: EstimatedArrival(request.TransferType, time.Now()),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("transfer %v initiated: %v %v -> %v, fee %v", created.ID, request.Amount, request.FromCurrency, request.ToCurrency, fee))
	return ToTransferModel(created), nil
}

// CompleteTransfer settles a pending transfer. It first claims the transfer
// by flipping it to processing, then posts every balance change and ledger
// entry in a single database transaction. If any step fails the transaction
// rolls back, the transfer is released back to pending, and no account is
// left half-settled.
func (s *TransferService) CompleteTransfer(ctx context.Context, transferID uuid.UUID) (*TransferModel, error) {
	claimed, err := s.store.UpdateTransferStatus(ctx, db.UpdateTransferStatusParams{
		ID:         transferID,
		Status:     StatusProcessing,
		FromStatus: StatusPending,
	})
	if err == sql.ErrNoRows {
		if _, getErr := s.store.GetTransfer(ctx, transferID); getErr == sql.ErrNoRows {
			return nil, ErrTransferNotFound
		}
		return nil, ErrTransferNotPending
	} else if err != nil {
		return nil, err
	}

	settled, err := s.settle(ctx, claimed, StatusProcessing)
	if err != nil {
		s.release(ctx, transferID)
		return nil, err
	}

	s.trackVolume(ctx, settled)
	s.logger.Info(fmt.Sprintf("transfer %v completed", settled.ID))
	return ToTransferModel(settled), nil
}

// settle posts the transfer atomically: debit of amount plus fee, the
// transfer_out entry, and for internal transfers the converted credit and
// transfer_in entry, then the flip to completed. All of it commits together
// or not at all.
func (s *TransferService) settle(ctx context.Context, t db.Transfer, fromStatus string) (db.Transfer, error) {
	var settled db.Transfer
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		totalAmount := mustDecimal(t.TotalAmount)

		debited, err := q.AdjustAccountBalance(ctx, db.AdjustAccountBalanceParams{
			ID:     t.FromAccountID,
			Amount: totalAmount.Neg().String(),
		})
		if err == sql.ErrNoRows {
			return s.insufficientFunds(ctx, q, t.FromAccountID, totalAmount)
		} else if err != nil {
			return err
		}

		if _, err := s.recorder.Record(ctx, q, transaction.Entry{
			CustomerID:  t.CustomerID,
			AccountID:   debited.ID,
			TransferID:  uuid.NullUUID{UUID: t.ID, Valid: true},
			Type:        transaction.TypeTransferOut,
			Amount:      totalAmount,
			Currency:    t.FromCurrency,
			Description: referenceOf(t),
			Status:      transaction.StatusCompleted,
		}); err != nil {
			return err
		}

		if t.TransferType == TypeInternal && t.ToAccountID.Valid {
			if err := s.creditDestination(ctx, q, t); err != nil {
				return err
			}
		}

		settled, err = q.UpdateTransferStatus(ctx, db.UpdateTransferStatusParams{
			ID:         t.ID,
			Status:     StatusCompleted,
			FromStatus: fromStatus,
		})
		if err == sql.ErrNoRows {
			return ErrTransferNotPending
		}
		return err
	})
	return settled, err
}

// creditDestination applies the captured rate and posts the incoming leg.
func (s *TransferService) creditDestination(ctx context.Context, q db.Querier, t db.Transfer) error {
	converted := mustDecimal(t.Amount)
	if t.ExchangeRate.Valid {
		converted = converted.Mul(mustDecimal(t.ExchangeRate.String)).Round(2)
	}

	credited, err := q.AdjustAccountBalance(ctx, db.AdjustAccountBalanceParams{
		ID:     t.ToAccountID.UUID,
		Amount: converted.String(),
	})
	if err == sql.ErrNoRows {
		return ErrAccountNotActive
	} else if err != nil {
		return err
	}

	_, err = s.recorder.Record(ctx, q, transaction.Entry{
		CustomerID:  credited.CustomerID,
		AccountID:   credited.ID,
		TransferID:  uuid.NullUUID{UUID: t.ID, Valid: true},
		Type:        transaction.TypeTransferIn,
		Amount:      converted,
		Currency:    t.ToCurrency,
		Description: referenceOf(t),
		Status:      transaction.StatusCompleted,
	})
	return err
}

// CancelTransfer voids a transfer that has not begun settling. Only pending
// transfers can be cancelled; cancellation never touches balances because a
// pending transfer has posted nothing.
func (s *TransferService) CancelTransfer(ctx context.Context, customerID int64, transferID uuid.UUID) (*TransferModel, error) {
	existing, err := s.store.GetTransfer(ctx, transferID)
	if err == sql.ErrNoRows {
		return nil, ErrTransferNotFound
	} else if err != nil {
		return nil, err
	}
	if existing.CustomerID != customerID {
		return nil, ErrNotYours
	}

	cancelled, err := s.store.UpdateTransferStatus(ctx, db.UpdateTransferStatusParams{
		ID:         transferID,
		Status:     StatusCancelled,
		FromStatus: StatusPending,
	})
	if err == sql.ErrNoRows {
		return nil, ErrTransferNotPending
	} else if err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("transfer %v cancelled", transferID))
	return ToTransferModel(cancelled), nil
}

func (s *TransferService) GetTransfer(ctx context.Context, customerID int64, transferID uuid.UUID) (*TransferModel, error) {
	t, err := s.store.GetTransfer(ctx, transferID)
	if err == sql.ErrNoRows {
		return nil, ErrTransferNotFound
	} else if err != nil {
		return nil, err
	}
	if t.CustomerID != customerID {
		return nil, ErrNotYours
	}
	return ToTransferModel(t), nil
}

func (s *TransferService) ListTransfers(ctx context.Context, customerID int64) ([]*TransferModel, error) {
	transfers, err := s.store.ListTransfersByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToTransferCollection(transfers), nil
}

// ReconcilePending sweeps transfers stuck in a non-terminal state for longer
// than staleAfter. A processing transfer whose debit already posted is
// finished; one with no posted leg is released back to pending for a clean
// retry.
func (s *TransferService) ReconcilePending(ctx context.Context, staleAfter time.Duration) error {
	stale, err := s.store.ListUnsettledTransfers(ctx, time.Now().Add(-staleAfter))
	if err != nil {
		return err
	}

	for _, t := range stale {
		if t.Status != StatusProcessing {
			s.logger.Info(fmt.Sprintf("transfer %v still pending after %v, awaiting settlement", t.ID, staleAfter))
			continue
		}

		_, err := s.store.GetLedgerEntryByTransferAndType(ctx, db.GetLedgerEntryByTransferAndTypeParams{
			TransferID: uuid.NullUUID{UUID: t.ID, Valid: true},
			Type:       transaction.TypeTransferOut,
		})
		switch {
		case err == sql.ErrNoRows:
			// Claimed but nothing posted: the settlement never ran.
			s.release(ctx, t.ID)
		case err != nil:
			s.logger.Error(fmt.Errorf("reconcile transfer %v: %w", t.ID, err))
		default:
			// Debit posted but status never flipped. Finish the job.
			if _, err := s.resume(ctx, t); err != nil {
				s.logger.Error(fmt.Errorf("reconcile transfer %v: %w", t.ID, err))
				continue
			}
			s.auditAccount(ctx, t.FromAccountID)
			if t.ToAccountID.Valid {
				s.auditAccount(ctx, t.ToAccountID.UUID)
			}
		}
	}
	return nil
}

// auditAccount recomputes an account balance from its completed ledger
// entries and flags any drift from the cached figure. Recovery is the one
// path where the two can diverge, so every recovered transfer gets checked.
func (s *TransferService) auditAccount(ctx context.Context, accountID uuid.UUID) {
	posted, err := s.store.SumPostedLedgerAmounts(ctx, accountID)
	if err != nil {
		s.logger.Error(fmt.Errorf("audit account %v: %w", accountID, err))
		return
	}
	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		s.logger.Error(fmt.Errorf("audit account %v: %w", accountID, err))
		return
	}
	if !mustDecimal(account.Balance).Equal(mustDecimal(posted)) {
		s.logger.Error(fmt.Errorf("account %v balance %v disagrees with posted ledger sum %v", accountID, account.Balance, posted))
	}
}

// resume completes the remaining legs of a processing transfer whose
// outgoing entry already exists.
func (s *TransferService) resume(ctx context.Context, stale db.Transfer) (db.Transfer, error) {
	var resumed db.Transfer
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		// The sweep listed this transfer earlier; lock the row and re-read
		// so a reconciler racing us cannot settle the same legs twice.
		t, err := q.GetTransferForUpdate(ctx, stale.ID)
		if err != nil {
			return err
		}
		if t.Status == StatusCompleted {
			resumed = t
			return nil
		}
		if t.Status != StatusProcessing {
			return ErrTransferNotPending
		}

		if t.TransferType == TypeInternal && t.ToAccountID.Valid {
			_, err := q.GetLedgerEntryByTransferAndType(ctx, db.GetLedgerEntryByTransferAndTypeParams{
				TransferID: uuid.NullUUID{UUID: t.ID, Valid: true},
				Type:       transaction.TypeTransferIn,
			})
			if err == sql.ErrNoRows {
				if err := s.creditDestination(ctx, q, t); err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		}

		resumed, err = q.UpdateTransferStatus(ctx, db.UpdateTransferStatusParams{
			ID:         t.ID,
			Status:     StatusCompleted,
			FromStatus: StatusProcessing,
		})
		if err == sql.ErrNoRows {
			return ErrTransferNotPending
		}
		return err
	})
	if err == nil {
		s.logger.Info(fmt.Sprintf("transfer %v recovered and completed", stale.ID))
	}
	return resumed, err
}

// release hands a claimed transfer back to pending so it can be retried.
func (s *TransferService) release(ctx context.Context, transferID uuid.UUID) {
	_, err := s.store.UpdateTransferStatus(ctx, db.UpdateTransferStatusParams{
		ID:         transferID,
		Status:     StatusPending,
		FromStatus: StatusProcessing,
	})
	if err != nil && err != sql.ErrNoRows {
		s.logger.Error(fmt.Errorf("release transfer %v: %w", transferID, err))
	}
}

// insufficientFunds reads the current balance so the error can say how far
// short the account is. The enclosing transaction rolls back regardless.
func (s *TransferService) insufficientFunds(ctx context.Context, q db.Querier, accountID uuid.UUID, required decimal.Decimal) error {
	account, err := q.GetAccount(ctx, accountID)
	if err != nil {
		return &InsufficientFundsError{Available: decimal.Zero, Required: required}
	}
	if account.Status != "active" {
		return ErrAccountNotActive
	}
	return &InsufficientFundsError{Available: mustDecimal(account.Balance), Required: required}
}

func (s *TransferService) checkDailyCap(ctx context.Context, customerID int64, amount decimal.Decimal) error {
	if s.volumes == nil || !s.dailyCap.IsPositive() {
		return nil
	}

	current, err := s.volumes.DailyVolume(ctx, customerID)
	if err != nil {
		// Volume tracking is advisory; a tracker outage must not block money.
		s.logger.Error(fmt.Errorf("daily volume lookup for customer %v: %w", customerID, err))
		return nil
	}
	if current.Add(amount).GreaterThan(s.dailyCap) {
		return ErrDailyCapExceeded
	}
	return nil
}

func (s *TransferService) trackVolume(ctx context.Context, t db.Transfer) {
	if s.volumes == nil {
		return
	}
	if err := s.volumes.AddDailyVolume(ctx, t.CustomerID, mustDecimal(t.Amount)); err != nil {
		s.logger.Error(fmt.Errorf("daily volume update for customer %v: %w", t.CustomerID, err))
	}
}

func referenceOf(t db.Transfer) string {
	if t.Reference.Valid {
		return t.Reference.String
	}
	return fmt.Sprintf("transfer %v", t.ID)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
