package wallet

import (
	"context"
	"database/sql"
	"fmt"

	db "github.com/GenPay/GenPay-Backend/db/sqlc"
	"github.com/GenPay/GenPay-Backend/services/monitoring/logging"
	"github.com/GenPay/GenPay-Backend/services/provider/cryptocurrency"
	"github.com/GenPay/GenPay-Backend/services/security"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// A send is refused while the wallet holds less than this much TRX, because
// the network fee for a TRC-20 transfer can burn up to that much.
var gasThreshold = decimal.NewFromInt(10)

const (
	defaultQueryLimit = 20
	maxQueryLimit     = 100
)

// BlockchainClient is the node-facing surface the wallet manager needs.
// *cryptocurrency.TronProvider satisfies it.
type BlockchainClient interface {
	GenerateKeypair(ctx context.Context) (*cryptocurrency.TronKeypair, error)
	IsValidAddress(ctx context.Context, address string) (bool, error)
	NativeBalance(ctx context.Context, address string) (decimal.Decimal, error)
	TokenBalance(ctx context.Context, address string) (decimal.Decimal, error)
	SubmitTransfer(ctx context.Context, request cryptocurrency.TransferRequest) (string, error)
}

// WalletService manages custodial Tron wallets. Private keys exist in
// plaintext only inside a Send call and are wiped as soon as the signing
// request returns.
type WalletService struct {
	store      db.Datastore
	logger     *logging.Logger
	chain      BlockchainClient
	encryption *security.EncryptionService
}

func NewWalletService(store db.Datastore, logger *logging.Logger, chain BlockchainClient, encryption *security.EncryptionService) *WalletService {
	return &WalletService{
		store:      store,
		logger:     logger,
		chain:      chain,
		encryption: encryption,
	}
}

// CreateWallet provisions one wallet per customer. Calling it again for the
// same customer returns the existing wallet unchanged.
func (s *WalletService) CreateWallet(ctx context.Context, customerID int64) (*WalletModel, error) {
	existing, err := s.store.GetCustodialWalletByCustomerID(ctx, customerID)
	if err == nil {
		return ToWalletModel(existing), nil
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	keypair, err := s.chain.GenerateKeypair(ctx)
	if err != nil {
		return nil, fmt.Errorf("keypair generation: %w", err)
	}

	sealed, err := s.encryption.Encrypt([]byte(keypair.PrivateKey))
	keypair.PrivateKey = ""
	if err != nil {
		return nil, fmt.Errorf("sealing private key: %w", err)
	}

	created, err := s.store.CreateCustodialWallet(ctx, db.CreateCustodialWalletParams{
		CustomerID:          customerID,
		Address:             keypair.Address,
		EncryptedPrivateKey: sealed,
	})
	if err != nil {
		// A concurrent call may have won the unique constraint race.
		if winner, getErr := s.store.GetCustodialWalletByCustomerID(ctx, customerID); getErr == nil {
			return ToWalletModel(winner), nil
		}
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("custodial wallet %v created for customer %v", created.ID, customerID))
	return ToWalletModel(created), nil
}

func (s *WalletService) GetWallet(ctx context.Context, customerID int64) (*WalletModel, error) {
	wallet, err := s.store.GetCustodialWalletByCustomerID(ctx, customerID)
	if err == sql.ErrNoRows {
		return nil, ErrWalletNotFound
	} else if err != nil {
		return nil, err
	}
	return ToWalletModel(wallet), nil
}

// SyncBalance refreshes the cached chain balances. The chain is the source
// of truth; the stored figures are a convenience for display and pre-flight
// checks.
func (s *WalletService) SyncBalance(ctx context.Context, customerID int64) (*WalletModel, error) {
	wallet, err := s.store.GetCustodialWalletByCustomerID(ctx, customerID)
	if err == sql.ErrNoRows {
		return nil, ErrWalletNotFound
	} else if err != nil {
		return nil, err
	}

	usdt, err := s.chain.TokenBalance(ctx, wallet.Address)
	if err != nil {
		return nil, fmt.Errorf("token balance for %v: %w", wallet.Address, err)
	}
	trx, err := s.chain.NativeBalance(ctx, wallet.Address)
	if err != nil {
		return nil, fmt.Errorf("native balance for %v: %w", wallet.Address, err)
	}

	updated, err := s.store.UpdateCustodialWalletBalances(ctx, db.UpdateCustodialWalletBalancesParams{
		ID:          wallet.ID,
		BalanceUsdt: usdt.String(),
		BalanceTrx:  trx.String(),
	})
	if err != nil {
		return nil, err
	}
	return ToWalletModel(updated), nil
}

// Send moves USDT out of a customer's wallet. Every pre-flight check runs
// against fresh chain balances before the key is ever decrypted: the
// destination must be a real address, the wallet must hold the tokens, and
// it must hold enough TRX to pay the network fee.
func (s *WalletService) Send(ctx context.Context, customerID int64, toAddress string, amount decimal.Decimal) (*WalletTransactionModel, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	wallet, err := s.store.GetCustodialWalletByCustomerID(ctx, customerID)
	if err == sql.ErrNoRows {
		return nil, ErrWalletNotFound
	} else if err != nil {
		return nil, err
	}

	valid, err := s.chain.IsValidAddress(ctx, toAddress)
	if err != nil {
		return nil, fmt.Errorf("address validation: %w", err)
	}
	if !valid {
		return nil, ErrInvalidAddress
	}

	usdt, err := s.chain.TokenBalance(ctx, wallet.Address)
	if err != nil {
		return nil, fmt.Errorf("token balance for %v: %w", wallet.Address, err)
	}
	if usdt.LessThan(amount) {
		return nil, &InsufficientBalanceError{Asset: "USDT", Available: usdt, Required: amount}
	}

	trx, err := s.chain.NativeBalance(ctx, wallet.Address)
	if err != nil {
		return nil, fmt.Errorf("native balance for %v: %w", wallet.Address, err)
	}
	if trx.LessThan(gasThreshold) {
		return nil, &InsufficientBalanceError{Asset: "TRX", Available: trx, Required: gasThreshold}
	}

	signingKey, err := s.encryption.Decrypt(wallet.EncryptedPrivateKey)
	if err != nil {
		// Never leak why decryption failed; a tampered envelope and a wrong
		// master key look identical from outside.
		s.logger.Error(fmt.Errorf("unseal key for wallet %v: %w", wallet.ID, err))
		return nil, ErrKeyUnavailable
	}
	defer security.Wipe(signingKey)

	txHash, err := s.chain.SubmitTransfer(ctx, cryptocurrency.TransferRequest{
		FromAddress: wallet.Address,
		ToAddress:   toAddress,
		Amount:      amount,
		SigningKey:  string(signingKey),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockchainSubmission, err)
	}

	recorded, err := s.store.CreateWalletTransaction(ctx, db.CreateWalletTransactionParams{
		WalletID:            wallet.ID,
		Direction:           DirectionSend,
		Amount:              amount.String(),
		CounterpartyAddress: toAddress,
		TxHash:              sql.NullString{String: txHash, Valid: true},
		Status:              StatusPending,
	})
	if err != nil {
		// The transfer is on chain regardless; surface the hash so it is not lost.
		s.logger.Error(fmt.Errorf("record send %v for wallet %v: %w", txHash, wallet.ID, err))
		return nil, err
	}

	// Cached balances are stale the moment a send broadcasts. Refresh is
	// best effort; the chain read can lag the broadcast.
	if _, err := s.SyncBalance(ctx, customerID); err != nil {
		s.logger.Error(fmt.Errorf("post-send balance sync for wallet %v: %w", wallet.ID, err))
	}

	s.logger.Info(fmt.Sprintf("wallet %v sent %v USDT, tx %v", wallet.ID, amount, txHash))
	return ToWalletTransactionModel(recorded), nil
}

// RecordReceive books an inbound deposit observed on chain and refreshes
// the cached balances.
func (s *WalletService) RecordReceive(ctx context.Context, customerID int64, fromAddress string, amount decimal.Decimal, txHash string) (*WalletTransactionModel, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	wallet, err := s.store.GetCustodialWalletByCustomerID(ctx, customerID)
	if err == sql.ErrNoRows {
		return nil, ErrWalletNotFound
	} else if err != nil {
		return nil, err
	}

	recorded, err := s.store.CreateWalletTransaction(ctx, db.CreateWalletTransactionParams{
		WalletID:            wallet.ID,
		Direction:           DirectionReceive,
		Amount:              amount.String(),
		CounterpartyAddress: fromAddress,
		TxHash:              sql.NullString{String: txHash, Valid: txHash != ""},
		Status:              StatusConfirmed,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.SyncBalance(ctx, customerID); err != nil {
		s.logger.Error(fmt.Errorf("post-receive balance sync for wallet %v: %w", wallet.ID, err))
	}
	return ToWalletTransactionModel(recorded), nil
}

func (s *WalletService) ConfirmTransaction(ctx context.Context, transactionID uuid.UUID) (*WalletTransactionModel, error) {
	updated, err := s.store.UpdateWalletTransactionStatus(ctx, db.UpdateWalletTransactionStatusParams{
		ID:     transactionID,
		Status: StatusConfirmed,
	})
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("wallet transaction not found")
	} else if err != nil {
		return nil, err
	}
	return ToWalletTransactionModel(updated), nil
}

func (s *WalletService) ListTransactions(ctx context.Context, customerID int64, limit int32) ([]*WalletTransactionModel, error) {
	wallet, err := s.store.GetCustodialWalletByCustomerID(ctx, customerID)
	if err == sql.ErrNoRows {
		return nil, ErrWalletNotFound
	} else if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultQueryLimit
	}
	if limit > maxQueryLimit {
		limit = maxQueryLimit
	}

	transactions, err := s.store.ListWalletTransactionsByWalletID(ctx, db.ListWalletTransactionsByWalletIDParams{
		WalletID: wallet.ID,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	return ToWalletTransactionCollection(transactions), nil
}
