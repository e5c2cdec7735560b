package wallet

import (
	"time"

	db "github.com/GenPay/GenPay-Backend/db/sqlc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DirectionSend    = "send"
	DirectionReceive = "receive"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusFailed    = "failed"
)

// WalletModel is the outward view of a custodial wallet. The encrypted key
// never appears here; no caller has a reason to see it.
type WalletModel struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  int64           `json:"customer_id"`
	Address     string          `json:"address"`
	BalanceUSDT decimal.Decimal `json:"balance_usdt"`
	BalanceTRX  decimal.Decimal `json:"balance_trx"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type WalletTransactionModel struct {
	ID                  uuid.UUID       `json:"id"`
	WalletID            uuid.UUID       `json:"wallet_id"`
	Direction           string          `json:"direction"`
	Amount              decimal.Decimal `json:"amount"`
	CounterpartyAddress string          `json:"counterparty_address"`
	TxHash              string          `json:"tx_hash,omitempty"`
	Status              string          `json:"status"`
	CreatedAt           time.Time       `json:"created_at"`
}

func ToWalletModel(w db.CustodialWallet) *WalletModel {
	return &WalletModel{
		ID:          w.ID,
		CustomerID:  w.CustomerID,
		Address:     w.Address,
		BalanceUSDT: mustDecimal(w.BalanceUsdt),
		BalanceTRX:  mustDecimal(w.BalanceTrx),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func ToWalletTransactionModel(t db.WalletTransaction) *WalletTransactionModel {
	model := &WalletTransactionModel{
		ID:                  t.ID,
		WalletID:            t.WalletID,
		Direction:           t.Direction,
		Amount:              mustDecimal(t.Amount),
		CounterpartyAddress: t.CounterpartyAddress,
		Status:              t.Status,
		CreatedAt:           t.CreatedAt,
	}
	if t.TxHash.Valid {
		model.TxHash = t.TxHash.String
	}
	return model
}

func ToWalletTransactionCollection(transactions []db.WalletTransaction) []*WalletTransactionModel {
	collection := make([]*WalletTransactionModel, 0, len(transactions))
	for _, t := range transactions {
		collection = append(collection, ToWalletTransactionModel(t))
	}
	return collection
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
