package models

import "github.com/shopspring/decimal"

type CreateAccountRequest struct {
	Currency  string `json:"currency" binding:"required"`
	Type      string `json:"type"`
	IsPrimary bool   `json:"is_primary"`
}

type InitiateTransferRequest struct {
	FromAccountID string          `json:"from_account_id" binding:"required,uuid"`
	ToAccountID   string          `json:"to_account_id" binding:"omitempty,uuid"`
	Recipient     *RecipientInput `json:"recipient"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	FromCurrency  string          `json:"from_currency" binding:"required"`
	ToCurrency    string          `json:"to_currency" binding:"required"`
	TransferType  string          `json:"transfer_type" binding:"required,oneof=internal external"`
	Reference     string          `json:"reference"`
}

type RecipientInput struct {
	Email string `json:"email" binding:"omitempty,email"`
	Name  string `json:"name"`
	Iban  string `json:"iban"`
	Bic   string `json:"bic"`
}

type SendRequest struct {
	ToAddress string          `json:"to_address" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

type DepositNotification struct {
	FromAddress string          `json:"from_address" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	TxHash      string          `json:"tx_hash" binding:"required"`
}

type SetRateRequest struct {
	BaseCurrency  string `json:"base_currency" binding:"required"`
	QuoteCurrency string `json:"quote_currency" binding:"required"`
	Rate          string `json:"rate" binding:"required"`
}

type ConvertRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	FromCurrency string          `json:"from_currency" binding:"required"`
	ToCurrency   string          `json:"to_currency" binding:"required"`
}
