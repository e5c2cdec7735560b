package cryptocurrency

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TronKeypair is the fullnode's generateaddress output. PrivateKey is hot
// material and must be encrypted before it is stored anywhere.
type TronKeypair struct {
	PrivateKey string `json:"privateKey"`
	Address    string `json:"address"`
	HexAddress string `json:"hexAddress"`
}

type validateAddressRequest struct {
	Address string `json:"address"`
	Visible bool   `json:"visible"`
}

type validateAddressResponse struct {
	Result  bool   `json:"result"`
	Message string `json:"message"`
}

type getAccountRequest struct {
	Address string `json:"address"`
	Visible bool   `json:"visible"`
}

type getAccountResponse struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

// triggerContractRequest drives both triggerconstantcontract (reads) and
// triggersmartcontract (state changes). Parameter is the ABI-encoded
// argument block in hex.
type triggerContractRequest struct {
	OwnerAddress     string `json:"owner_address"`
	ContractAddress  string `json:"contract_address"`
	FunctionSelector string `json:"function_selector"`
	Parameter        string `json:"parameter"`
	FeeLimit         int64  `json:"fee_limit,omitempty"`
	CallValue        int64  `json:"call_value"`
	Visible          bool   `json:"visible"`
}

type contractResult struct {
	Result  bool   `json:"result"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type triggerConstantResponse struct {
	Result         contractResult `json:"result"`
	ConstantResult []string       `json:"constant_result"`
}

type triggerSmartResponse struct {
	Result      contractResult  `json:"result"`
	Transaction json.RawMessage `json:"transaction"`
}

type signTransactionRequest struct {
	Transaction json.RawMessage `json:"transaction"`
	PrivateKey  string          `json:"privateKey"`
}

type broadcastResponse struct {
	Result  bool   `json:"result"`
	Code    string `json:"code"`
	Message string `json:"message"`
	TxID    string `json:"txid"`
}

// TransferRequest is one outbound USDT movement, amount in token units.
type TransferRequest struct {
	FromAddress string
	ToAddress   string
	Amount      decimal.Decimal
	SigningKey  string
}
