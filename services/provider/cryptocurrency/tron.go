package cryptocurrency

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GenPay/GenPay-Backend/services/monitoring/logging"
	genProvider "github.com/GenPay/GenPay-Backend/services/provider"
	"github.com/GenPay/GenPay-Backend/utils"
	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
)

const (
	// 1 TRX = 1_000_000 sun; USDT on Tron also carries 6 decimals.
	sunPerTRX    = 1_000_000
	tokenDigits  = 6
	addressLen   = 34
	addressStart = "T"

	// Hard ceiling on what a single contract call may burn in energy fees.
	feeLimitSun = 10 * sunPerTRX
)

type TronProvider struct {
	genProvider.BaseProvider
	config *TronConfig
}

type TronConfig struct {
	TronProviderName    string `mapstructure:"TRON_PROVIDER_NAME"`
	TronFullnodeURL     string `mapstructure:"TRON_FULLNODE_URL"`
	TronAPIKey          string `mapstructure:"TRON_API_KEY"`
	UsdtContractAddress string `mapstructure:"USDT_CONTRACT_ADDRESS"`
}

func NewTronProvider(logger *logging.Logger) *TronProvider {

	var c TronConfig

	err := utils.LoadCustomConfig(utils.EnvPath, &c)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	return &TronProvider{
		BaseProvider: genProvider.BaseProvider{
			Name:    c.TronProviderName,
			BaseURL: c.TronFullnodeURL,
			APIKey:  c.TronAPIKey,
			Client: &http.Client{
				Timeout: time.Second * 30,
			},
			Logger: logger,
		},
		config: &c,
	}
}

// GenerateKeypair asks the node for a fresh keypair. The node never stores
// it; the caller owns the private key from this moment on.
func (p *TronProvider) GenerateKeypair(ctx context.Context) (*TronKeypair, error) {
	var keypair TronKeypair
	if err := p.call(ctx, "/wallet/generateaddress", nil, &keypair); err != nil {
		return nil, err
	}
	if keypair.Address == "" || keypair.PrivateKey == "" {
		return nil, fmt.Errorf("node returned an incomplete keypair")
	}
	return &keypair, nil
}

// IsValidAddress checks the base58check shape locally, then lets the node
// have the final word.
func (p *TronProvider) IsValidAddress(ctx context.Context, address string) (bool, error) {
	if !hasAddressShape(address) {
		return false, nil
	}

	var result validateAddressResponse
	err := p.call(ctx, "/wallet/validateaddress", validateAddressRequest{Address: address, Visible: true}, &result)
	if err != nil {
		return false, err
	}
	return result.Result, nil
}

// NativeBalance returns the TRX balance in whole TRX.
func (p *TronProvider) NativeBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	var account getAccountResponse
	err := p.call(ctx, "/wallet/getaccount", getAccountRequest{Address: address, Visible: true}, &account)
	if err != nil {
		return decimal.Zero, err
	}
	// An address the chain has never seen comes back empty; its balance is zero.
	return decimal.New(account.Balance, -tokenDigits), nil
}

// TokenBalance reads balanceOf(address) on the USDT contract without
// spending energy.
func (p *TronProvider) TokenBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	parameter, err := encodeAddressParameter(address)
	if err != nil {
		return decimal.Zero, err
	}

	request := triggerContractRequest{
		OwnerAddress:     address,
		ContractAddress:  p.config.UsdtContractAddress,
		FunctionSelector: "balanceOf(address)",
		Parameter:        parameter,
		Visible:          true,
	}

	var response triggerConstantResponse
	if err := p.call(ctx, "/wallet/triggerconstantcontract", request, &response); err != nil {
		return decimal.Zero, err
	}
	if len(response.ConstantResult) == 0 {
		return decimal.Zero, fmt.Errorf("balanceOf returned no result")
	}

	raw, ok := new(big.Int).SetString(strings.TrimLeft(response.ConstantResult[0], "0"), 16)
	if !ok {
		if strings.Trim(response.ConstantResult[0], "0") == "" {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("balanceOf result is not hex: %v", response.ConstantResult[0])
	}
	return decimal.NewFromBigInt(raw, -tokenDigits), nil
}

// SubmitTransfer builds, signs and broadcasts a USDT transfer. Signing
// happens on the node via gettransactionsign; the key travels only over the
// operator's private link to it.
func (p *TronProvider) SubmitTransfer(ctx context.Context, request TransferRequest) (string, error) {
	parameter, err := encodeTransferParameter(request.ToAddress, request.Amount)
	if err != nil {
		return "", err
	}

	trigger := triggerContractRequest{
		OwnerAddress:     request.FromAddress,
		ContractAddress:  p.config.UsdtContractAddress,
		FunctionSelector: "transfer(address,uint256)",
		Parameter:        parameter,
		FeeLimit:         feeLimitSun,
		Visible:          true,
	}

	var built triggerSmartResponse
	if err := p.call(ctx, "/wallet/triggersmartcontract", trigger, &built); err != nil {
		return "", err
	}
	if !built.Result.Result {
		return "", fmt.Errorf("transfer rejected by node: %v %v", built.Result.Code, built.Result.Message)
	}

	var signed json.RawMessage
	err = p.call(ctx, "/wallet/gettransactionsign", signTransactionRequest{
		Transaction: built.Transaction,
		PrivateKey:  request.SigningKey,
	}, &signed)
	if err != nil {
		return "", err
	}

	var broadcast broadcastResponse
	if err := p.call(ctx, "/wallet/broadcasttransaction", signed, &broadcast); err != nil {
		return "", err
	}
	if !broadcast.Result {
		return "", fmt.Errorf("broadcast failed: %v %v", broadcast.Code, decodeNodeMessage(broadcast.Message))
	}
	return broadcast.TxID, nil
}

// call posts to a fullnode endpoint and decodes the response into out.
func (p *TronProvider) call(ctx context.Context, path string, body interface{}, out interface{}) error {
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("bad fullnode URL: %w", err)
	}
	base.Path += path

	resp, err := p.MakeRequest(ctx, "POST", base.String(), body, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, readErr := io.ReadAll(resp.Body)
		if readErr == nil && p.Logger != nil {
			p.Logger.Error("response body", string(bodyBytes))
		}
		return fmt.Errorf("unexpected status code: %d \nURL: %s", resp.StatusCode, resp.Request.URL)
	}

	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("error decoding response body: %w", err)
	}
	return nil
}

func hasAddressShape(address string) bool {
	if len(address) != addressLen || !strings.HasPrefix(address, addressStart) {
		return false
	}
	decoded, err := base58.Decode(address)
	// 21 payload bytes plus a 4-byte checksum, leading 0x41 network byte
	return err == nil && len(decoded) == 25 && decoded[0] == 0x41
}

// addressToEVMWord converts a base58check address to the 32-byte ABI word
// the TRC-20 functions take: the 20-byte body, left-padded.
func addressToEVMWord(address string) (string, error) {
	if !hasAddressShape(address) {
		return "", fmt.Errorf("not a tron address: %v", address)
	}
	decoded, err := base58.Decode(address)
	if err != nil {
		return "", err
	}
	body := decoded[1:21]
	return fmt.Sprintf("%064s", hex.EncodeToString(body)), nil
}

func encodeAddressParameter(address string) (string, error) {
	return addressToEVMWord(address)
}

func encodeTransferParameter(toAddress string, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("transfer amount must be positive")
	}

	word, err := addressToEVMWord(toAddress)
	if err != nil {
		return "", err
	}

	units := amount.Shift(tokenDigits).Truncate(0).BigInt()
	return word + fmt.Sprintf("%064s", units.Text(16)), nil
}

// decodeNodeMessage unwraps the hex-encoded error strings the node returns.
func decodeNodeMessage(message string) string {
	if decoded, err := hex.DecodeString(message); err == nil {
		return string(decoded)
	}
	return message
}
