package cryptocurrency

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	genProvider "github.com/GenPay/GenPay-Backend/services/provider"
	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
)

// Mainnet USDT contract, a well-formed address for shape checks.
const knownAddress = "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"

func TestHasAddressShape(t *testing.T) {
	cases := []struct {
		address string
		want    bool
	}{
		{knownAddress, true},
		{"", false},
		{"T", false},
		{"TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6", false},       // 33 chars
		{"XR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", false},      // wrong prefix
		{"TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t0", false},     // 35 chars
		{"T0000000000000000000000000000000l!", false},      // not base58
	}

	for _, tc := range cases {
		if got := hasAddressShape(tc.address); got != tc.want {
			t.Errorf("hasAddressShape(%q): got %v, want %v", tc.address, got, tc.want)
		}
	}
}

func TestEncodeTransferParameter(t *testing.T) {
	parameter, err := encodeTransferParameter(knownAddress, decimal.RequireFromString("1.5"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if len(parameter) != 128 {
		t.Fatalf("parameter length: got %d, want 128", len(parameter))
	}

	// First word is the 20-byte address body, left-padded
	decoded, _ := base58.Decode(knownAddress)
	wantAddress := fmt.Sprintf("%064s", hex.EncodeToString(decoded[1:21]))
	if parameter[:64] != wantAddress {
		t.Errorf("address word: got %v, want %v", parameter[:64], wantAddress)
	}

	// Second word is 1.5 USDT in 6-decimal units: 1_500_000 = 0x16e360
	wantAmount := fmt.Sprintf("%064s", "16e360")
	if parameter[64:] != wantAmount {
		t.Errorf("amount word: got %v, want %v", parameter[64:], wantAmount)
	}
}

func TestEncodeTransferParameterRejectsBadInput(t *testing.T) {
	if _, err := encodeTransferParameter(knownAddress, decimal.Zero); err == nil {
		t.Error("zero amount accepted")
	}
	if _, err := encodeTransferParameter("not-an-address", decimal.NewFromInt(1)); err == nil {
		t.Error("bad destination accepted")
	}
}

func TestDecodeNodeMessage(t *testing.T) {
	if got := decodeNodeMessage(hex.EncodeToString([]byte("balance is not sufficient"))); got != "balance is not sufficient" {
		t.Errorf("hex message: got %q", got)
	}
	if got := decodeNodeMessage("plain text passes through!"); got != "plain text passes through!" {
		t.Errorf("plain message: got %q", got)
	}
}

func newTestProvider(serverURL string) *TronProvider {
	return &TronProvider{
		BaseProvider: genProvider.BaseProvider{
			Name:    genProvider.Tron,
			BaseURL: serverURL,
			Client:  http.DefaultClient,
		},
		config: &TronConfig{UsdtContractAddress: knownAddress},
	}
}

func TestTokenBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wallet/triggerconstantcontract" {
			t.Errorf("unexpected path %v", r.URL.Path)
		}
		var request triggerContractRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if request.FunctionSelector != "balanceOf(address)" {
			t.Errorf("selector: got %v", request.FunctionSelector)
		}
		// 123.456789 USDT = 123456789 units = 0x75bcd15
		json.NewEncoder(w).Encode(triggerConstantResponse{
			Result:         contractResult{Result: true},
			ConstantResult: []string{fmt.Sprintf("%064s", "75bcd15")},
		})
	}))
	defer server.Close()

	balance, err := newTestProvider(server.URL).TokenBalance(context.Background(), knownAddress)
	if err != nil {
		t.Fatalf("token balance: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("123.456789")) {
		t.Errorf("balance: got %v, want 123.456789", balance)
	}
}

func TestTokenBalanceZeroForFreshAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(triggerConstantResponse{
			Result:         contractResult{Result: true},
			ConstantResult: []string{fmt.Sprintf("%064s", "0")},
		})
	}))
	defer server.Close()

	balance, err := newTestProvider(server.URL).TokenBalance(context.Background(), knownAddress)
	if err != nil {
		t.Fatalf("token balance: %v", err)
	}
	if !balance.IsZero() {
		t.Errorf("balance: got %v, want 0", balance)
	}
}

func TestNativeBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wallet/getaccount" {
			t.Errorf("unexpected path %v", r.URL.Path)
		}
		json.NewEncoder(w).Encode(getAccountResponse{Address: knownAddress, Balance: 12_500_000})
	}))
	defer server.Close()

	balance, err := newTestProvider(server.URL).NativeBalance(context.Background(), knownAddress)
	if err != nil {
		t.Fatalf("native balance: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("balance: got %v, want 12.5 TRX", balance)
	}
}

func TestSubmitTransferFlow(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/wallet/triggersmartcontract":
			var request triggerContractRequest
			json.NewDecoder(r.Body).Decode(&request)
			if request.FeeLimit != 10_000_000 {
				t.Errorf("fee limit: got %d, want 10000000", request.FeeLimit)
			}
			json.NewEncoder(w).Encode(triggerSmartResponse{
				Result:      contractResult{Result: true},
				Transaction: json.RawMessage(`{"txID":"abc123"}`),
			})
		case "/wallet/gettransactionsign":
			var request signTransactionRequest
			json.NewDecoder(r.Body).Decode(&request)
			if request.PrivateKey != "signing-key-hex" {
				t.Errorf("signing key not forwarded")
			}
			w.Write([]byte(`{"txID":"abc123","signature":["sig"]}`))
		case "/wallet/broadcasttransaction":
			json.NewEncoder(w).Encode(broadcastResponse{Result: true, TxID: "abc123"})
		default:
			t.Errorf("unexpected path %v", r.URL.Path)
		}
	}))
	defer server.Close()

	txID, err := newTestProvider(server.URL).SubmitTransfer(context.Background(), TransferRequest{
		FromAddress: knownAddress,
		ToAddress:   knownAddress,
		Amount:      decimal.NewFromInt(10),
		SigningKey:  "signing-key-hex",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if txID != "abc123" {
		t.Errorf("txid: got %v", txID)
	}

	want := []string{"/wallet/triggersmartcontract", "/wallet/gettransactionsign", "/wallet/broadcasttransaction"}
	if len(paths) != len(want) {
		t.Fatalf("call sequence: got %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("call %d: got %v, want %v", i, paths[i], want[i])
		}
	}
}

func TestSubmitTransferBroadcastRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wallet/triggersmartcontract":
			json.NewEncoder(w).Encode(triggerSmartResponse{
				Result:      contractResult{Result: true},
				Transaction: json.RawMessage(`{}`),
			})
		case "/wallet/gettransactionsign":
			w.Write([]byte(`{}`))
		case "/wallet/broadcasttransaction":
			json.NewEncoder(w).Encode(broadcastResponse{
				Result:  false,
				Code:    "CONTRACT_VALIDATE_ERROR",
				Message: hex.EncodeToString([]byte("validate error")),
			})
		}
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).SubmitTransfer(context.Background(), TransferRequest{
		FromAddress: knownAddress,
		ToAddress:   knownAddress,
		Amount:      decimal.NewFromInt(1),
		SigningKey:  "k",
	})
	if err == nil {
		t.Fatal("expected broadcast rejection")
	}
}
