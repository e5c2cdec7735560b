package transfer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCalculateFee(t *testing.T) {
	cases := []struct {
		name         string
		amount       string
		transferType string
		want         string
	}{
		{"internal percentage applies", "500", TypeInternal, "2.5"},
		{"internal floor applies", "100", TypeInternal, "1"},
		{"internal exactly at floor", "200", TypeInternal, "1"},
		{"external percentage applies", "1000", TypeExternal, "15"},
		{"external floor applies", "100", TypeExternal, "5"},
		{"card payment percentage applies", "500", TypeCardPayment, "10"},
		{"card payment floor applies", "50", TypeCardPayment, "2"},
		{"rounding to two places", "333.33", TypeInternal, "1.67"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			fee, err := CalculateFee(amount, tc.transferType)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !fee.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("fee for %v %v: got %v, want %v", tc.amount, tc.transferType, fee, tc.want)
			}
		})
	}
}

func TestCalculateFeeUnknownType(t *testing.T) {
	if _, err := CalculateFee(decimal.NewFromInt(100), "wire"); err != ErrInvalidTransferType {
		t.Errorf("expected ErrInvalidTransferType, got %v", err)
	}
}

func TestEstimatedArrival(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := EstimatedArrival(TypeInternal, now); !got.Equal(now.Add(5 * time.Minute)) {
		t.Errorf("internal arrival: got %v", got)
	}
	if got := EstimatedArrival(TypeExternal, now); !got.Equal(now.Add(72 * time.Hour)) {
		t.Errorf("external arrival: got %v", got)
	}
	if got := EstimatedArrival(TypeCardPayment, now); !got.Equal(now.Add(72 * time.Hour)) {
		t.Errorf("card payment arrival: got %v", got)
	}
}
