package currency

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	db "github.com/GenPay/GenPay-Backend/db/sqlc"
	"github.com/GenPay/GenPay-Backend/services/monitoring/logging"
	"github.com/shopspring/decimal"
	logrustest "github.com/sirupsen/logrus/hooks/test"
)

type fakeStore struct {
	db.Querier
	rates     []db.ExchangeRate
	getCalls  int
	nextRowID int64
}

func (f *fakeStore) CreateExchangeRate(ctx context.Context, arg db.CreateExchangeRateParams) (db.ExchangeRate, error) {
	f.nextRowID++
	rate := db.ExchangeRate{
		ID:            f.nextRowID,
		BaseCurrency:  arg.BaseCurrency,
		QuoteCurrency: arg.QuoteCurrency,
		Rate:          arg.Rate,
		Source:        arg.Source,
		EffectiveTime: arg.EffectiveTime,
		CreatedAt:     time.Now(),
	}
	f.rates = append(f.rates, rate)
	return rate, nil
}

func (f *fakeStore) GetLatestExchangeRate(ctx context.Context, arg db.GetLatestExchangeRateParams) (db.ExchangeRate, error) {
	f.getCalls++
	var latest *db.ExchangeRate
	for i := range f.rates {
		r := &f.rates[i]
		if r.BaseCurrency == arg.BaseCurrency && r.QuoteCurrency == arg.QuoteCurrency {
			if latest == nil || r.EffectiveTime.After(latest.EffectiveTime) {
				latest = r
			}
		}
	}
	if latest == nil {
		return db.ExchangeRate{}, sql.ErrNoRows
	}
	return *latest, nil
}

func (f *fakeStore) ListLatestExchangeRates(ctx context.Context) ([]db.ExchangeRate, error) {
	return f.rates, nil
}

func (f *fakeStore) ExecTx(ctx context.Context, fq func(q db.Querier) error) error {
	return fq(f)
}

func newTestService(store *fakeStore) *CurrencyService {
	l, _ := logrustest.NewNullLogger()
	return NewCurrencyService(store, &logging.Logger{Logger: l})
}

func TestIsCurrencyValid(t *testing.T) {
	for _, c := range []string{"USD", "EUR", "GBP"} {
		if !IsCurrencyValid(c) {
			t.Errorf("%v should be supported", c)
		}
	}
	for _, c := range []string{"usd", "NGN", "", "USDT"} {
		if IsCurrencyValid(c) {
			t.Errorf("%v should not be supported", c)
		}
	}
}

func TestGetExchangeRateMissing(t *testing.T) {
	service := newTestService(&fakeStore{})

	_, err := service.GetExchangeRate(context.Background(), "USD", "EUR")
	if !errors.Is(err, ErrNoExchangeRate) {
		t.Fatalf("expected ErrNoExchangeRate, got %v", err)
	}
}

func TestGetExchangeRateCaches(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(store)

	if _, err := service.SetExchangeRate(context.Background(), "USD", "EUR", "0.85"); err != nil {
		t.Fatalf("set rate: %v", err)
	}

	for i := 0; i < 3; i++ {
		rate, err := service.GetExchangeRate(context.Background(), "USD", "EUR")
		if err != nil {
			t.Fatalf("get rate: %v", err)
		}
		if !rate.Equal(decimal.RequireFromString("0.85")) {
			t.Errorf("rate: got %v, want 0.85", rate)
		}
	}

	if store.getCalls != 1 {
		t.Errorf("expected one database read, got %d", store.getCalls)
	}
}

func TestSetExchangeRateInvalidatesCache(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(store)

	if _, err := service.SetExchangeRate(context.Background(), "USD", "EUR", "0.85"); err != nil {
		t.Fatal(err)
	}
	if _, err := service.GetExchangeRate(context.Background(), "USD", "EUR"); err != nil {
		t.Fatal(err)
	}

	if _, err := service.SetExchangeRate(context.Background(), "USD", "EUR", "0.90"); err != nil {
		t.Fatal(err)
	}

	rate, err := service.GetExchangeRate(context.Background(), "USD", "EUR")
	if err != nil {
		t.Fatal(err)
	}
	if !rate.Equal(decimal.RequireFromString("0.90")) {
		t.Errorf("stale rate served after update: got %v", rate)
	}
}

func TestSetExchangeRateValidation(t *testing.T) {
	service := newTestService(&fakeStore{})

	if _, err := service.SetExchangeRate(context.Background(), "USD", "NGN", "1"); err == nil {
		t.Error("unsupported currency accepted")
	}
	if _, err := service.SetExchangeRate(context.Background(), "USD", "EUR", "not-a-number"); err == nil {
		t.Error("non-decimal rate accepted")
	}
	if _, err := service.SetExchangeRate(context.Background(), "USD", "EUR", "-1"); err == nil {
		t.Error("negative rate accepted")
	}
	if _, err := service.SetExchangeRate(context.Background(), "USD", "EUR", "0"); err == nil {
		t.Error("zero rate accepted")
	}
}

func TestConvert(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(store)

	if _, err := service.SetExchangeRate(context.Background(), "USD", "EUR", "0.8"); err != nil {
		t.Fatal(err)
	}

	converted, err := service.Convert(context.Background(), decimal.RequireFromString("100"), "USD", "EUR")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !converted.Equal(decimal.RequireFromString("80")) {
		t.Errorf("converted: got %v, want 80", converted)
	}

	// Same-currency conversion never needs a rate
	same, err := service.Convert(context.Background(), decimal.RequireFromString("42.42"), "GBP", "GBP")
	if err != nil {
		t.Fatalf("identity convert: %v", err)
	}
	if !same.Equal(decimal.RequireFromString("42.42")) {
		t.Errorf("identity: got %v", same)
	}
}

func TestConvertRoundsToTwoPlaces(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(store)

	if _, err := service.SetExchangeRate(context.Background(), "USD", "EUR", "0.8531"); err != nil {
		t.Fatal(err)
	}

	converted, err := service.Convert(context.Background(), decimal.RequireFromString("33.33"), "USD", "EUR")
	if err != nil {
		t.Fatal(err)
	}
	if converted.Exponent() < -2 {
		t.Errorf("converted amount has more than two minor digits: %v", converted)
	}
}
