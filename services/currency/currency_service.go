package currency

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	db "github.com/GenPay/GenPay-Backend/db/sqlc"
	"github.com/GenPay/GenPay-Backend/services/monitoring/logging"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

var SupportedCurrencies = []string{"USD", "EUR", "GBP"}

// rates move slowly enough that a short cache keeps the settlement path off
// the rates table under load
const rateCacheTTL = 30 * time.Second

type CurrencyService struct {
	store     db.Datastore
	logger    *logging.Logger
	rateCache *cache.Cache
}

func IsCurrencyValid(request string) bool {
	for _, c := range SupportedCurrencies {
		if request == c {
			return true
		}
	}

	return false
}

func IsCurrencyInvalid(request string) bool {
	return !IsCurrencyValid(request)
}

func NewCurrencyService(store db.Datastore, logger *logging.Logger) *CurrencyService {
	return &CurrencyService{
		store:     store,
		logger:    logger,
		rateCache: cache.New(rateCacheTTL, 2*rateCacheTTL),
	}
}

func (c *CurrencyService) GetExchangeRate(ctx context.Context, fromCurrency string, toCurrency string) (decimal.Decimal, error) {
	cacheKey := fmt.Sprintf("%s:%s", fromCurrency, toCurrency)
	if cached, found := c.rateCache.Get(cacheKey); found {
		return cached.(decimal.Decimal), nil
	}

	c.logger.Info(fmt.Sprintf("fetching rate of %v to %v", fromCurrency, toCurrency))
	exchange, err := c.store.GetLatestExchangeRate(ctx, db.GetLatestExchangeRateParams{
		BaseCurrency:  fromCurrency,
		QuoteCurrency: toCurrency,
	})
	if err == sql.ErrNoRows {
		return decimal.Zero, NewCurrencyError(ErrNoExchangeRate, fromCurrency, toCurrency)
	} else if err != nil {
		return decimal.Zero, err
	}

	rate, err := decimal.NewFromString(exchange.Rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stored rate for %v to %v is not a decimal: %w", fromCurrency, toCurrency, err)
	}

	c.rateCache.Set(cacheKey, rate, cache.DefaultExpiration)
	return rate, nil
}

// Convert applies the latest rate to an amount; same-currency conversion is
// the identity.
func (c *CurrencyService) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency string, toCurrency string) (decimal.Decimal, error) {
	if fromCurrency == toCurrency {
		return amount, nil
	}

	rate, err := c.GetExchangeRate(ctx, fromCurrency, toCurrency)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Mul(rate).Round(2), nil
}

func (c *CurrencyService) GetAllExchangeRates(ctx context.Context) ([]db.ExchangeRate, error) {
	c.logger.Info("fetching all rates")
	exchangeRates, err := c.store.ListLatestExchangeRates(ctx)
	if err == sql.ErrNoRows {
		return nil, ErrNoExchangeRate
	} else if err != nil {
		return nil, err
	}
	return exchangeRates, err
}

func (c *CurrencyService) SetExchangeRate(ctx context.Context, fromCurrency string, toCurrency string, rate string) (*db.ExchangeRate, error) {
	c.logger.Info(fmt.Sprintf("setting exchange rate %v -> %v: %v", fromCurrency, toCurrency, rate))

	if IsCurrencyInvalid(fromCurrency) || IsCurrencyInvalid(toCurrency) {
		return nil, NewCurrencyError(ErrUnsupportedCurrency, fromCurrency, toCurrency)
	}

	rateDecimal, err := decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("could not determine rate from input")
	}
	if !rateDecimal.IsPositive() {
		return nil, fmt.Errorf("exchange rate must be positive")
	}

	exchObj, err := c.store.CreateExchangeRate(ctx, db.CreateExchangeRateParams{
		BaseCurrency:  fromCurrency,
		QuoteCurrency: toCurrency,
		Rate:          rateDecimal.String(),
		Source:        "manual", // Indicating this was set manually
		EffectiveTime: time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create exchange rate: %w", err)
	}

	c.rateCache.Delete(fmt.Sprintf("%s:%s", fromCurrency, toCurrency))

	return &exchObj, nil
}
