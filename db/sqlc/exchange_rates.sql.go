package db

import (
	"context"
	"time"
)

const createExchangeRate = `-- name: CreateExchangeRate :one
INSERT INTO exchange_rates (base_currency, quote_currency, rate, source, effective_time)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, base_currency, quote_currency, rate, source, effective_time, created_at
`

type CreateExchangeRateParams struct {
	BaseCurrency  string    `json:"base_currency"`
	QuoteCurrency string    `json:"quote_currency"`
	Rate          string    `json:"rate"`
	Source        string    `json:"source"`
	EffectiveTime time.Time `json:"effective_time"`
}

func (q *Queries) CreateExchangeRate(ctx context.Context, arg CreateExchangeRateParams) (ExchangeRate, error) {
	row := q.db.QueryRowContext(ctx, createExchangeRate,
		arg.BaseCurrency,
		arg.QuoteCurrency,
		arg.Rate,
		arg.Source,
		arg.EffectiveTime,
	)
	var i ExchangeRate
	err := row.Scan(
		&i.ID,
		&i.BaseCurrency,
		&i.QuoteCurrency,
		&i.Rate,
		&i.Source,
		&i.EffectiveTime,
		&i.CreatedAt,
	)
	return i, err
}

const getLatestExchangeRate = `-- name: GetLatestExchangeRate :one
SELECT id, base_currency, quote_currency, rate, source, effective_time, created_at
FROM exchange_rates
WHERE base_currency = $1 AND quote_currency = $2
ORDER BY effective_time DESC
LIMIT 1
`

type GetLatestExchangeRateParams struct {
	BaseCurrency  string `json:"base_currency"`
	QuoteCurrency string `json:"quote_currency"`
}

func (q *Queries) GetLatestExchangeRate(ctx context.Context, arg GetLatestExchangeRateParams) (ExchangeRate, error) {
	row := q.db.QueryRowContext(ctx, getLatestExchangeRate, arg.BaseCurrency, arg.QuoteCurrency)
	var i ExchangeRate
	err := row.Scan(
		&i.ID,
		&i.BaseCurrency,
		&i.QuoteCurrency,
		&i.Rate,
		&i.Source,
		&i.EffectiveTime,
		&i.CreatedAt,
	)
	return i, err
}

const listLatestExchangeRates = `-- name: ListLatestExchangeRates :many
SELECT DISTINCT ON (base_currency, quote_currency)
    id, base_currency, quote_currency, rate, source, effective_time, created_at
FROM exchange_rates
ORDER BY base_currency, quote_currency, effective_time DESC
`

func (q *Queries) ListLatestExchangeRates(ctx context.Context) ([]ExchangeRate, error) {
	rows, err := q.db.QueryContext(ctx, listLatestExchangeRates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ExchangeRate{}
	for rows.Next() {
		var i ExchangeRate
		if err := rows.Scan(
			&i.ID,
			&i.BaseCurrency,
			&i.QuoteCurrency,
			&i.Rate,
			&i.Source,
			&i.EffectiveTime,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
