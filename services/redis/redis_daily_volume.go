package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

/// This file tracks per-customer daily transfer volume for cap enforcement

func dailyVolumeKey(customerID int64) string {
	return fmt.Sprintf("daily_transfer_volume:%d", customerID)
}

// AddDailyVolume adds a completed transfer's amount to the customer's
// running total for today. INCRBYFLOAT keeps concurrent settlements from
// losing increments; amounts carry two decimal places, well within float64
// precision. The key expires at the next midnight so a new day always
// starts from zero.
func (r *RedisService) AddDailyVolume(ctx context.Context, customerID int64, amount decimal.Decimal) error {
	key := dailyVolumeKey(customerID)

	if err := r.client.IncrByFloat(ctx, key, amount.InexactFloat64()).Err(); err != nil {
		return fmt.Errorf("failed to add daily volume: %w", err)
	}

	// Only the first increment of the day sets the expiry; later ones must
	// not push it back.
	midnight := time.Now().Add(24 * time.Hour).Truncate(24 * time.Hour)
	if err := r.client.ExpireNX(ctx, key, time.Until(midnight)).Err(); err != nil {
		return fmt.Errorf("failed to set expiration: %w", err)
	}

	return nil
}

// DailyVolume returns what the customer has moved so far today. A missing
// key means nothing has moved yet.
func (r *RedisService) DailyVolume(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	value, err := r.client.Get(ctx, dailyVolumeKey(customerID)).Result()
	if err == goredis.Nil {
		return decimal.Zero, nil
	} else if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get daily volume: %w", err)
	}

	volume, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse daily volume: %w", err)
	}
	return volume, nil
}
