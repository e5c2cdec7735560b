package transfer

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeSchedule is a percentage of the transfer amount with a floor in
// currency units.
type FeeSchedule struct {
	Rate    decimal.Decimal
	Minimum decimal.Decimal
}

var feeSchedules = map[string]FeeSchedule{
	TypeInternal:    {Rate: decimal.NewFromFloat(0.005), Minimum: decimal.NewFromInt(1)},
	TypeExternal:    {Rate: decimal.NewFromFloat(0.015), Minimum: decimal.NewFromInt(5)},
	TypeCardPayment: {Rate: decimal.NewFromFloat(0.02), Minimum: decimal.NewFromInt(2)},
}

// CalculateFee returns max(amount * rate, minimum), rounded to two minor
// digits before the floor comparison so the floor applies to the charged
// figure.
func CalculateFee(amount decimal.Decimal, transferType string) (decimal.Decimal, error) {
	schedule, ok := feeSchedules[transferType]
	if !ok {
		return decimal.Zero, ErrInvalidTransferType
	}

	fee := amount.Mul(schedule.Rate).Round(2)
	if fee.LessThan(schedule.Minimum) {
		fee = schedule.Minimum
	}
	return fee, nil
}

const (
	internalArrival = 5 * time.Minute
	externalArrival = 3 * 24 * time.Hour
)

// EstimatedArrival is five minutes for internal moves, three days for
// anything that leaves the platform.
func EstimatedArrival(transferType string, now time.Time) time.Time {
	if transferType == TypeInternal {
		return now.Add(internalArrival)
	}
	return now.Add(externalArrival)
}
