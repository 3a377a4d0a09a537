package finance

import (
	"math"
	"time"
)

// payoutGranularity is the amount the projected maturity payout is floored
// to a multiple of. Banks settle FD payouts in 75-unit increments.
const payoutGranularity = 75

// FixedDepositResult holds every derived field of a fixed deposit.
type FixedDepositResult struct {
	TenureInYears        float64
	TenureCompletedYears float64
	CurrentReturnAmount  float64
	TotalReturnedAmount  float64
	CurrentProfitAmount  float64
	TenureLabel          string
}

// FixedDepositReturns projects a fixed deposit's current and maturity
// value using simple interest over a fixed 365-day year. Interest is
// truncated toward zero before being added to the principal, and the
// full-tenure payout is floored to the payout granularity. The function
// is idempotent: the same inputs always produce the same result, so it is
// safe to run on create, on update, and from the daily batch.
func FixedDepositReturns(invested, annualRate float64, start, maturity, now time.Time) FixedDepositResult {
	total := TenureInYears(start, maturity)
	completed := TenureCompletedYears(start, maturity, now)

	interestForCompleted := invested * annualRate * completed / 100
	interestForFull := invested * annualRate * total / 100

	currentReturn := invested + math.Trunc(interestForCompleted)
	totalReturnedRaw := invested + math.Trunc(interestForFull)
	totalReturned := totalReturnedRaw - math.Mod(totalReturnedRaw, payoutGranularity)

	return FixedDepositResult{
		TenureInYears:        total,
		TenureCompletedYears: completed,
		CurrentReturnAmount:  currentReturn,
		TotalReturnedAmount:  totalReturned,
		CurrentProfitAmount:  currentReturn - invested,
		TenureLabel:          TenureLabel(start, maturity),
	}
}
