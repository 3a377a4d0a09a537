// Package finance implements the valuation arithmetic for every asset
// class: fixed-deposit simple interest, gold and real-estate linear
// valuation, and stock position accumulation. All functions are pure;
// callers pass "now" explicitly.
package finance

import (
	"fmt"
	"time"
)

// year is the fixed 365-day year used for all tenure math. Leap years are
// intentionally ignored; calendar-accurate math would change every
// historical output.
const year = 365 * 24 * time.Hour

// TenureInYears returns the total deposit tenure as a fraction of fixed
// 365-day years.
func TenureInYears(start, maturity time.Time) float64 {
	return float64(maturity.Sub(start)) / float64(year)
}

// TenureCompletedYears returns the tenure elapsed so far, clamped so that
// completed never exceeds the total tenure.
func TenureCompletedYears(start, maturity, now time.Time) float64 {
	total := TenureInYears(start, maturity)
	completed := float64(now.Sub(start)) / float64(year)
	if completed > total {
		return total
	}
	return completed
}

// TenureLabel renders the tenure as a human label: "2y 3M", "2y", "3M",
// or "0M". Granularity stops at months.
func TenureLabel(start, maturity time.Time) string {
	years := maturity.Year() - start.Year()
	months := int(maturity.Month()) - int(start.Month())

	switch {
	case years > 0 && months > 0:
		return fmt.Sprintf("%dy %dM", years, months)
	case years > 0:
		return fmt.Sprintf("%dy", years)
	case months > 0:
		return fmt.Sprintf("%dM", months)
	default:
		return "0M"
	}
}
