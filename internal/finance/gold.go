package finance

import "math"

// Gold purity grades supported by the system.
const (
	Purity22K = 22
	Purity24K = 24
)

// ValidPurity reports whether the given karat grade is one the system
// can value. Callers must reject anything else before valuation.
func ValidPurity(purity int) bool {
	return purity == Purity22K || purity == Purity24K
}

// GoldValue values a gold holding against the per-gram rates of the
// latest master snapshot. The rate for the holding's purity is applied
// linearly to its weight; both the value and the profit are rounded to
// the nearest whole amount.
func GoldValue(weight, purchasePrice float64, purity int, rate22, rate24 float64) (currentValue, profit float64) {
	ratePerGram := rate24
	if purity == Purity22K {
		ratePerGram = rate22
	}

	currentValue = math.Round(ratePerGram * weight)
	profit = math.Round(currentValue - purchasePrice)
	return currentValue, profit
}
