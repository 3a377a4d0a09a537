package finance

import "math"

// RealEstateValue values a property linearly against the per-square-foot
// rate of its exact area-price match. Value and profit are rounded to the
// nearest whole amount.
func RealEstateValue(areaInSquareFeet, purchasePrice, pricePerSquareFoot float64) (currentValue, profit float64) {
	currentValue = math.Round(pricePerSquareFoot * areaInSquareFeet)
	profit = math.Round(currentValue - purchasePrice)
	return currentValue, profit
}
