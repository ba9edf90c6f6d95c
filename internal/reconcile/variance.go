package reconcile

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// percentPlaces is the rounding applied to every percentage the engine emits.
const percentPlaces = 2

// Variance returns quotedCost − estimatedCost and that delta as a percentage
// of estimatedCost. The percentage is 0 when estimatedCost is not positive.
func Variance(quotedCost, estimatedCost decimal.Decimal) (amount, percent decimal.Decimal) {
	amount = quotedCost.Sub(estimatedCost)
	return amount, percentOf(amount, estimatedCost)
}

// percentOf returns part / whole × 100, or 0 when whole is not positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).DivRound(whole, percentPlaces)
}
