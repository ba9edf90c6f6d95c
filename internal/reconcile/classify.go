package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/linecost/internal/model"
)

// QuoteStatusFor classifies a line item by its accepted quotes.
//
// Internal categories are always internal. Otherwise no accepted quote is
// none and more than one is over, whatever the sum, since split or duplicate
// acceptance needs a human look. A single accepted quote is full when it
// reaches estimatedCost × fullCoverageRatio (or there is no positive
// estimate to compare against) and partial below that.
func QuoteStatusFor(category model.Category, accepted []model.Quote, estimatedCost, fullCoverageRatio decimal.Decimal) model.QuoteStatus {
	switch {
	case category.IsInternal():
		return model.QuoteStatusInternal
	case len(accepted) == 0:
		return model.QuoteStatusNone
	case len(accepted) > 1:
		return model.QuoteStatusOver
	}

	if !estimatedCost.IsPositive() {
		return model.QuoteStatusFull
	}
	threshold := estimatedCost.Mul(fullCoverageRatio)
	if accepted[0].Total.GreaterThanOrEqual(threshold) {
		return model.QuoteStatusFull
	}
	return model.QuoteStatusPartial
}

// AllocationStatusFor classifies how much of the quoted cost has expenses
// allocated against it. Allocation meeting the quote exactly is full, and
// allocation above the quote stays full.
func AllocationStatusFor(category model.Category, quotedCost, allocated decimal.Decimal) model.AllocationStatus {
	switch {
	case category.IsInternal():
		return model.AllocationInternal
	case !quotedCost.IsPositive():
		return model.AllocationNotQuoted
	case allocated.IsZero():
		return model.AllocationNone
	case allocated.LessThan(quotedCost):
		return model.AllocationPartial
	default:
		return model.AllocationFull
	}
}

// acceptedQuotes returns the accepted quotes in input order.
func acceptedQuotes(quotes []model.Quote) []model.Quote {
	var out []model.Quote
	for _, q := range quotes {
		if q.Accepted() {
			out = append(out, q)
		}
	}
	return out
}
