package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/linecost/internal/model"
)

// Default risk weights. These only decide what looks urgent in the ordered
// view; they never touch reconciled amounts.
const (
	DefaultOverBudgetWeight        = 100
	DefaultAwaitingInvoiceWeight   = 50
	DefaultUnquotedWeight          = 30
	DefaultPartialAllocationWeight = 20
	DefaultInternalWeight          = -10
)

// RiskWeights are the additive terms of a line item's risk score.
type RiskWeights struct {
	OverBudget        decimal.Decimal // plus the overrun percentage
	AwaitingInvoice   decimal.Decimal // external, quoted, nothing spent yet
	Unquoted          decimal.Decimal
	PartialAllocation decimal.Decimal
	Internal          decimal.Decimal
}

// DefaultRiskWeights returns the stock weights.
func DefaultRiskWeights() RiskWeights {
	return RiskWeights{
		OverBudget:        decimal.NewFromInt(DefaultOverBudgetWeight),
		AwaitingInvoice:   decimal.NewFromInt(DefaultAwaitingInvoiceWeight),
		Unquoted:          decimal.NewFromInt(DefaultUnquotedWeight),
		PartialAllocation: decimal.NewFromInt(DefaultPartialAllocationWeight),
		Internal:          decimal.NewFromInt(DefaultInternalWeight),
	}
}

// Score returns how urgently a reconciled line item needs attention. Higher
// is more urgent. An item over its baseline scores OverBudget plus the
// overrun percentage, so larger overruns always rank higher.
func Score(c model.LineItemControlData, w RiskWeights) decimal.Decimal {
	score := decimal.Zero

	if over, ok := OverBudgetPercent(c); ok {
		score = score.Add(w.OverBudget).Add(over)
	}

	external := !c.Category.IsInternal()
	if external && c.QuotedCost.IsPositive() && c.ActualAmount.IsZero() {
		score = score.Add(w.AwaitingInvoice)
	}
	if c.QuoteStatus == model.QuoteStatusNone {
		score = score.Add(w.Unquoted)
	}
	if c.AllocationStatus == model.AllocationPartial {
		score = score.Add(w.PartialAllocation)
	}
	if !external {
		score = score.Add(w.Internal)
	}
	return score
}

// OverBudgetPercent reports whether actual spend exceeds the baseline and by
// what percentage of it. With a zero baseline any spend counts as 100% over.
func OverBudgetPercent(c model.LineItemControlData) (decimal.Decimal, bool) {
	baseline := c.Baseline()
	if !c.ActualAmount.GreaterThan(baseline) {
		return decimal.Zero, false
	}
	if !baseline.IsPositive() {
		return hundred, true
	}
	return percentOf(c.ActualAmount.Sub(baseline), baseline), true
}

// ByRisk returns a copy of items ordered by descending RiskScore. Equal
// scores keep their input order.
func ByRisk(items []model.LineItemControlData) []model.LineItemControlData {
	out := make([]model.LineItemControlData, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RiskScore.GreaterThan(out[j].RiskScore)
	})
	return out
}

// NeedsAttention returns the items with a positive RiskScore, in input order.
func NeedsAttention(items []model.LineItemControlData) []model.LineItemControlData {
	var out []model.LineItemControlData
	for _, c := range items {
		if c.RiskScore.IsPositive() {
			out = append(out, c)
		}
	}
	return out
}
