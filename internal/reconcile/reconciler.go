// Package reconcile joins estimate line items with vendor quotes and
// allocated expenses into one financial view per line item, then scores and
// summarizes the result. Everything here is pure: no I/O, no clock, no
// randomness.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/linecost/internal/model"
)

// Result is the output of a reconciliation run.
type Result struct {
	LineItems []model.LineItemControlData
	Summary   model.ReconciliationSummary
}

// Reconcile produces one LineItemControlData per estimate line item, in input
// order, plus the project summary. Quotes and expenses that reference a line
// item missing from items are left out of the per-item view; such expenses
// still land in the summary's unallocated total.
func Reconcile(items []model.EstimateLineItem, quotes []model.Quote, expenses []model.Expense, policy Policy) Result {
	quotesByItem := make(map[string][]model.Quote)
	for _, q := range quotes {
		quotesByItem[q.LineItemID] = append(quotesByItem[q.LineItemID], q)
	}
	expensesByItem := make(map[string][]model.Expense)
	for _, e := range expenses {
		if !e.Allocated() {
			continue
		}
		expensesByItem[e.LineItemID] = append(expensesByItem[e.LineItemID], e)
	}

	known := make(map[string]bool, len(items))
	out := make([]model.LineItemControlData, 0, len(items))
	for _, li := range items {
		// A repeated line item ID takes its quotes and expenses only once.
		var itemQuotes []model.Quote
		var itemExpenses []model.Expense
		if !known[li.ID] {
			itemQuotes = quotesByItem[li.ID]
			itemExpenses = expensesByItem[li.ID]
		}
		known[li.ID] = true

		c := reconcileItem(li, itemQuotes, itemExpenses, policy)
		c.RiskScore = Score(c, policy.Risk)
		out = append(out, c)
	}

	orphanedQuotes := 0
	for _, q := range quotes {
		if !known[q.LineItemID] {
			orphanedQuotes++
		}
	}

	summary := Summarize(out, expenses)
	summary.OrphanedQuotes = orphanedQuotes

	return Result{LineItems: out, Summary: summary}
}

func reconcileItem(li model.EstimateLineItem, quotes []model.Quote, expenses []model.Expense, policy Policy) model.LineItemControlData {
	accepted := acceptedQuotes(quotes)

	quoted := decimal.Zero
	for _, q := range accepted {
		quoted = quoted.Add(q.Total)
	}

	allocated := decimal.Zero
	for _, e := range expenses {
		allocated = allocated.Add(e.Amount)
	}

	remaining := quoted.Sub(allocated)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	variance, variancePct := Variance(quoted, li.EstimatedCost)

	return model.LineItemControlData{
		EstimateLineItem:    li,
		QuotedCost:          quoted,
		AllocatedAmount:     allocated,
		ActualAmount:        allocated,
		RemainingToAllocate: remaining,
		CostVariance:        variance,
		CostVariancePercent: variancePct,
		QuoteStatus:         QuoteStatusFor(li.Category, accepted, li.EstimatedCost, policy.FullCoverageRatio),
		AllocationStatus:    AllocationStatusFor(li.Category, quoted, allocated),
		AcceptedQuoteCount:  len(accepted),
		Quotes:              quotes,
		CorrelatedExpenses:  expenses,
	}
}
