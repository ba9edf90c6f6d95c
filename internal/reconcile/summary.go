package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/linecost/internal/model"
)

// Summarize rolls reconciled items up into project totals. expenses must be
// the project's full expense list, allocated or not, so the unallocated
// figure is exact: TotalAllocated + TotalUnallocated == Σ expense amounts.
func Summarize(items []model.LineItemControlData, expenses []model.Expense) model.ReconciliationSummary {
	s := model.ReconciliationSummary{
		LineItemCount:            len(items),
		TotalContractValue:       decimal.Zero,
		TotalEstimatedCost:       decimal.Zero,
		TotalQuotedWithInternal:  decimal.Zero,
		TotalActual:              decimal.Zero,
		TotalAllocated:           decimal.Zero,
		TotalVariance:            decimal.Zero,
		TotalRemainingToAllocate: decimal.Zero,
		TotalExpenses:            decimal.Zero,
		UnlinkedExpenses:         decimal.Zero,
		OrphanedExpenses:         decimal.Zero,
		ChangeOrderContractValue: decimal.Zero,
		ChangeOrderEstimatedCost: decimal.Zero,
		QuoteStatusCounts:        make(map[model.QuoteStatus]int, len(model.QuoteStatuses)),
		AllocationStatusCounts:   make(map[model.AllocationStatus]int, len(model.AllocationStatuses)),
	}

	known := make(map[string]bool, len(items))
	for _, c := range items {
		known[c.ID] = true

		s.TotalContractValue = s.TotalContractValue.Add(c.EstimatedPrice)
		s.TotalEstimatedCost = s.TotalEstimatedCost.Add(c.EstimatedCost)
		s.TotalActual = s.TotalActual.Add(c.ActualAmount)
		s.TotalAllocated = s.TotalAllocated.Add(c.AllocatedAmount)
		s.TotalRemainingToAllocate = s.TotalRemainingToAllocate.Add(c.RemainingToAllocate)

		if c.Category.IsInternal() {
			s.TotalQuotedWithInternal = s.TotalQuotedWithInternal.Add(c.EstimatedCost)
		} else {
			s.TotalQuotedWithInternal = s.TotalQuotedWithInternal.Add(c.QuotedCost)
		}

		if c.IsChangeOrder() {
			s.ChangeOrderContractValue = s.ChangeOrderContractValue.Add(c.EstimatedPrice)
			s.ChangeOrderEstimatedCost = s.ChangeOrderEstimatedCost.Add(c.EstimatedCost)
		}

		// Budget comparison only makes sense once a vendor has committed.
		if !c.Category.IsInternal() && c.QuotedCost.IsPositive() {
			s.TotalVariance = s.TotalVariance.Add(c.CostVariance)
			switch c.CostVariance.Sign() {
			case 1:
				s.ItemsOverBudget++
			case -1:
				s.ItemsUnderBudget++
			}
		}

		if c.RiskScore.IsPositive() {
			s.ItemsNeedingAttention++
		}
		s.QuoteStatusCounts[c.QuoteStatus]++
		s.AllocationStatusCounts[c.AllocationStatus]++
	}

	for _, e := range expenses {
		s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
		switch {
		case !e.Allocated():
			s.UnlinkedExpenses = s.UnlinkedExpenses.Add(e.Amount)
		case !known[e.LineItemID]:
			s.OrphanedExpenses = s.OrphanedExpenses.Add(e.Amount)
		}
	}

	s.TotalUnallocated = s.TotalExpenses.Sub(s.TotalAllocated)
	s.CompletionPercentage = percentOf(s.TotalActual, s.TotalEstimatedCost)

	return s
}
