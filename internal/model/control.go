package model

import "github.com/shopspring/decimal"

// QuoteStatus summarizes how accepted quotes cover a line item.
type QuoteStatus string

const (
	QuoteStatusInternal QuoteStatus = "internal"
	QuoteStatusNone     QuoteStatus = "none"
	QuoteStatusPartial  QuoteStatus = "partial"
	QuoteStatusFull     QuoteStatus = "full"
	QuoteStatusOver     QuoteStatus = "over"
)

// QuoteStatuses lists every quote status in display order.
var QuoteStatuses = []QuoteStatus{
	QuoteStatusInternal, QuoteStatusNone, QuoteStatusPartial, QuoteStatusFull, QuoteStatusOver,
}

// AllocationStatus summarizes how much of the committed cost has expenses
// allocated against it.
type AllocationStatus string

const (
	AllocationInternal  AllocationStatus = "internal"
	AllocationNotQuoted AllocationStatus = "not_quoted"
	AllocationNone      AllocationStatus = "none"
	AllocationPartial   AllocationStatus = "partial"
	AllocationFull      AllocationStatus = "full"
)

// AllocationStatuses lists every allocation status in display order.
var AllocationStatuses = []AllocationStatus{
	AllocationInternal, AllocationNotQuoted, AllocationNone, AllocationPartial, AllocationFull,
}

// LineItemControlData is the reconciled financial view of one estimate line
// item. It is computed, never persisted.
type LineItemControlData struct {
	EstimateLineItem

	QuotedCost          decimal.Decimal
	AllocatedAmount     decimal.Decimal
	ActualAmount        decimal.Decimal
	RemainingToAllocate decimal.Decimal
	CostVariance        decimal.Decimal
	CostVariancePercent decimal.Decimal
	QuoteStatus         QuoteStatus
	AllocationStatus    AllocationStatus
	AcceptedQuoteCount  int
	RiskScore           decimal.Decimal // ordering only

	Quotes             []Quote
	CorrelatedExpenses []Expense
}

// Baseline is the reference cost for progress and risk comparison: the
// quoted cost when a quote exists, otherwise the estimated cost.
func (c LineItemControlData) Baseline() decimal.Decimal {
	if c.QuotedCost.IsPositive() {
		return c.QuotedCost
	}
	return c.EstimatedCost
}

// ReconciliationSummary holds project-wide totals over all reconciled items.
type ReconciliationSummary struct {
	LineItemCount int

	TotalContractValue       decimal.Decimal
	TotalEstimatedCost       decimal.Decimal
	TotalQuotedWithInternal  decimal.Decimal
	TotalActual              decimal.Decimal
	TotalAllocated           decimal.Decimal
	TotalUnallocated         decimal.Decimal
	TotalVariance            decimal.Decimal
	TotalRemainingToAllocate decimal.Decimal
	CompletionPercentage     decimal.Decimal

	TotalExpenses    decimal.Decimal
	UnlinkedExpenses decimal.Decimal // no line item link at all
	OrphanedExpenses decimal.Decimal // linked to a line item not in the estimate
	OrphanedQuotes   int

	ChangeOrderContractValue decimal.Decimal
	ChangeOrderEstimatedCost decimal.Decimal

	ItemsOverBudget        int
	ItemsUnderBudget       int
	ItemsNeedingAttention  int
	QuoteStatusCounts      map[QuoteStatus]int
	AllocationStatusCounts map[AllocationStatus]int
}
