package model

import "github.com/shopspring/decimal"

// QuoteState is the vendor quote lifecycle state.
type QuoteState string

const (
	QuotePending  QuoteState = "pending"
	QuoteAccepted QuoteState = "accepted"
	QuoteRejected QuoteState = "rejected"
)

// Quote is a vendor price for a single estimate line item. Several quotes may
// target the same line item.
type Quote struct {
	ID                string
	ProjectID         string
	LineItemID        string
	QuotedBy          string
	QuoteNumber       string
	Total             decimal.Decimal
	Status            QuoteState
	IncludesLabor     bool
	IncludesMaterials bool
}

// Accepted reports whether the quote counts toward committed cost.
func (q Quote) Accepted() bool {
	return q.Status == QuoteAccepted
}
