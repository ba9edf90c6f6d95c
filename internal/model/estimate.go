package model

import "github.com/shopspring/decimal"

// LineItemSource records where an estimate line item originated.
type LineItemSource string

const (
	SourceEstimate    LineItemSource = "estimate"
	SourceChangeOrder LineItemSource = "change_order"
)

// EstimateLineItem is one planned row of a project estimate.
type EstimateLineItem struct {
	ID                string
	ProjectID         string
	Category          Category
	Description       string
	Quantity          decimal.Decimal
	UnitCost          decimal.Decimal
	EstimatedPrice    decimal.Decimal // client-facing amount
	EstimatedCost     decimal.Decimal // internal cost
	Source            LineItemSource  // empty means SourceEstimate
	ChangeOrderNumber string
}

// IsChangeOrder reports whether the line item was added by a change order.
func (li EstimateLineItem) IsChangeOrder() bool {
	return li.Source == SourceChangeOrder
}
