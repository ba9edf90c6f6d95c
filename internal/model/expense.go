package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is money actually paid. LineItemID is empty for expenses not yet
// allocated to any line item.
type Expense struct {
	ID              string
	ProjectID       string
	LineItemID      string
	Amount          decimal.Decimal
	ExpenseDate     time.Time
	PayeeID         string
	PayeeName       string
	Description     string
	TransactionType string
}

// Allocated reports whether the expense is explicitly linked to a line item.
func (e Expense) Allocated() bool {
	return e.LineItemID != ""
}
