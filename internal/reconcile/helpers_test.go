package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/linecost/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func lineItem(id string, cat model.Category, estimatedCost string) model.EstimateLineItem {
	return model.EstimateLineItem{
		ID:            id,
		ProjectID:     "p-1",
		Category:      cat,
		Description:   "line " + id,
		EstimatedCost: dec(estimatedCost),
	}
}

func quote(id, lineItemID, total string, status model.QuoteState) model.Quote {
	return model.Quote{
		ID:         id,
		ProjectID:  "p-1",
		LineItemID: lineItemID,
		QuotedBy:   "Vendor " + id,
		Total:      dec(total),
		Status:     status,
	}
}

func expense(id, lineItemID, amount string) model.Expense {
	return model.Expense{
		ID:          id,
		ProjectID:   "p-1",
		LineItemID:  lineItemID,
		Amount:      dec(amount),
		ExpenseDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PayeeName:   "Payee " + id,
	}
}

func sumExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

func findItem(items []model.LineItemControlData, id string) model.LineItemControlData {
	for _, c := range items {
		if c.ID == id {
			return c
		}
	}
	return model.LineItemControlData{}
}
