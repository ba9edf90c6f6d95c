// Package export projects reconciled line items into flat rows for
// delimited-text export. Every value is copied from engine output; nothing
// is re-derived here.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/linecost/internal/model"
)

// Header is the CSV header of an export file.
const Header = "line_item_id,category,description,source,estimated_price,estimated_cost,quoted_cost,allocated_amount,actual_amount,remaining_to_allocate,cost_variance,cost_variance_percent,quote_status,allocation_status,accepted_quotes,expense_count,risk_score"

const (
	numFields        = 17
	colID            = 0
	colCategory      = 1
	colDesc          = 2
	colSource        = 3
	colPrice         = 4
	colCost          = 5
	colQuoted        = 6
	colAllocated     = 7
	colActual        = 8
	colRemaining     = 9
	colVariance      = 10
	colVariancePct   = 11
	colQuoteStatus   = 12
	colAllocStatus   = 13
	colAcceptedCount = 14
	colExpenseCount  = 15
	colRisk          = 16
)

// MarshalRow converts one reconciled line item to an export row.
func MarshalRow(c model.LineItemControlData) []string {
	source := c.Source
	if source == "" {
		source = model.SourceEstimate
	}

	row := make([]string, numFields)
	row[colID] = c.ID
	row[colCategory] = string(c.Category)
	row[colDesc] = c.Description
	row[colSource] = string(source)
	row[colPrice] = c.EstimatedPrice.StringFixed(2)
	row[colCost] = c.EstimatedCost.StringFixed(2)
	row[colQuoted] = c.QuotedCost.StringFixed(2)
	row[colAllocated] = c.AllocatedAmount.StringFixed(2)
	row[colActual] = c.ActualAmount.StringFixed(2)
	row[colRemaining] = c.RemainingToAllocate.StringFixed(2)
	row[colVariance] = c.CostVariance.StringFixed(2)
	row[colVariancePct] = c.CostVariancePercent.StringFixed(2)
	row[colQuoteStatus] = string(c.QuoteStatus)
	row[colAllocStatus] = string(c.AllocationStatus)
	row[colAcceptedCount] = strconv.Itoa(c.AcceptedQuoteCount)
	row[colExpenseCount] = strconv.Itoa(len(c.CorrelatedExpenses))
	row[colRisk] = c.RiskScore.StringFixed(2)
	return row
}

// Write writes the header and one row per line item.
func Write(w io.Writer, items []model.LineItemControlData) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range items {
		if err := cw.Write(MarshalRow(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
