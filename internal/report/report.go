// Package report renders reconciliation results for the terminal. It reads
// engine output only and never recomputes sums.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cleared-dev/linecost/internal/model"
	"github.com/cleared-dev/linecost/internal/reconcile"
)

// Options controls what Render shows.
type Options struct {
	ProjectName   string
	Currency      string
	ByRisk        bool // order lines by descending risk score
	AttentionOnly bool // only lines with a positive risk score
}

type column struct {
	title string
	width int
	right bool
}

var columns = []column{
	{"Line item", 12, false},
	{"Category", 15, false},
	{"Description", 24, false},
	{"Estimated", 14, true},
	{"Quoted", 14, true},
	{"Actual", 14, true},
	{"Remaining", 14, true},
	{"Var %", 9, true},
	{"Quote", 9, false},
	{"Allocation", 11, false},
	{"Risk", 8, true},
}

// Render writes the summary block followed by the line item table.
func Render(w io.Writer, res reconcile.Result, opts Options) error {
	var b strings.Builder

	title := "Cost reconciliation"
	if opts.ProjectName != "" {
		title += ": " + opts.ProjectName
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render(summaryBlock(res.Summary, opts.Currency)))
	b.WriteString("\n\n")

	items := res.LineItems
	if opts.ByRisk {
		items = reconcile.ByRisk(items)
	}
	if opts.AttentionOnly {
		items = reconcile.NeedsAttention(items)
	}

	if len(items) == 0 {
		b.WriteString("No line items to show.\n")
	} else {
		b.WriteString(tableHeader())
		b.WriteString("\n")
		for _, c := range items {
			b.WriteString(tableRow(c, opts.Currency))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func summaryBlock(s model.ReconciliationSummary, currency string) string {
	lines := []string{
		line("Line items", fmt.Sprintf("%d", s.LineItemCount)),
		line("Contract value", FormatMoney(s.TotalContractValue, currency)),
		line("Estimated cost", FormatMoney(s.TotalEstimatedCost, currency)),
		line("Quoted (with internal)", FormatMoney(s.TotalQuotedWithInternal, currency)),
		line("Actual", FormatMoney(s.TotalActual, currency)),
		line("Allocated", FormatMoney(s.TotalAllocated, currency)),
		line("Remaining to allocate", FormatMoney(s.TotalRemainingToAllocate, currency)),
		line("Cost variance", FormatMoney(s.TotalVariance, currency)),
		line("Completion", FormatPercent(s.CompletionPercentage)),
		line("Over / under budget", fmt.Sprintf("%d / %d", s.ItemsOverBudget, s.ItemsUnderBudget)),
		line("Needing attention", fmt.Sprintf("%d", s.ItemsNeedingAttention)),
	}
	if !s.ChangeOrderContractValue.IsZero() || !s.ChangeOrderEstimatedCost.IsZero() {
		lines = append(lines, line("Change orders (value/cost)",
			FormatMoney(s.ChangeOrderContractValue, currency)+" / "+FormatMoney(s.ChangeOrderEstimatedCost, currency)))
	}

	unallocated := FormatMoney(s.TotalUnallocated, currency)
	if s.TotalUnallocated.IsPositive() {
		unallocated = warningStyle.Render(unallocated)
	}
	lines = append(lines, line("Unallocated expenses", unallocated))
	if s.UnlinkedExpenses.IsPositive() {
		lines = append(lines, line("Not linked to an item", FormatMoney(s.UnlinkedExpenses, currency)))
	}
	if s.OrphanedExpenses.IsPositive() || s.OrphanedQuotes > 0 {
		lines = append(lines, line("Linked to missing items",
			fmt.Sprintf("%s in expenses, %d quotes", FormatMoney(s.OrphanedExpenses, currency), s.OrphanedQuotes)))
	}
	return strings.Join(lines, "\n")
}

func line(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func tableHeader() string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = headerStyle.Render(pad(col.title, col))
	}
	return strings.Join(cells, " ")
}

func tableRow(c model.LineItemControlData, currency string) string {
	values := []string{
		c.ID,
		string(c.Category),
		c.Description,
		FormatMoney(c.EstimatedCost, currency),
		FormatMoney(c.QuotedCost, currency),
		FormatMoney(c.ActualAmount, currency),
		FormatMoney(c.RemainingToAllocate, currency),
		FormatPercent(c.CostVariancePercent),
		string(c.QuoteStatus),
		string(c.AllocationStatus),
		c.RiskScore.StringFixed(0),
	}

	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = pad(values[i], col)
	}
	if _, over := reconcile.OverBudgetPercent(c); over {
		cells[5] = dangerStyle.Render(cells[5])
	}
	if c.QuoteStatus == model.QuoteStatusOver {
		cells[8] = warningStyle.Render(cells[8])
	}
	return strings.Join(cells, " ")
}

// pad truncates or pads s to the column width.
func pad(s string, col column) string {
	r := []rune(s)
	if len(r) > col.width {
		return string(r[:col.width-1]) + "…"
	}
	fill := strings.Repeat(" ", col.width-len(r))
	if col.right {
		return fill + s
	}
	return s + fill
}
