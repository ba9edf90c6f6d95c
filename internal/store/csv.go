package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/linecost/internal/model"
)

// CSV headers for the three project files.
const (
	LineItemHeader = "line_item_id,project_id,category,description,quantity,unit_cost,estimated_price,estimated_cost,source,change_order_number"
	QuoteHeader    = "quote_id,project_id,line_item_id,quoted_by,quote_number,total,status,includes_labor,includes_materials"
	ExpenseHeader  = "expense_id,project_id,line_item_id,amount,expense_date,payee_id,payee_name,description,transaction_type"
)

const dateFormat = "2006-01-02"

const (
	liNumFields   = 10
	liColID       = 0
	liColProject  = 1
	liColCategory = 2
	liColDesc     = 3
	liColQty      = 4
	liColUnitCost = 5
	liColPrice    = 6
	liColCost     = 7
	liColSource   = 8
	liColCONumber = 9
)

const (
	qNumFields    = 9
	qColID        = 0
	qColProject   = 1
	qColLineItem  = 2
	qColQuotedBy  = 3
	qColNumber    = 4
	qColTotal     = 5
	qColStatus    = 6
	qColLabor     = 7
	qColMaterials = 8
)

const (
	eNumFields   = 9
	eColID       = 0
	eColProject  = 1
	eColLineItem = 2
	eColAmount   = 3
	eColDate     = 4
	eColPayeeID  = 5
	eColPayee    = 6
	eColDesc     = 7
	eColTxnType  = 8
)

// ReadLineItems reads estimate-line-items.csv.
func ReadLineItems(r io.Reader) ([]model.EstimateLineItem, error) {
	return readRows(r, liNumFields, "line items", UnmarshalLineItem)
}

// ReadQuotes reads quotes.csv.
func ReadQuotes(r io.Reader) ([]model.Quote, error) {
	return readRows(r, qNumFields, "quotes", UnmarshalQuote)
}

// ReadExpenses reads expenses.csv.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	return readRows(r, eNumFields, "expenses", UnmarshalExpense)
}

// WriteLineItems writes estimate-line-items.csv (including header).
func WriteLineItems(w io.Writer, items []model.EstimateLineItem) error {
	return writeRows(w, LineItemHeader, items, MarshalLineItem)
}

// WriteQuotes writes quotes.csv (including header).
func WriteQuotes(w io.Writer, quotes []model.Quote) error {
	return writeRows(w, QuoteHeader, quotes, MarshalQuote)
}

// WriteExpenses writes expenses.csv (including header).
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	return writeRows(w, ExpenseHeader, expenses, MarshalExpense)
}

func readRows[T any](r io.Reader, numFields int, what string, unmarshal func([]string) (T, error)) ([]T, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", what, err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	// Skip header row.
	var out []T
	for i, rec := range records[1:] {
		v, err := unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func writeRows[T any](w io.Writer, header string, rows []T, marshal func(T) []string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(marshal(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLineItem converts a line item to a CSV row.
func MarshalLineItem(li model.EstimateLineItem) []string {
	row := make([]string, liNumFields)
	row[liColID] = li.ID
	row[liColProject] = li.ProjectID
	row[liColCategory] = string(li.Category)
	row[liColDesc] = li.Description
	row[liColQty] = formatOptional(li.Quantity)
	row[liColUnitCost] = formatOptional(li.UnitCost)
	row[liColPrice] = li.EstimatedPrice.String()
	row[liColCost] = li.EstimatedCost.String()
	row[liColSource] = string(li.Source)
	row[liColCONumber] = li.ChangeOrderNumber
	return row
}

// UnmarshalLineItem converts a CSV row to a line item. A blank
// estimated_cost is derived from quantity × unit_cost.
func UnmarshalLineItem(record []string) (model.EstimateLineItem, error) {
	if len(record) != liNumFields {
		return model.EstimateLineItem{}, fmt.Errorf("expected %d fields, got %d", liNumFields, len(record))
	}

	qty, err := parseAmount("quantity", record[liColQty])
	if err != nil {
		return model.EstimateLineItem{}, err
	}
	unitCost, err := parseAmount("unit_cost", record[liColUnitCost])
	if err != nil {
		return model.EstimateLineItem{}, err
	}
	price, err := parseAmount("estimated_price", record[liColPrice])
	if err != nil {
		return model.EstimateLineItem{}, err
	}
	cost, err := parseAmount("estimated_cost", record[liColCost])
	if err != nil {
		return model.EstimateLineItem{}, err
	}
	if strings.TrimSpace(record[liColCost]) == "" {
		cost = qty.Mul(unitCost)
	}

	return model.EstimateLineItem{
		ID:                parseID(record[liColID]),
		ProjectID:         parseID(record[liColProject]),
		Category:          parseCategory(record[liColCategory]),
		Description:       record[liColDesc],
		Quantity:          qty,
		UnitCost:          unitCost,
		EstimatedPrice:    price,
		EstimatedCost:     cost,
		Source:            model.LineItemSource(record[liColSource]),
		ChangeOrderNumber: record[liColCONumber],
	}, nil
}

// MarshalQuote converts a quote to a CSV row.
func MarshalQuote(q model.Quote) []string {
	row := make([]string, qNumFields)
	row[qColID] = q.ID
	row[qColProject] = q.ProjectID
	row[qColLineItem] = q.LineItemID
	row[qColQuotedBy] = q.QuotedBy
	row[qColNumber] = q.QuoteNumber
	row[qColTotal] = q.Total.String()
	row[qColStatus] = string(q.Status)
	row[qColLabor] = strconv.FormatBool(q.IncludesLabor)
	row[qColMaterials] = strconv.FormatBool(q.IncludesMaterials)
	return row
}

// UnmarshalQuote converts a CSV row to a quote.
func UnmarshalQuote(record []string) (model.Quote, error) {
	if len(record) != qNumFields {
		return model.Quote{}, fmt.Errorf("expected %d fields, got %d", qNumFields, len(record))
	}

	total, err := parseAmount("total", record[qColTotal])
	if err != nil {
		return model.Quote{}, err
	}
	labor, err := parseFlag("includes_labor", record[qColLabor])
	if err != nil {
		return model.Quote{}, err
	}
	materials, err := parseFlag("includes_materials", record[qColMaterials])
	if err != nil {
		return model.Quote{}, err
	}

	return model.Quote{
		ID:                parseID(record[qColID]),
		ProjectID:         parseID(record[qColProject]),
		LineItemID:        parseID(record[qColLineItem]),
		QuotedBy:          record[qColQuotedBy],
		QuoteNumber:       record[qColNumber],
		Total:             total,
		Status:            model.QuoteState(strings.ToLower(strings.TrimSpace(record[qColStatus]))),
		IncludesLabor:     labor,
		IncludesMaterials: materials,
	}, nil
}

// MarshalExpense converts an expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, eNumFields)
	row[eColID] = e.ID
	row[eColProject] = e.ProjectID
	row[eColLineItem] = e.LineItemID
	row[eColAmount] = e.Amount.String()
	if !e.ExpenseDate.IsZero() {
		row[eColDate] = e.ExpenseDate.Format(dateFormat)
	}
	row[eColPayeeID] = e.PayeeID
	row[eColPayee] = e.PayeeName
	row[eColDesc] = e.Description
	row[eColTxnType] = e.TransactionType
	return row
}

// UnmarshalExpense converts a CSV row to an expense.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if len(record) != eNumFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", eNumFields, len(record))
	}

	amount, err := parseAmount("amount", record[eColAmount])
	if err != nil {
		return model.Expense{}, err
	}

	var date time.Time
	if s := strings.TrimSpace(record[eColDate]); s != "" {
		date, err = time.Parse(dateFormat, s)
		if err != nil {
			return model.Expense{}, fmt.Errorf("parsing expense_date %q: %w", s, err)
		}
	}

	return model.Expense{
		ID:              parseID(record[eColID]),
		ProjectID:       parseID(record[eColProject]),
		LineItemID:      parseID(record[eColLineItem]),
		Amount:          amount,
		ExpenseDate:     date,
		PayeeID:         record[eColPayeeID],
		PayeeName:       record[eColPayee],
		Description:     record[eColDesc],
		TransactionType: record[eColTxnType],
	}, nil
}

// parseID trims an identifier column. Links between files match on the
// trimmed value.
func parseID(s string) string {
	return strings.TrimSpace(s)
}

// parseCategory lower-cases and trims a category. Unknown categories are
// kept, and classify as external work.
func parseCategory(s string) model.Category {
	c := model.Category(strings.ToLower(strings.TrimSpace(s)))
	if c != "" && !c.Known() {
		slog.Warn("Unknown line item category, treating as external", "category", c)
	}
	return c
}

// parseAmount parses a decimal column; blank reads as zero.
func parseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return d, nil
}

// parseFlag parses a boolean column; blank reads as false.
func parseFlag(field, s string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return b, nil
}

func formatOptional(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
