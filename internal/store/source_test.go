package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/linecost/internal/model"
)

func TestCSVSource_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	src := NewCSVSource(dir)
	want := sampleSnapshot()

	require.NoError(t, src.Save("p-1", want))
	for _, name := range []string{LineItemsFile, QuotesFile, ExpensesFile} {
		_, err := os.Stat(filepath.Join(dir, "projects", "p-1", name))
		require.NoError(t, err, "%s should exist", name)
	}

	got, err := src.Load(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Len(t, got.LineItems, 2)
	assert.Len(t, got.Quotes, 1)
	assert.Len(t, got.Expenses, 2)
	assert.Equal(t, "Framing, walls", got.LineItems[0].Description)
}

func TestCSVSource_SaveLoadKeepsSubCentAmounts(t *testing.T) {
	src := NewCSVSource(t.TempDir())
	snap := Snapshot{
		LineItems: []model.EstimateLineItem{{
			ID: "li-1", ProjectID: "p-1", Category: model.CategoryMaterials,
			Quantity: dec("3.5"), UnitCost: dec("28.6071"),
			EstimatedPrice: dec("150.3333"), EstimatedCost: dec("100.125"),
		}},
		Quotes: []model.Quote{{
			ID: "q-1", ProjectID: "p-1", LineItemID: "li-1",
			Total: dec("99.995"), Status: model.QuoteAccepted,
		}},
		Expenses: []model.Expense{
			{ID: "e-1", ProjectID: "p-1", LineItemID: "li-1", Amount: dec("0.004")},
			{ID: "e-2", ProjectID: "p-1", LineItemID: "li-1", Amount: dec("10.005")},
		},
	}
	require.NoError(t, src.Save("p-1", snap))

	got, err := src.Load(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, got.LineItems, 1)
	require.Len(t, got.Quotes, 1)
	require.Len(t, got.Expenses, 2)
	assert.Equal(t, "100.125", got.LineItems[0].EstimatedCost.String())
	assert.Equal(t, "150.3333", got.LineItems[0].EstimatedPrice.String())
	assert.Equal(t, "28.6071", got.LineItems[0].UnitCost.String())
	assert.Equal(t, "99.995", got.Quotes[0].Total.String())
	assert.Equal(t, "0.004", got.Expenses[0].Amount.String())
	assert.Equal(t, "10.005", got.Expenses[1].Amount.String())
}

func TestCSVSource_MissingProjectIsEmpty(t *testing.T) {
	src := NewCSVSource(t.TempDir())
	snap, err := src.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, snap.LineItems)
	assert.Empty(t, snap.Quotes)
	assert.Empty(t, snap.Expenses)
}

func TestCSVSource_FiltersOtherProjects(t *testing.T) {
	dir := t.TempDir()
	src := NewCSVSource(dir)
	snap := sampleSnapshot()
	snap.Expenses = append(snap.Expenses, model.Expense{ID: "e-x", ProjectID: "p-2", Amount: dec("999")})
	snap.Quotes = append(snap.Quotes, model.Quote{ID: "q-x", ProjectID: "p-2", LineItemID: "li-1", Status: model.QuoteAccepted})
	require.NoError(t, src.Save("p-1", snap))

	got, err := src.Load(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Len(t, got.Expenses, 2)
	assert.Len(t, got.Quotes, 1)
}

func TestCSVSource_BadFileNamesFile(t *testing.T) {
	dir := t.TempDir()
	projectDir := filepath.Join(dir, "projects", "p-1")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, QuotesFile), []byte(QuoteHeader+"\nonly,three,fields\n"), 0o644))

	_, err := NewCSVSource(dir).Load(context.Background(), "p-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), QuotesFile)
}

func TestOpen_UnknownKind(t *testing.T) {
	_, err := Open(context.Background(), "postgres", t.TempDir(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestOpen_DefaultsToCSV(t *testing.T) {
	src, err := Open(context.Background(), "", t.TempDir(), "")
	require.NoError(t, err)
	defer src.Close()
	_, ok := src.(*CSVSource)
	assert.True(t, ok)
}
