package commands_test

import (
	"encoding/csv"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/linecost/internal/export"
	"github.com/cleared-dev/linecost/internal/model"
	"github.com/cleared-dev/linecost/internal/store"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "linecost-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "linecost")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/linecost")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runLinecost(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// seedProject initializes a repo and writes a small project into it.
func seedProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runLinecost(t, "init", dir, "--name", "Harbor St Remodel", "--project", "harbor")
	require.NoError(t, err, out)

	snap := store.Snapshot{
		LineItems: []model.EstimateLineItem{
			{ID: "li-1", ProjectID: "harbor", Category: model.CategorySubcontractor, Description: "Framing", EstimatedPrice: dec("1500"), EstimatedCost: dec("1000")},
			{ID: "li-2", ProjectID: "harbor", Category: model.CategoryLaborInternal, Description: "Supervision", EstimatedPrice: dec("800"), EstimatedCost: dec("500")},
			{ID: "li-3", ProjectID: "harbor", Category: model.CategoryMaterials, Description: "Lumber", EstimatedPrice: dec("500"), EstimatedCost: dec("400")},
		},
		Quotes: []model.Quote{
			{ID: "q-1", ProjectID: "harbor", LineItemID: "li-1", QuotedBy: "Acme Framing", Total: dec("1200"), Status: model.QuoteAccepted},
			{ID: "q-2", ProjectID: "harbor", LineItemID: "li-1", QuotedBy: "Budget Framing", Total: dec("900"), Status: model.QuoteRejected},
		},
		Expenses: []model.Expense{
			{ID: "e-1", ProjectID: "harbor", LineItemID: "li-1", Amount: dec("600")},
			{ID: "e-2", ProjectID: "harbor", LineItemID: "li-2", Amount: dec("480")},
			{ID: "e-3", ProjectID: "harbor", Amount: dec("400")},
		},
	}
	require.NoError(t, store.NewCSVSource(dir).Save("harbor", snap))
	return dir
}

func readExport(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runLinecost(t, "init", dir, "--name", "Test Project", "--project", "p1")
	require.NoError(t, err)

	for _, p := range []string{
		"linecost.yaml",
		".gitignore",
		"exports",
		filepath.Join("projects", "p1", store.LineItemsFile),
		filepath.Join("projects", "p1", store.QuotesFile),
		filepath.Join("projects", "p1", store.ExpensesFile),
	} {
		_, err := os.Stat(filepath.Join(dir, p))
		require.NoError(t, err, "%s should exist", p)
	}

	data, err := os.ReadFile(filepath.Join(dir, "linecost.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Test Project")
	assert.Contains(t, string(data), "id: p1")
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runLinecost(t, "init", t.TempDir())
	require.Error(t, err, "init without --name should fail")
}

func TestInit_RefusesExistingRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := runLinecost(t, "init", dir, "--name", "First")
	require.NoError(t, err)

	out, err := runLinecost(t, "init", dir, "--name", "Second")
	require.Error(t, err)
	assert.Contains(t, out, "already exists")
}

func TestReconcile_PrintsReport(t *testing.T) {
	dir := seedProject(t)

	out, err := runLinecost(t, "reconcile", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Harbor St Remodel")
	assert.Contains(t, out, "Framing")
	assert.Contains(t, out, "$400.00", "unallocated expenses")
}

func TestReconcile_LogLevelFromConfig(t *testing.T) {
	dir := seedProject(t)
	path := filepath.Join(dir, "linecost.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "level: info")
	data = []byte(strings.Replace(string(data), "level: info", "level: debug", 1))
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := runLinecost(t, "reconcile", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Loaded CSV snapshot")

	out, err = runLinecost(t, "reconcile", "--repo", dir, "--log-level", "warn")
	require.NoError(t, err, out)
	assert.NotContains(t, out, "Loaded CSV snapshot")
}

func TestReconcile_EmptyProject(t *testing.T) {
	dir := t.TempDir()
	_, err := runLinecost(t, "init", dir, "--name", "Empty", "--project", "empty")
	require.NoError(t, err)

	out, err := runLinecost(t, "reconcile", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "No line items to show.")
}

func TestReconcile_BadSort(t *testing.T) {
	dir := seedProject(t)
	out, err := runLinecost(t, "reconcile", "--repo", dir, "--sort", "alphabetical")
	require.Error(t, err)
	assert.Contains(t, out, "invalid --sort")
}

func TestReconcile_UnknownSource(t *testing.T) {
	dir := seedProject(t)
	out, err := runLinecost(t, "reconcile", "--repo", dir, "--source", "postgres")
	require.Error(t, err)
	assert.Contains(t, out, "unknown data source")
}

func TestExport_WritesRows(t *testing.T) {
	dir := seedProject(t)

	out, err := runLinecost(t, "export", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Exported 3 line items")

	records := readExport(t, filepath.Join(dir, "exports", "harbor-reconciliation.csv"))
	require.Len(t, records, 4)
	assert.Equal(t, export.Header, strings.Join(records[0], ","))

	first := records[1]
	assert.Equal(t, "li-1", first[0])
	assert.Equal(t, "1200.00", first[6])  // quoted_cost
	assert.Equal(t, "600.00", first[7])   // allocated_amount
	assert.Equal(t, "600.00", first[9])   // remaining_to_allocate
	assert.Equal(t, "full", first[12])    // quote_status
	assert.Equal(t, "partial", first[13]) // allocation_status
}

func TestImportSQLite_ThenReconcile(t *testing.T) {
	dir := seedProject(t)
	db := filepath.Join(dir, "linecost.db")

	out, err := runLinecost(t, "import-sqlite", "--repo", dir, "--db", db)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Imported 3 line items, 2 quotes, 3 expenses")

	csvOut := filepath.Join(t.TempDir(), "csv.csv")
	sqliteOut := filepath.Join(t.TempDir(), "sqlite.csv")
	out, err = runLinecost(t, "export", "--repo", dir, "--out", csvOut)
	require.NoError(t, err, out)
	out, err = runLinecost(t, "export", "--repo", dir, "--source", "sqlite", "--out", sqliteOut)
	require.NoError(t, err, out)

	assert.Equal(t, readExport(t, csvOut), readExport(t, sqliteOut))
}
