package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/dashboard"
	"finboard/internal/datekey"
	"finboard/internal/store/memory"
)

func fixtureReport(t *testing.T) dashboard.Report {
	t.Helper()
	types, cats, txs, bills := memory.Fixtures()
	snap := dashboard.Snapshot{Categories: cats, CategoryTypes: types, Transactions: txs, Bills: bills}
	rep, ok := dashboard.BuildReport(snap, datekey.MonthOf(2026, 1), dashboard.DefaultOptions())
	require.True(t, ok)
	return rep
}

func TestRowsLayout(t *testing.T) {
	rep := fixtureReport(t)
	rows := Rows(rep)

	assert.Equal(t, []any{"Report", "2026-01-01", "2026-01-31"}, rows[0])
	assert.Equal(t, []any{"Net", rep.Summary.Net}, rows[4])
	assert.Empty(t, rows[5])
	assert.Equal(t, []any{"Day", dashboard.SeriesIncome, dashboard.SeriesSpending, dashboard.SeriesRecurring, dashboard.SeriesNet}, rows[6])

	days := rows[7 : 7+31]
	assert.Equal(t, "2026-01-01", days[0][0])
	assert.Equal(t, "2026-01-31", days[30][0])
	for _, row := range days {
		assert.Len(t, row, 5)
	}

	// 2026-01-30 carries the paycheck.
	assert.Equal(t, "2026-01-30", days[29][0])
	assert.InDelta(t, 1250, days[29][1].(float64), 1e-9)

	rest := rows[7+31:]
	assert.Empty(t, rest[0])
	assert.Equal(t, []any{"Top spending", "Amount"}, rest[1])
	assert.Len(t, rest, 1+1+len(rep.TopSpending)+1+1+len(rep.TopIncome))
	assert.Equal(t, []any{"Top income", "Amount"}, rest[2+len(rep.TopSpending)+1])
}

func TestRowsEmptyReport(t *testing.T) {
	rows := Rows(dashboard.Report{})
	assert.Equal(t, []any{"Report", "", ""}, rows[0])
	assert.Equal(t, []any{"Top income", "Amount"}, rows[len(rows)-1])
}

func TestNewRequiresConfig(t *testing.T) {
	ctx := context.Background()
	_, err := New(ctx, Config{SheetName: "Report", CredentialsJSON: "{}"})
	assert.ErrorContains(t, err, "spreadsheet id")

	_, err = New(ctx, Config{SpreadsheetID: "x", CredentialsJSON: "{}"})
	assert.ErrorContains(t, err, "sheet name")

	_, err = New(ctx, Config{SpreadsheetID: "x", SheetName: "Report"})
	assert.ErrorContains(t, err, "missing service account credentials")

	_, err = New(ctx, Config{SpreadsheetID: "x", SheetName: "Report", CredentialsFile: "/nonexistent/sa.json"})
	assert.ErrorContains(t, err, "read service account file")
}

func TestExportWithoutService(t *testing.T) {
	var e Exporter
	assert.Error(t, e.Export(context.Background(), dashboard.Report{}))
}

func TestA1RangeQuotesSheetName(t *testing.T) {
	tests := map[string]string{
		"Report":      "'Report'!A:Z",
		"My Report":   "'My Report'!A:Z",
		"Bob's Sheet": "'Bob''s Sheet'!A:Z",
	}
	for in, want := range tests {
		assert.Equal(t, want, a1Range(in, "A:Z"))
	}
}
