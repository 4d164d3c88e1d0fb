package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/dashboard"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("SEED_FIXTURES", "true")
	t.Setenv("AMQP_URL", "")
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReportJSON(t *testing.T) {
	out, err := run(t, "report", "--start", "2026-01-01", "--end", "01/31/2026", "--json")
	require.NoError(t, err)

	var rep dashboard.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "2026-01-01", rep.Range.Start.String())
	assert.Equal(t, "2026-01-31", rep.Range.End.String())
	assert.InDelta(t, 1250, rep.IncomeTotal, 1e-9)
	assert.Equal(t, 31, rep.Chart.Len())
}

func TestReportText(t *testing.T) {
	out, err := run(t, "report", "--start", "2026-02-01", "--end", "2026-02-28")
	require.NoError(t, err)
	assert.Contains(t, out, "Report 2026-02-01 to 2026-02-28")
	assert.Contains(t, out, "Projected bills")
	assert.Contains(t, out, "Electric")
}

func TestReportRejectsBadRange(t *testing.T) {
	_, err := run(t, "report", "--start", "2026-02-10", "--end", "2026-02-01")
	assert.Error(t, err)

	_, err = run(t, "report", "--start", "2026-02-10")
	assert.Error(t, err)
}

func TestDashboardJSON(t *testing.T) {
	out, err := run(t, "dashboard", "--today", "2026-02-01", "--json")
	require.NoError(t, err)

	var d dashboard.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, "2026-02-01", d.Today.String())
	assert.InDelta(t, 1250, d.IncomeTotal, 1e-9)
}

func TestProject(t *testing.T) {
	out, err := run(t, "project", "--bill", "rb_2001", "--start", "2026-02-01", "--end", "2026-04-30")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-02-10")
	assert.Contains(t, out, "2026-03-10")
	assert.Contains(t, out, "2026-04-10")
	assert.Contains(t, out, "480.00")

	_, err = run(t, "project", "--bill", "rb_missing", "--start", "2026-02-01", "--end", "2026-02-28")
	assert.Error(t, err)

	_, err = run(t, "project", "--start", "2026-02-01", "--end", "2026-02-28")
	assert.Error(t, err, "--bill is required")
}

func TestPostDue(t *testing.T) {
	out, err := run(t, "post-due", "--today", "2026-02-15")
	require.NoError(t, err)
	assert.Contains(t, out, "Checked 2 active bills, posted 2 transactions")
	assert.Contains(t, out, "rb_2001 next due 2026-03-10")
	assert.Contains(t, out, "rb_2002 next due 2026-03-01")

	_, err = run(t, "post-due", "--today", "someday")
	assert.Error(t, err)
}
