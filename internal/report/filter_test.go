package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finboard/internal/core"
	"finboard/internal/datekey"
)

func ids(txs []core.Transaction) []string {
	out := []string{}
	for _, t := range txs {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterRangeInclusive(t *testing.T) {
	txs := append(fixtureTransactions(),
		core.Transaction{ID: "tx_bad", CategoryID: "cat_gas", Amount: 5, Date: "not a day"},
		core.Transaction{ID: "tx_alt", CategoryID: "cat_gas", Amount: 5, Date: "01/30/2026"},
	)

	got := FilterRange(txs, datekey.ParseRange("2026-01-28", "2026-01-30"))
	assert.Equal(t, []string{"tx_1003", "tx_1004", "tx_alt"}, ids(got))

	assert.Empty(t, FilterRange(txs, datekey.ParseRange("2026-01-30", "2026-01-28")))
	assert.Empty(t, FilterRange(txs, datekey.ParseRange("", "2026-01-28")))
}

func TestSortTransactions(t *testing.T) {
	txs := []core.Transaction{
		{ID: "old", Date: "2026-01-01", AuditFields: core.AuditFields{CreatedAt: "2026-01-01T10:00:00Z"}},
		{ID: "same-day-early", Date: "2026-02-01", AuditFields: core.AuditFields{CreatedAt: "2026-02-01T08:00:00Z"}},
		{ID: "bad", Date: "???"},
		{ID: "same-day-late", Date: "2026-02-01", AuditFields: core.AuditFields{CreatedAt: "2026-02-01T18:00:00Z"}},
		{ID: "mid", Date: "01/15/2026"},
	}

	got := SortTransactions(txs)
	assert.Equal(t, []string{"same-day-late", "same-day-early", "mid", "old", "bad"}, ids(got))
	assert.Equal(t, "old", txs[0].ID, "input left untouched")
}

func TestUpcomingBillsTotal(t *testing.T) {
	today := datekey.Parse("2026-01-20")
	bills := []core.RecurringBill{
		{ID: "today", Amount: 10, NextDueDate: "2026-01-20", Active: true},
		{ID: "cutoff", Amount: 20, NextDueDate: "2026-02-19", Active: true},
		{ID: "past-cutoff", Amount: 40, NextDueDate: "2026-02-20", Active: true},
		{ID: "overdue", Amount: 80, NextDueDate: "2026-01-19", Active: true},
		{ID: "inactive", Amount: 160, NextDueDate: "2026-01-25", Active: false},
		{ID: "bad-date", Amount: 320, NextDueDate: "soon", Active: true},
	}

	assert.InDelta(t, 30, UpcomingBillsTotal(bills, today, 30), 1e-9)
	assert.InDelta(t, 10, UpcomingBillsTotal(bills, today, 0), 1e-9)
	assert.Zero(t, UpcomingBillsTotal(bills, datekey.Day{}, 30))

	upcoming := UpcomingBills(bills, today, 30)
	if assert.Len(t, upcoming, 2) {
		assert.Equal(t, "today", upcoming[0].ID)
		assert.Equal(t, "cutoff", upcoming[1].ID)
	}
}
