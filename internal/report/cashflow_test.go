package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
	"finboard/internal/datekey"
	"finboard/internal/recurrence"
)

func rentBill() core.RecurringBill {
	return core.RecurringBill{
		ID: "rb_2002", CategoryID: "cat_rent", Name: "Rent", Amount: 2100,
		Frequency: core.Monthly, StartDate: "2025-01-01", NextDueDate: "2026-02-01", Active: true,
	}
}

func TestCashflowNewestFirstAndZeroFilled(t *testing.T) {
	rng := datekey.ParseRange("2026-01-28", "2026-02-01")
	got := engine().Cashflow(fixtureTransactions(), fixtureCategories(), rng)

	require.Len(t, got, 5)
	assert.Equal(t, "2026-02-01", got[0].Date.String())
	assert.Equal(t, "2026-01-28", got[4].Date.String())

	assert.InDelta(t, 18.5, got[0].Expense, 1e-9)
	assert.InDelta(t, 1250, got[2].Income, 1e-9)
	assert.InDelta(t, 2100, got[4].Expense, 1e-9)
	assert.Zero(t, got[1].Income)
	assert.Zero(t, got[1].Expense)

	for _, b := range got {
		assert.Zero(t, b.Projected)
		assert.InDelta(t, b.Income-b.Expense, b.Net, 1e-9)
	}

	chrono := Chronological(got)
	assert.Equal(t, "2026-01-28", chrono[0].Date.String())
	assert.Equal(t, "2026-02-01", chrono[4].Date.String())
	assert.Equal(t, "2026-02-01", got[0].Date.String(), "input left untouched")
}

func TestProjectedCashflowDeduplicatesPostedBill(t *testing.T) {
	txs := []core.Transaction{
		{CategoryID: "cat_rent", Amount: 2100, Date: "2026-02-01", IsRecurringInstance: true},
		{CategoryID: "cat_paycheck", Amount: 1250, Date: "2026-02-13"},
	}
	rng := datekey.ParseRange("2026-02-01", "2026-02-28")
	got := engine().ProjectedCashflow(txs, []core.RecurringBill{rentBill()}, fixtureCategories(), rng)

	assert.Empty(t, got.Occurrences)
	assert.InDelta(t, 0, got.ProjectedRecurring, 1e-9)
	assert.InDelta(t, 1250, got.ActualIncome, 1e-9)
	assert.InDelta(t, 2100, got.ActualSpending, 1e-9)
	assert.InDelta(t, 1250-2100, got.Net, 1e-9)

	require.Len(t, got.Buckets, 28)
	assert.Equal(t, "2026-02-01", got.Buckets[0].Date.String())
	assert.InDelta(t, 2100, got.Buckets[0].Expense, 1e-9)
	assert.Zero(t, got.Buckets[0].Projected)
}

func TestProjectedCashflowWithoutPostedInstance(t *testing.T) {
	rng := datekey.ParseRange("2026-02-01", "2026-02-28")
	bills := []core.RecurringBill{
		rentBill(),
		{ID: "rb_2001", CategoryID: "cat_utilities", Name: "Electric", Amount: 160,
			Frequency: core.Monthly, NextDueDate: "2026-02-10", Active: true},
	}
	got := engine().ProjectedCashflow(fixtureTransactions(), bills, fixtureCategories(), rng)

	require.Len(t, got.Occurrences, 2)
	assert.InDelta(t, 2260, got.ProjectedRecurring, 1e-9)
	assert.InDelta(t, 0, got.ActualIncome, 1e-9)
	assert.InDelta(t, 18.5, got.ActualSpending, 1e-9)
	assert.InDelta(t, -18.5-2260, got.Net, 1e-9)

	assert.InDelta(t, 2100, got.Buckets[0].Projected, 1e-9)
	assert.InDelta(t, 160, got.Buckets[9].Projected, 1e-9)

	var sumNet float64
	for _, b := range got.Buckets {
		assert.InDelta(t, b.Income-b.Expense-b.Projected, b.Net, 1e-9)
		sumNet += b.Net
	}
	assert.InDelta(t, got.Net, sumNet, 1e-9)
}

func TestProjectedCashflowInvalidRange(t *testing.T) {
	got := engine().ProjectedCashflow(fixtureTransactions(), []core.RecurringBill{rentBill()}, fixtureCategories(), datekey.Range{})
	assert.Empty(t, got.Buckets)
	assert.Empty(t, got.Occurrences)
	assert.Zero(t, got.Net)
}

func TestDedupSuppressesExactlyOnce(t *testing.T) {
	day := datekey.Parse("2026-02-01")
	occ := func(bill string) recurrence.Occurrence {
		return recurrence.Occurrence{BillID: bill, CategoryID: "cat_rent", Date: day, Amount: 100}
	}
	posted := core.Transaction{CategoryID: "cat_rent", Date: "2026-02-01", IsRecurringInstance: true}

	tests := []struct {
		name string
		occs []recurrence.Occurrence
		txs  []core.Transaction
		want []string
	}{
		{
			name: "one posted suppresses one",
			occs: []recurrence.Occurrence{occ("a")},
			txs:  []core.Transaction{posted},
			want: []string{},
		},
		{
			name: "one posted leaves the second occurrence",
			occs: []recurrence.Occurrence{occ("a"), occ("b")},
			txs:  []core.Transaction{posted},
			want: []string{"b"},
		},
		{
			name: "two posted never suppress more than exists",
			occs: []recurrence.Occurrence{occ("a")},
			txs:  []core.Transaction{posted, posted},
			want: []string{},
		},
		{
			name: "plain transaction does not suppress",
			occs: []recurrence.Occurrence{occ("a")},
			txs:  []core.Transaction{{CategoryID: "cat_rent", Date: "2026-02-01"}},
			want: []string{"a"},
		},
		{
			name: "different category does not suppress",
			occs: []recurrence.Occurrence{occ("a")},
			txs:  []core.Transaction{{CategoryID: "cat_gas", Date: "2026-02-01", IsRecurringInstance: true}},
			want: []string{"a"},
		},
		{
			name: "different day does not suppress",
			occs: []recurrence.Occurrence{occ("a")},
			txs:  []core.Transaction{{CategoryID: "cat_rent", Date: "2026-02-02", IsRecurringInstance: true}},
			want: []string{"a"},
		},
		{
			name: "alternate date format still matches",
			occs: []recurrence.Occurrence{occ("a")},
			txs:  []core.Transaction{{CategoryID: "cat_rent", Date: "02/01/2026", IsRecurringInstance: true}},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedup(tt.occs, tt.txs)
			ids := []string{}
			for _, o := range got {
				ids = append(ids, o.BillID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
