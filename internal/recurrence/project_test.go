package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
	"finboard/internal/datekey"
)

func rentBill() core.RecurringBill {
	return core.RecurringBill{
		ID:          "rb_2002",
		CategoryID:  "cat_rent",
		Name:        "Rent",
		Amount:      2100,
		Frequency:   core.Monthly,
		StartDate:   "2025-01-01",
		NextDueDate: "2026-02-01",
		Active:      true,
	}
}

func days(occs []Occurrence) []string {
	out := make([]string, 0, len(occs))
	for _, o := range occs {
		out = append(out, o.Date.String())
	}
	return out
}

func TestProjectMonthly(t *testing.T) {
	bill := rentBill()

	feb := Project(bill, datekey.ParseRange("2026-02-01", "2026-02-28"))
	require.Len(t, feb, 1)
	assert.Equal(t, "2026-02-01", feb[0].Date.String())
	assert.InDelta(t, 2100, feb[0].Amount, 1e-9)
	assert.Equal(t, "rb_2002", feb[0].BillID)
	assert.Equal(t, "cat_rent", feb[0].CategoryID)
	assert.Equal(t, "Rent", feb[0].Name)

	mar := Project(bill, datekey.ParseRange("2026-03-01", "2026-03-31"))
	assert.Equal(t, []string{"2026-03-01"}, days(mar))
}

func TestProjectFrequencies(t *testing.T) {
	tests := []struct {
		name string
		freq core.Frequency
		next string
		from string
		to   string
		want []string
	}{
		{
			name: "weekly",
			freq: core.Weekly, next: "2026-01-02",
			from: "2026-01-01", to: "2026-01-31",
			want: []string{"2026-01-02", "2026-01-09", "2026-01-16", "2026-01-23", "2026-01-30"},
		},
		{
			name: "biweekly skips ahead to range",
			freq: core.Biweekly, next: "2025-12-01",
			from: "2026-01-01", to: "2026-01-31",
			want: []string{"2026-01-12", "2026-01-26"},
		},
		{
			name: "monthly rollover compounds",
			freq: core.Monthly, next: "2026-01-31",
			from: "2026-01-01", to: "2026-05-31",
			want: []string{"2026-01-31", "2026-03-03", "2026-04-03", "2026-05-03"},
		},
		{
			name: "due after range",
			freq: core.Monthly, next: "2026-06-01",
			from: "2026-01-01", to: "2026-05-31",
			want: []string{},
		},
		{
			name: "alternate next due format",
			freq: core.Monthly, next: "02/01/2026",
			from: "2026-02-01", to: "2026-02-28",
			want: []string{"2026-02-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill := rentBill()
			bill.Frequency = tt.freq
			bill.NextDueDate = tt.next
			got := Project(bill, datekey.ParseRange(tt.from, tt.to))
			assert.Equal(t, tt.want, days(got))
		})
	}
}

func TestProjectEmpty(t *testing.T) {
	rng := datekey.ParseRange("2026-02-01", "2026-02-28")

	inactive := rentBill()
	inactive.Active = false
	assert.Empty(t, Project(inactive, rng))

	unknown := rentBill()
	unknown.Frequency = "yearly"
	assert.Empty(t, Project(unknown, rng))

	badDate := rentBill()
	badDate.NextDueDate = "someday"
	assert.Empty(t, Project(badDate, rng))

	assert.Empty(t, Project(rentBill(), datekey.ParseRange("2026-02-28", "2026-02-01")))
	assert.Empty(t, Project(rentBill(), datekey.Range{}))
}

func TestProjectIsRestartable(t *testing.T) {
	bill := rentBill()
	bill.Frequency = core.Weekly
	bill.NextDueDate = "2026-01-03"
	rng := datekey.ParseRange("2026-01-01", "2026-03-15")

	first := Project(bill, rng)
	second := Project(bill, rng)
	assert.Equal(t, first, second)
	assert.Equal(t, "2026-01-03", bill.NextDueDate)

	for _, split := range []string{"2026-01-01", "2026-01-09", "2026-01-10", "2026-02-28", "2026-03-14"} {
		t.Run(split, func(t *testing.T) {
			left := datekey.NewRange(rng.Start, datekey.Parse(split))
			right := datekey.NewRange(datekey.Parse(split).AddDays(1), rng.End)
			joined := append(Project(bill, left), Project(bill, right)...)
			assert.Equal(t, days(first), days(joined))
		})
	}
}

func TestProjectAll(t *testing.T) {
	electric := core.RecurringBill{
		ID: "rb_2001", CategoryID: "cat_utilities", Name: "Electric",
		Amount: 160, Frequency: core.Monthly, NextDueDate: "2026-02-10", Active: true,
	}
	occs := ProjectAll([]core.RecurringBill{electric, rentBill()}, datekey.ParseRange("2026-02-01", "2026-02-28"))
	require.Len(t, occs, 2)
	assert.Equal(t, "rb_2001", occs[0].BillID)
	assert.Equal(t, "rb_2002", occs[1].BillID)
	assert.InDelta(t, 2260, Total(occs), 1e-9)
}

func TestAdvance(t *testing.T) {
	bill := rentBill()
	bill.Frequency = core.Weekly
	bill.NextDueDate = "2026-01-01"

	due, next := Advance(bill, datekey.Parse("2026-01-15"))
	assert.Equal(t, []string{"2026-01-01", "2026-01-08", "2026-01-15"}, days(due))
	assert.Equal(t, "2026-01-22", next.String())

	due, next = Advance(bill, datekey.Parse("2025-12-31"))
	assert.Empty(t, due)
	assert.Equal(t, "2026-01-01", next.String())

	bill.Active = false
	due, next = Advance(bill, datekey.Parse("2026-01-15"))
	assert.Empty(t, due)
	assert.Equal(t, "2026-01-01", next.String())
}

type stuckStepper struct{}

func (stuckStepper) Step(d datekey.Day) datekey.Day { return d }

func TestStepperRegistry(t *testing.T) {
	s, err := GetStepper(core.Monthly)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", s.Step(datekey.Parse("2026-02-01")).String())

	_, err = GetStepper("fortnightly")
	assert.Error(t, err)

	RegisterStepper("stuck", stuckStepper{})
	t.Cleanup(func() { delete(steppers, "stuck") })

	bill := rentBill()
	bill.Frequency = "stuck"
	occs := Project(bill, datekey.ParseRange("2026-02-01", "2026-02-28"))
	assert.Len(t, occs, 1)
}
