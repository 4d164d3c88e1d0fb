package dashboard

import (
	"finboard/internal/core"
	"finboard/internal/datekey"
	"finboard/internal/recurrence"
	"finboard/internal/report"
)

// CashflowSummary totals a report range. Net subtracts projected recurring
// bills that were not already posted.
type CashflowSummary struct {
	ActualIncome       float64 `json:"actualIncome"`
	ActualSpending     float64 `json:"actualSpending"`
	ProjectedRecurring float64 `json:"projectedRecurring"`
	Net                float64 `json:"net"`
}

// Report is the range view.
type Report struct {
	Range         datekey.Range           `json:"range"`
	TopSpending   []report.CategoryRow    `json:"topSpending"`
	TopIncome     []report.CategoryRow    `json:"topIncome"`
	IncomeTotal   float64                 `json:"incomeTotal"`
	SpendingTotal float64                 `json:"spendingTotal"`
	Summary       CashflowSummary         `json:"summary"`
	Projected     []recurrence.Occurrence `json:"projected"`
	Chart         SeriesBundle            `json:"chart"`
}

// BuildReport assembles the report for rng. It returns false when rng is
// missing a bound or ends before it starts.
func BuildReport(s Snapshot, rng datekey.Range, opts Options) (Report, bool) {
	if !rng.Valid() {
		return Report{}, false
	}
	opts = opts.withDefaults()
	engine := report.New(opts.Classifier)
	cats := core.IndexCategories(s.Categories)

	inRange := report.FilterRange(s.Transactions, rng)
	proj := engine.ProjectedCashflow(inRange, s.Bills, cats, rng)

	return Report{
		Range:         rng,
		TopSpending:   engine.TopCategories(inRange, cats, report.Spending, opts.ReportTopN),
		TopIncome:     engine.TopCategories(inRange, cats, report.Income, opts.ReportTopN),
		IncomeTotal:   proj.ActualIncome,
		SpendingTotal: proj.ActualSpending,
		Summary: CashflowSummary{
			ActualIncome:       proj.ActualIncome,
			ActualSpending:     proj.ActualSpending,
			ProjectedRecurring: proj.ProjectedRecurring,
			Net:                proj.Net,
		},
		Projected: proj.Occurrences,
		Chart:     reportChart(proj.Buckets),
	}, true
}

func reportChart(buckets []report.Bucket) SeriesBundle {
	n := len(buckets)
	labels := make([]string, n)
	income := make([]float64, n)
	spending := make([]float64, n)
	recurring := make([]float64, n)
	net := make([]float64, n)
	for i, b := range buckets {
		labels[i] = b.Date.Label()
		income[i] = b.Income
		spending[i] = b.Expense
		recurring[i] = b.Projected
		net[i] = b.Net
	}
	return SeriesBundle{
		Labels: labels,
		Series: []Series{
			{Name: SeriesIncome, Values: income},
			{Name: SeriesSpending, Values: spending},
			{Name: SeriesRecurring, Values: recurring},
			{Name: SeriesNet, Values: net},
		},
	}
}
