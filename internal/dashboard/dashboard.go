package dashboard

import (
	"finboard/internal/core"
	"finboard/internal/datekey"
	"finboard/internal/report"
)

// Snapshot is one consistent read of every collection the views depend on.
type Snapshot struct {
	Categories    []core.Category      `json:"categories"`
	CategoryTypes []core.CategoryType  `json:"categoryTypes"`
	Transactions  []core.Transaction   `json:"transactions"`
	Bills         []core.RecurringBill `json:"bills"`
}

// Dashboard is the landing view. KPIs cover every transaction in the
// snapshot, not a selected range.
type Dashboard struct {
	Today              datekey.Day          `json:"today"`
	IncomeTotal        float64              `json:"incomeTotal"`
	ExpenseTotal       float64              `json:"expenseTotal"`
	NetBalance         float64              `json:"netBalance"`
	UpcomingBillsTotal float64              `json:"upcomingBillsTotal"`
	UpcomingBills      []core.RecurringBill `json:"upcomingBills"`
	TopSpending        []report.CategoryRow `json:"topSpending"`
	SpendingChart      SeriesBundle         `json:"spendingChart"`
	// Cashflow is newest-first; CashflowChart plots the same days in order.
	Cashflow           []report.Bucket    `json:"cashflow"`
	CashflowChart      SeriesBundle       `json:"cashflowChart"`
	RecentTransactions []core.Transaction `json:"recentTransactions"`
}

// BuildDashboard assembles the dashboard for today.
func BuildDashboard(s Snapshot, today datekey.Day, opts Options) Dashboard {
	opts = opts.withDefaults()
	engine := report.New(opts.Classifier)
	cats := core.IndexCategories(s.Categories)

	totals := engine.Totals(s.Transactions, cats)
	top := engine.TopCategories(s.Transactions, cats, report.Spending, opts.TopN)
	cashflow := engine.Cashflow(s.Transactions, cats, datekey.LastNDays(today, opts.CashflowDays))
	sorted := report.SortTransactions(s.Transactions)
	if len(sorted) > opts.RecentLimit {
		sorted = sorted[:opts.RecentLimit]
	}

	return Dashboard{
		Today:              today,
		IncomeTotal:        totals.Income,
		ExpenseTotal:       totals.Expense,
		NetBalance:         totals.Net,
		UpcomingBillsTotal: report.UpcomingBillsTotal(s.Bills, today, opts.UpcomingWindowDays),
		UpcomingBills:      report.UpcomingBills(s.Bills, today, opts.UpcomingWindowDays),
		TopSpending:        top,
		SpendingChart:      spendingChart(top),
		Cashflow:           cashflow,
		CashflowChart:      netChart(report.Chronological(cashflow)),
		RecentTransactions: sorted,
	}
}

func spendingChart(rows []report.CategoryRow) SeriesBundle {
	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, r := range rows {
		labels[i] = r.CategoryName
		values[i] = r.Amount
	}
	return SeriesBundle{
		Labels: labels,
		Series: []Series{{Name: SeriesTopSpend, Values: values}},
	}
}

func netChart(chrono []report.Bucket) SeriesBundle {
	labels := make([]string, len(chrono))
	values := make([]float64, len(chrono))
	for i, b := range chrono {
		labels[i] = b.Date.String()
		values[i] = b.Net
	}
	return SeriesBundle{
		Labels: labels,
		Series: []Series{{Name: SeriesNet, Values: values}},
	}
}
