package sheets

import (
	"finboard/internal/dashboard"
	"finboard/internal/report"
)

// Rows lays a report out as sheet rows: a summary block, one row per day
// with the four chart series, then the spending and income rankings.
// Blocks are separated by an empty row.
func Rows(rep dashboard.Report) [][]any {
	rows := [][]any{
		{"Report", rep.Range.Start.String(), rep.Range.End.String()},
		{"Actual income", rep.Summary.ActualIncome},
		{"Actual spending", rep.Summary.ActualSpending},
		{"Projected recurring", rep.Summary.ProjectedRecurring},
		{"Net", rep.Summary.Net},
		{},
	}

	names := []string{dashboard.SeriesIncome, dashboard.SeriesSpending, dashboard.SeriesRecurring, dashboard.SeriesNet}
	header := []any{"Day"}
	series := make([][]float64, len(names))
	for i, name := range names {
		header = append(header, name)
		if s, ok := rep.Chart.Get(name); ok {
			series[i] = s.Values
		}
	}
	rows = append(rows, header)
	for i, day := range rep.Range.Days() {
		row := []any{day.String()}
		for _, values := range series {
			var v float64
			if i < len(values) {
				v = values[i]
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	rows = append(rows, []any{})
	rows = appendRanking(rows, "Top spending", rep.TopSpending)
	rows = append(rows, []any{})
	rows = appendRanking(rows, "Top income", rep.TopIncome)
	return rows
}

func appendRanking(rows [][]any, title string, ranked []report.CategoryRow) [][]any {
	rows = append(rows, []any{title, "Amount"})
	for _, r := range ranked {
		rows = append(rows, []any{r.CategoryName, r.Amount})
	}
	return rows
}
