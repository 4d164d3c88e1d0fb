// Package dashboard shapes aggregation results into the view models served
// to presentation layers: KPI tiles, ranked rows and aligned daily series.
package dashboard

// Series names used by the report chart.
const (
	SeriesIncome    = "Income (Actual)"
	SeriesSpending  = "Spending (Actual)"
	SeriesRecurring = "Recurring Bills (Projected)"
	SeriesNet       = "Net"
	SeriesTopSpend  = "Spending"
)

// Series is one named array of values parallel to a bundle's labels.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// SeriesBundle is a shared list of labels with parallel series.
type SeriesBundle struct {
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// Len is the number of labels.
func (b SeriesBundle) Len() int {
	return len(b.Labels)
}

// Aligned reports whether every series has exactly one value per label.
func (b SeriesBundle) Aligned() bool {
	for _, s := range b.Series {
		if len(s.Values) != len(b.Labels) {
			return false
		}
	}
	return true
}

// Get returns the series with the given name.
func (b SeriesBundle) Get(name string) (Series, bool) {
	for _, s := range b.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}
