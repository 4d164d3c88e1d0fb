package dashboard

import (
	"finboard/internal/classify"
	"finboard/internal/core"
)

// Options tunes the assembled views. Zero fields take the defaults below,
// except UpcomingWindowDays where 0 means bills due today only and a
// negative value takes the default.
type Options struct {
	Classifier         classify.Classifier
	UpcomingWindowDays int
	TopN               int
	CashflowDays       int
	RecentLimit        int
	ReportTopN         int
}

const (
	DefaultUpcomingWindowDays = 30
	DefaultTopN               = 5
	DefaultCashflowDays       = 14
	DefaultRecentLimit        = 10
	DefaultReportTopN         = 10
)

// DefaultOptions classifies by the income type id with the paycheck override.
func DefaultOptions() Options {
	return Options{
		Classifier:         classify.New(core.IncomeTypeID, "cat_paycheck"),
		UpcomingWindowDays: DefaultUpcomingWindowDays,
		TopN:               DefaultTopN,
		CashflowDays:       DefaultCashflowDays,
		RecentLimit:        DefaultRecentLimit,
		ReportTopN:         DefaultReportTopN,
	}
}

func (o Options) withDefaults() Options {
	if o.UpcomingWindowDays < 0 {
		o.UpcomingWindowDays = DefaultUpcomingWindowDays
	}
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.CashflowDays <= 0 {
		o.CashflowDays = DefaultCashflowDays
	}
	if o.RecentLimit <= 0 {
		o.RecentLimit = DefaultRecentLimit
	}
	if o.ReportTopN <= 0 {
		o.ReportTopN = DefaultReportTopN
	}
	return o
}
