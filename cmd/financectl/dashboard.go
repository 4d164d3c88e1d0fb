package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finboard/internal/core"
	"finboard/internal/dashboard"
	"finboard/internal/datekey"
	"finboard/internal/watch"
)

func dashboardCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		today  string
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard KPIs, upcoming bills and recent transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := dayFlag("today", today)
			if err != nil {
				return err
			}

			snap, err := watch.LoadSnapshot(cmd.Context(), a.backend.Repositories)
			if err != nil {
				return err
			}
			d := dashboard.BuildDashboard(snap, day, a.opts)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, d)
			}

			cats := core.IndexCategories(snap.Categories)
			fmt.Fprintf(out, "Dashboard for %s\n", d.Today)
			tw := newTable(out)
			fmt.Fprintf(tw, "Income\t%s\n", core.FormatAmount(d.IncomeTotal))
			fmt.Fprintf(tw, "Expenses\t%s\n", core.FormatAmount(d.ExpenseTotal))
			fmt.Fprintf(tw, "Net balance\t%s\n", core.FormatAmount(d.NetBalance))
			fmt.Fprintf(tw, "Upcoming bills\t%s\n", core.FormatAmount(d.UpcomingBillsTotal))
			tw.Flush()

			heading(out, "Upcoming bills")
			tw = newTable(out)
			for _, b := range d.UpcomingBills {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", b.NextDueDate, b.Name, core.FormatAmount(b.Amount))
			}
			tw.Flush()

			writeRanking(out, "Top spending", d.TopSpending)

			heading(out, "Recent transactions")
			tw = newTable(out)
			for _, t := range d.RecentTransactions {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Date, cats.Name(t.CategoryID, "Unknown"), core.FormatAmount(t.Amount), t.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dashboard as JSON")
	cmd.Flags().StringVar(&today, "today", "", "day to build the dashboard for (default: today)")
	return cmd
}

// dayFlag parses an optional day flag, defaulting to today.
func dayFlag(name, value string) (datekey.Day, error) {
	if value == "" {
		return datekey.Today(), nil
	}
	d := datekey.Parse(value)
	if !d.Valid() {
		return datekey.Day{}, fmt.Errorf("invalid --%s %q", name, value)
	}
	return d, nil
}

// rangeFlags resolves --start/--end, defaulting to the current month when
// both are empty.
func rangeFlags(start, end string) (datekey.Range, error) {
	if start == "" && end == "" {
		return datekey.ThisMonth(datekey.Today()), nil
	}
	rng := datekey.ParseRange(start, end)
	if !rng.Valid() {
		return datekey.Range{}, fmt.Errorf("invalid range --start %q --end %q", start, end)
	}
	return rng, nil
}
