package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finboard/internal/core"
	"finboard/internal/dashboard"
	"finboard/internal/watch"
)

func reportCmd(a *app) *cobra.Command {
	var (
		start, end string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the income, spending and projected cashflow for a range",
		Example: `  financectl report --start 2026-01-01 --end 2026-01-31
  financectl report --start 01/01/2026 --end 01/31/2026 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng, err := rangeFlags(start, end)
			if err != nil {
				return err
			}

			snap, err := watch.LoadSnapshot(cmd.Context(), a.backend.Repositories)
			if err != nil {
				return err
			}
			rep, ok := dashboard.BuildReport(snap, rng, a.opts)
			if !ok {
				return fmt.Errorf("invalid range %s..%s", rng.Start, rng.End)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, rep)
			}

			fmt.Fprintf(out, "Report %s to %s\n", rep.Range.Start, rep.Range.End)
			tw := newTable(out)
			fmt.Fprintf(tw, "Actual income\t%s\n", core.FormatAmount(rep.Summary.ActualIncome))
			fmt.Fprintf(tw, "Actual spending\t%s\n", core.FormatAmount(rep.Summary.ActualSpending))
			fmt.Fprintf(tw, "Projected recurring\t%s\n", core.FormatAmount(rep.Summary.ProjectedRecurring))
			fmt.Fprintf(tw, "Net\t%s\n", core.FormatAmount(rep.Summary.Net))
			tw.Flush()

			writeRanking(out, "Top spending", rep.TopSpending)
			writeRanking(out, "Top income", rep.TopIncome)

			heading(out, "Projected bills")
			tw = newTable(out)
			for _, o := range rep.Projected {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", o.Date, o.Name, core.FormatAmount(o.Amount))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first day of the range (default: first of this month)")
	cmd.Flags().StringVar(&end, "end", "", "last day of the range (default: end of this month)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.MarkFlagsRequiredTogether("start", "end")
	return cmd
}
