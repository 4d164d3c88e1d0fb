package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finboard/internal/core"
	"finboard/internal/recurrence"
)

func projectCmd(a *app) *cobra.Command {
	var billID, start, end string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "List the due dates of a recurring bill within a range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng, err := rangeFlags(start, end)
			if err != nil {
				return err
			}
			bill, err := a.backend.Repositories.Bills.Get(cmd.Context(), billID)
			if err != nil {
				return fmt.Errorf("bill %s: %w", billID, err)
			}

			occs := recurrence.Project(bill, rng)
			out := cmd.OutOrStdout()
			if !bill.Active {
				fmt.Fprintf(out, "%s is inactive and has no projected occurrences\n", bill.Name)
				return nil
			}

			tw := newTable(out)
			for _, o := range occs {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", o.Date, o.Name, core.FormatAmount(o.Amount))
			}
			fmt.Fprintf(tw, "Total\t%d occurrences\t%s\n", len(occs), core.FormatAmount(recurrence.Total(occs)))
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&billID, "bill", "", "recurring bill id")
	cmd.Flags().StringVar(&start, "start", "", "first day of the range")
	cmd.Flags().StringVar(&end, "end", "", "last day of the range")
	_ = cmd.MarkFlagRequired("bill")
	cmd.MarkFlagsRequiredTogether("start", "end")
	return cmd
}
