package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"finboard/internal/core"
	"finboard/internal/services"
)

func postDueCmd(a *app) *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "post-due",
		Short: "Post a transaction for every recurring bill occurrence due by today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := dayFlag("today", today)
			if err != nil {
				return err
			}

			repos := a.backend.Repositories
			ledger := services.NewLedger(repos, a.backend.Publisher, a.cfg.CurrentUserID)
			res, err := services.NewRecurringPoster(repos.Bills, ledger).PostDue(cmd.Context(), day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checked %d active bills, posted %d transactions\n", res.Checked, len(res.Posted))
			tw := newTable(out)
			for _, t := range res.Posted {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Description, core.FormatAmount(t.Amount))
			}
			tw.Flush()

			ids := make([]string, 0, len(res.Advanced))
			for id := range res.Advanced {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintf(out, "%s next due %s\n", id, res.Advanced[id])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "day to post through (default: today)")
	return cmd
}
