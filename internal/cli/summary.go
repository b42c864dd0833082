package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Summarize the last week of recorded lookups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := a.engagements(ctx)
			if err != nil {
				return err
			}
			sum, err := eng.WeeklySummary(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if sum.Total == 0 {
				fmt.Fprintln(out, "No lookups recorded in the last 7 days.")
				return nil
			}
			fmt.Fprintf(out, "Lookups this week: %d\n", sum.Total)
			fmt.Fprintf(out, "Reliable sites:    %d (%d%%)\n", sum.Reliable, sum.ReliablePct)
			fmt.Fprintf(out, "Unreliable sites:  %d (%d%%)\n", sum.Unreliable, sum.UnreliablePct)
			if len(sum.TopDomains) > 0 {
				fmt.Fprintln(out, "Most visited:")
				for _, d := range sum.TopDomains {
					fmt.Fprintf(out, "  %s (%d)\n", d.Domain, d.Count)
				}
			}
			return nil
		},
	}
}
