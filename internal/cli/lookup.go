package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sitetrust/internal/domain"
)

func newLookupCmd(a *app) *cobra.Command {
	var noLog bool

	cmd := &cobra.Command{
		Use:   "lookup <url>",
		Short: "Resolve the trust rating for a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name := domain.Registrable(args[0])
			if !domain.Valid(name) {
				return domain.NewValidationError("domain", "invalid domain name")
			}

			resolved, err := a.newResolver().Resolve(ctx, name)
			if err != nil {
				return err
			}
			if resolved == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no rating available\n", name)
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Domain:  %s\n", resolved.Domain)
			fmt.Fprintf(out, "Rating:  %.1f/10", resolved.Rating)
			if resolved.TotalVotes > 0 {
				fmt.Fprintf(out, " (%d votes)", resolved.TotalVotes)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Score:   %.0f/100 (%s)\n", resolved.Score.Score, resolved.Score.Grade)
			fmt.Fprintf(out, "Label:   %s %s\n", resolved.Badge, resolved.Score.Label)
			fmt.Fprintf(out, "Sources: %s\n", strings.Join(resolved.Sources, ", "))

			if noLog {
				return nil
			}
			eng, err := a.engagements(ctx)
			if err != nil {
				return err
			}
			return eng.Log(ctx, resolved.Domain, resolved.Rating)
		},
	}

	cmd.Flags().BoolVar(&noLog, "no-log", false, "skip recording this lookup in the engagement history")
	return cmd
}
