package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sitetrust/internal/domain"
	"sitetrust/internal/mockdata"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [domain]",
		Short: "Show aggregate rating statistics, platform-wide or for one domain",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runDomainStats(cmd, a, args[0])
			}

			stats, err := a.remote().Stats(cmd.Context())
			if err != nil {
				if !errors.Is(err, domain.ErrRemoteUnavailable) {
					return err
				}
				stats = mockdata.Stats()
				fmt.Fprintln(cmd.OutOrStdout(), "Backend unreachable, showing bundled data.")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Domains:        %d\n", stats.TotalDomains)
			fmt.Fprintf(out, "Votes:          %d\n", stats.TotalVotes)
			fmt.Fprintf(out, "Voters:         %d\n", stats.TotalUsers)
			fmt.Fprintf(out, "Average rating: %.1f/10\n", stats.AverageRating)
			return nil
		},
	}
}

func runDomainStats(cmd *cobra.Command, a *app, name string) error {
	st, err := a.remote().DomainStats(cmd.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: no votes recorded\n", domain.Normalize(name))
			return nil
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Domain:     %s\n", st.Domain)
	fmt.Fprintf(out, "Rating:     %.1f/10 from %d votes\n", st.Rating, st.TotalVotes)
	fmt.Fprintf(out, "First vote: %s\n", st.FirstVoteAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "Last vote:  %s\n", st.LastVoteAt.Format("2006-01-02 15:04"))
	return nil
}
