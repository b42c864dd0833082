package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sitetrust/internal/domain"
	"sitetrust/internal/mbfc"
	"sitetrust/internal/mockdata"
)

func newTopCmd(a *app) *cobra.Command {
	var limit, minVotes int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the highest rated domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRanking(cmd, a, limit, minVotes,
				a.remote().TopRated, mockdata.TopRated)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of domains to list")
	cmd.Flags().IntVar(&minVotes, "min-votes", 5, "minimum vote count to qualify")
	return cmd
}

func newLowestCmd(a *app) *cobra.Command {
	var limit, minVotes int

	cmd := &cobra.Command{
		Use:   "lowest",
		Short: "List the lowest rated domains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRanking(cmd, a, limit, minVotes,
				a.remote().LowestRated, mockdata.LowestRated)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of domains to list")
	cmd.Flags().IntVar(&minVotes, "min-votes", 5, "minimum vote count to qualify")
	return cmd
}

// runRanking fetches a ranking from the backend, falling back to the
// bundled dataset when the backend is unreachable.
func runRanking(cmd *cobra.Command, a *app, limit, minVotes int,
	remote func(context.Context, int, int) ([]domain.DomainRating, error),
	offline func(int) []domain.DomainRating,
) error {
	ratings, err := remote(cmd.Context(), limit, minVotes)
	if err != nil {
		if !errors.Is(err, domain.ErrRemoteUnavailable) {
			return err
		}
		ratings = offline(limit)
		fmt.Fprintln(cmd.OutOrStdout(), "Backend unreachable, showing bundled data.")
	}
	printRatings(cmd.OutOrStdout(), ratings)
	return nil
}

func printRatings(out io.Writer, ratings []domain.DomainRating) {
	if len(ratings) == 0 {
		fmt.Fprintln(out, "No domains found.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tRATING\tVOTES\tLABEL")
	for _, r := range ratings {
		fmt.Fprintf(w, "%s\t%.1f\t%d\t%s\n", r.Domain, r.Rating, r.TotalVotes, mbfc.CommunityLabel(r.Rating))
	}
	w.Flush()
}
