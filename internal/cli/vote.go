package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sitetrust/internal/domain"
	"sitetrust/internal/mbfc"
)

func newVoteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "vote <domain> <rating>",
		Short: "Submit a 1-10 trust vote for a domain",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return domain.NewValidationError("rating", "must be a whole number between 1 and 10")
			}

			updated, err := a.remote().SubmitVote(cmd.Context(), args[0], rating, a.cfg.VoterID)
			if err != nil {
				if errors.Is(err, domain.ErrDuplicateVote) {
					fmt.Fprintf(cmd.OutOrStdout(), "You have already voted for %s\n", domain.Normalize(args[0]))
					return nil
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Vote recorded for %s: now %.1f/10 (%s) from %d votes\n",
				updated.Domain, updated.Rating, mbfc.CommunityLabel(updated.Rating), updated.TotalVotes)
			return nil
		},
	}
}
