package ports

import (
	"context"

	"sitetrust/internal/domain"
)

// RatingStore is the persistence contract for the vote aggregator. Both
// the embedded SQLite store and the managed Postgres store satisfy it.
//
// InsertVote must enforce the (domain, voter, address) uniqueness
// constraint atomically and report a violation as domain.ErrDuplicateVote.
// RecomputeRating derives the exact mean and count from the full vote set
// for the domain and upserts the aggregate row.
type RatingStore interface {
	InsertVote(ctx context.Context, vote domain.Vote) error
	RecomputeRating(ctx context.Context, name string) (domain.DomainRating, error)
	UpsertRating(ctx context.Context, name string, rating float64) (domain.DomainRating, error)
	GetRating(ctx context.Context, name string) (domain.DomainRating, error)
	TopRated(ctx context.Context, limit, minVotes int) ([]domain.DomainRating, error)
	LowestRated(ctx context.Context, limit, minVotes int) ([]domain.DomainRating, error)
	List(ctx context.Context, page, limit, minVotes int) (items []domain.DomainRating, total int, err error)
	Search(ctx context.Context, query string, limit int) ([]domain.DomainRating, error)
	Stats(ctx context.Context) (domain.Stats, error)
	DomainStats(ctx context.Context, name string) (domain.DomainVoteStats, error)
}
