// Package ratings implements the vote aggregator: one current rating per
// domain, derived from the set of all distinct votes, with at-most-one
// vote per (domain, voter, address).
package ratings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sitetrust/internal/domain"
	"sitetrust/internal/ports"
)

const (
	// minSearchLength is the shortest accepted search query.
	minSearchLength = 2

	defaultTopLimit    = 10
	defaultTopMinVotes = 5

	defaultPageLimit    = 20
	defaultListMinVotes = 1
)

type Service struct {
	store ports.RatingStore
	log   *zap.Logger
}

func New(store ports.RatingStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// SubmitVote records one voter's rating for a domain and returns the
// recomputed aggregate. A repeat vote from the same (voter, address) for
// the same domain fails with domain.ErrDuplicateVote and leaves the
// aggregate untouched.
//
// The recompute reads the full vote set for the domain on every accepted
// vote. Two concurrent votes may race on the aggregate row; the vote
// insert itself is protected by the store's uniqueness constraint and the
// mean converges on the next accepted vote.
func (s *Service) SubmitVote(ctx context.Context, name string, rating int, voterID, address string) (domain.DomainRating, error) {
	name = domain.Normalize(name)
	if !domain.Valid(name) {
		return domain.DomainRating{}, domain.NewValidationError("domain", "must be a valid domain name")
	}
	if rating < domain.MinVoteRating || rating > domain.MaxVoteRating {
		return domain.DomainRating{}, domain.NewValidationError("rating",
			fmt.Sprintf("must be between %d and %d", domain.MinVoteRating, domain.MaxVoteRating))
	}

	vote := domain.Vote{
		ID:        uuid.NewString(),
		Domain:    name,
		Rating:    rating,
		VoterID:   voterID,
		IPAddress: address,
	}
	if err := s.store.InsertVote(ctx, vote); err != nil {
		if errors.Is(err, domain.ErrDuplicateVote) {
			return domain.DomainRating{}, err
		}
		return domain.DomainRating{}, fmt.Errorf("insert vote: %w", err)
	}

	updated, err := s.store.RecomputeRating(ctx, name)
	if err != nil {
		return domain.DomainRating{}, fmt.Errorf("recompute rating: %w", err)
	}

	s.log.Info("vote recorded",
		zap.String("domain", name),
		zap.Int("rating", rating),
		zap.Float64("new_rating", updated.Rating),
		zap.Int("total_votes", updated.TotalVotes),
	)
	return updated, nil
}

// SetRating unconditionally overwrites the domain's rating. It is the
// direct-mode write path: no vote rows, no per-voter idempotence, and it
// is never mixed with SubmitVote semantics in one deployment.
func (s *Service) SetRating(ctx context.Context, name string, rating float64) (domain.DomainRating, error) {
	name = domain.Normalize(name)
	if !domain.Valid(name) {
		return domain.DomainRating{}, domain.NewValidationError("domain", "must be a valid domain name")
	}
	if rating < domain.MinVoteRating || rating > domain.MaxVoteRating {
		return domain.DomainRating{}, domain.NewValidationError("rating",
			fmt.Sprintf("must be between %d and %d", domain.MinVoteRating, domain.MaxVoteRating))
	}

	updated, err := s.store.UpsertRating(ctx, name, rating)
	if err != nil {
		return domain.DomainRating{}, fmt.Errorf("upsert rating: %w", err)
	}
	s.log.Info("rating set", zap.String("domain", name), zap.Float64("rating", rating))
	return updated, nil
}

// GetRating returns the current aggregate for a domain. It never computes
// on read; absence is domain.ErrNotFound.
func (s *Service) GetRating(ctx context.Context, name string) (domain.DomainRating, error) {
	name = domain.Normalize(name)
	if !domain.Valid(name) {
		return domain.DomainRating{}, domain.NewValidationError("domain", "must be a valid domain name")
	}
	return s.store.GetRating(ctx, name)
}

// TopRated lists domains by rating descending. Zero limit and minVotes
// fall back to the defaults (10 and 5).
func (s *Service) TopRated(ctx context.Context, limit, minVotes int) ([]domain.DomainRating, error) {
	limit, minVotes = clampTopParams(limit, minVotes)
	return s.store.TopRated(ctx, limit, minVotes)
}

// LowestRated lists domains by rating ascending with the same defaults as
// TopRated.
func (s *Service) LowestRated(ctx context.Context, limit, minVotes int) ([]domain.DomainRating, error) {
	limit, minVotes = clampTopParams(limit, minVotes)
	return s.store.LowestRated(ctx, limit, minVotes)
}

// Page is a single page of rated domains.
type Page struct {
	Items []domain.DomainRating
	Page  int
	Limit int
	Total int
	Pages int
}

// List returns rated domains ordered by rating descending, paginated.
func (s *Service) List(ctx context.Context, page, limit, minVotes int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if minVotes < 1 {
		minVotes = defaultListMinVotes
	}
	items, total, err := s.store.List(ctx, page, limit, minVotes)
	if err != nil {
		return Page{}, err
	}
	pages := (total + limit - 1) / limit
	return Page{Items: items, Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// Search finds domains whose name contains the query, case-insensitively.
// Queries shorter than two characters are rejected.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.DomainRating, error) {
	query = strings.TrimSpace(query)
	if len(query) < minSearchLength {
		return nil, domain.NewValidationError("q",
			fmt.Sprintf("must be at least %d characters long", minSearchLength))
	}
	if limit < 1 {
		limit = defaultTopLimit
	}
	return s.store.Search(ctx, query, limit)
}

// Stats returns platform-wide counts and the average rating.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	return s.store.Stats(ctx)
}

// DomainStats returns the vote-history summary for one domain: count,
// mean, and first/last vote timestamps. Domains without votes are
// domain.ErrNotFound.
func (s *Service) DomainStats(ctx context.Context, name string) (domain.DomainVoteStats, error) {
	name = domain.Normalize(name)
	if !domain.Valid(name) {
		return domain.DomainVoteStats{}, domain.NewValidationError("domain", "must be a valid domain name")
	}
	return s.store.DomainStats(ctx, name)
}

func clampTopParams(limit, minVotes int) (int, int) {
	if limit < 1 {
		limit = defaultTopLimit
	}
	if minVotes < 1 {
		minVotes = defaultTopMinVotes
	}
	return limit, minVotes
}
