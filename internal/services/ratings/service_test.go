package ratings

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitetrust/internal/domain"
)

// memStore is an in-memory RatingStore with the same uniqueness and
// recompute semantics as the SQL stores.
type memStore struct {
	votes   []domain.Vote
	ratings map[string]domain.DomainRating
}

func newMemStore() *memStore {
	return &memStore{ratings: make(map[string]domain.DomainRating)}
}

func (m *memStore) InsertVote(_ context.Context, vote domain.Vote) error {
	for _, v := range m.votes {
		if v.Domain == vote.Domain && v.VoterID == vote.VoterID && v.IPAddress == vote.IPAddress {
			return domain.ErrDuplicateVote
		}
	}
	m.votes = append(m.votes, vote)
	return nil
}

func (m *memStore) RecomputeRating(_ context.Context, name string) (domain.DomainRating, error) {
	var sum, count int
	for _, v := range m.votes {
		if v.Domain == name {
			sum += v.Rating
			count++
		}
	}
	if count == 0 {
		return domain.DomainRating{}, domain.ErrNotFound
	}
	r := domain.DomainRating{Domain: name, Rating: float64(sum) / float64(count), TotalVotes: count}
	m.ratings[name] = r
	return r, nil
}

func (m *memStore) UpsertRating(_ context.Context, name string, rating float64) (domain.DomainRating, error) {
	r := domain.DomainRating{Domain: name, Rating: rating}
	m.ratings[name] = r
	return r, nil
}

func (m *memStore) GetRating(_ context.Context, name string) (domain.DomainRating, error) {
	r, ok := m.ratings[name]
	if !ok {
		return domain.DomainRating{}, domain.ErrNotFound
	}
	return r, nil
}

func (m *memStore) ranked(limit, minVotes int, desc bool) []domain.DomainRating {
	var out []domain.DomainRating
	for _, r := range m.ratings {
		if r.TotalVotes >= minVotes {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Rating < out[j].Rating
	})
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}

func (m *memStore) TopRated(_ context.Context, limit, minVotes int) ([]domain.DomainRating, error) {
	return m.ranked(limit, minVotes, true), nil
}

func (m *memStore) LowestRated(_ context.Context, limit, minVotes int) ([]domain.DomainRating, error) {
	return m.ranked(limit, minVotes, false), nil
}

func (m *memStore) List(_ context.Context, page, limit, minVotes int) ([]domain.DomainRating, int, error) {
	ranked := m.ranked(len(m.ratings), minVotes, true)
	total := len(ranked)
	start := (page - 1) * limit
	if start >= len(ranked) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[start:end], total, nil
}

func (m *memStore) Search(_ context.Context, query string, limit int) ([]domain.DomainRating, error) {
	var out []domain.DomainRating
	for _, r := range m.ratings {
		if strings.Contains(r.Domain, strings.ToLower(query)) {
			out = append(out, r)
		}
	}
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) Stats(_ context.Context) (domain.Stats, error) {
	return domain.Stats{TotalDomains: len(m.ratings), TotalVotes: len(m.votes)}, nil
}

func (m *memStore) DomainStats(_ context.Context, name string) (domain.DomainVoteStats, error) {
	var sum, count int
	for _, v := range m.votes {
		if v.Domain == name {
			sum += v.Rating
			count++
		}
	}
	if count == 0 {
		return domain.DomainVoteStats{}, domain.ErrNotFound
	}
	return domain.DomainVoteStats{
		Domain:     name,
		Rating:     float64(sum) / float64(count),
		TotalVotes: count,
	}, nil
}

func TestSubmitVoteComputesMean(t *testing.T) {
	store := newMemStore()
	svc := New(store, nil)
	ctx := context.Background()

	votes := []struct {
		rating int
		voter  string
	}{
		{2, "alice"},
		{4, "bob"},
		{9, "carol"},
	}
	var updated domain.DomainRating
	var err error
	for _, v := range votes {
		updated, err = svc.SubmitVote(ctx, "example.com", v.rating, v.voter, "10.0.0.1")
		require.NoError(t, err)
	}

	assert.Equal(t, "example.com", updated.Domain)
	assert.InDelta(t, 5.0, updated.Rating, 1e-9)
	assert.Equal(t, 3, updated.TotalVotes)
}

func TestSubmitVoteNormalizesDomain(t *testing.T) {
	store := newMemStore()
	svc := New(store, nil)

	updated, err := svc.SubmitVote(context.Background(), "https://www.Example.com/page", 7, "alice", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "example.com", updated.Domain)
}

func TestSubmitVoteDuplicate(t *testing.T) {
	store := newMemStore()
	svc := New(store, nil)
	ctx := context.Background()

	first, err := svc.SubmitVote(ctx, "example.com", 8, "alice", "10.0.0.1")
	require.NoError(t, err)

	_, err = svc.SubmitVote(ctx, "example.com", 2, "alice", "10.0.0.1")
	assert.ErrorIs(t, err, domain.ErrDuplicateVote)

	// the rejected vote leaves the aggregate untouched
	current, err := svc.GetRating(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, first.Rating, current.Rating)
	assert.Equal(t, 1, current.TotalVotes)
}

func TestSubmitVoteSameVoterDifferentDomains(t *testing.T) {
	store := newMemStore()
	svc := New(store, nil)
	ctx := context.Background()

	_, err := svc.SubmitVote(ctx, "example.com", 8, "alice", "10.0.0.1")
	require.NoError(t, err)
	_, err = svc.SubmitVote(ctx, "example.org", 3, "alice", "10.0.0.1")
	assert.NoError(t, err)
}

func TestSubmitVoteValidation(t *testing.T) {
	svc := New(newMemStore(), nil)
	ctx := context.Background()

	_, err := svc.SubmitVote(ctx, "not a domain", 5, "alice", "10.0.0.1")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.SubmitVote(ctx, "example.com", 0, "alice", "10.0.0.1")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.SubmitVote(ctx, "example.com", 11, "alice", "10.0.0.1")
	assert.True(t, domain.IsValidation(err))
}

func TestSetRating(t *testing.T) {
	store := newMemStore()
	svc := New(store, nil)
	ctx := context.Background()

	updated, err := svc.SetRating(ctx, "Example.com", 6.5)
	require.NoError(t, err)
	assert.Equal(t, "example.com", updated.Domain)
	assert.Equal(t, 6.5, updated.Rating)

	// a second write replaces the value outright
	updated, err = svc.SetRating(ctx, "example.com", 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, updated.Rating)
}

func TestGetRatingUnknownDomain(t *testing.T) {
	svc := New(newMemStore(), nil)
	_, err := svc.GetRating(context.Background(), "missing.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTopRatedDefaults(t *testing.T) {
	store := newMemStore()
	store.ratings["a.com"] = domain.DomainRating{Domain: "a.com", Rating: 9, TotalVotes: 10}
	store.ratings["b.com"] = domain.DomainRating{Domain: "b.com", Rating: 8, TotalVotes: 2}
	svc := New(store, nil)

	// zero minVotes falls back to 5, filtering out b.com
	top, err := svc.TopRated(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "a.com", top[0].Domain)
}

func TestListPagination(t *testing.T) {
	store := newMemStore()
	store.ratings["a.com"] = domain.DomainRating{Domain: "a.com", Rating: 9, TotalVotes: 3}
	store.ratings["b.com"] = domain.DomainRating{Domain: "b.com", Rating: 8, TotalVotes: 3}
	store.ratings["c.com"] = domain.DomainRating{Domain: "c.com", Rating: 7, TotalVotes: 3}
	svc := New(store, nil)

	page, err := svc.List(context.Background(), 1, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Pages)
	assert.Len(t, page.Items, 2)

	page, err = svc.List(context.Background(), 2, 2, 1)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestDomainStats(t *testing.T) {
	store := newMemStore()
	svc := New(store, nil)
	ctx := context.Background()

	_, err := svc.SubmitVote(ctx, "example.com", 4, "alice", "10.0.0.1")
	require.NoError(t, err)
	_, err = svc.SubmitVote(ctx, "example.com", 8, "bob", "10.0.0.1")
	require.NoError(t, err)

	st, err := svc.DomainStats(ctx, "https://www.Example.com/page")
	require.NoError(t, err)
	assert.Equal(t, "example.com", st.Domain)
	assert.InDelta(t, 6.0, st.Rating, 1e-9)
	assert.Equal(t, 2, st.TotalVotes)
}

func TestDomainStatsValidation(t *testing.T) {
	svc := New(newMemStore(), nil)

	_, err := svc.DomainStats(context.Background(), "not a domain")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.DomainStats(context.Background(), "unvoted.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchRejectsShortQueries(t *testing.T) {
	svc := New(newMemStore(), nil)

	_, err := svc.Search(context.Background(), "a", 10)
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Search(context.Background(), "  b ", 10)
	assert.True(t, domain.IsValidation(err))
}
