package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitetrust/internal/domain"
	"sitetrust/internal/mbfc"
)

// fakeRemote scripts backend behavior per test.
type fakeRemote struct {
	healthy bool
	ratings map[string]domain.DomainRating
	calls   int
}

func (f *fakeRemote) Health(context.Context) error {
	if !f.healthy {
		return domain.ErrRemoteUnavailable
	}
	return nil
}

func (f *fakeRemote) GetRating(_ context.Context, name string) (domain.DomainRating, error) {
	f.calls++
	if !f.healthy {
		return domain.DomainRating{}, domain.ErrRemoteUnavailable
	}
	r, ok := f.ratings[name]
	if !ok {
		return domain.DomainRating{}, domain.ErrNotFound
	}
	return r, nil
}

func newTestResolver(remote Remote, now func() time.Time) *Resolver {
	source := mbfc.NewCachedSource(mbfc.NewStaticSource(now), 24*time.Hour, now)
	return New(remote, source, nil, now)
}

func TestResolveLiveBlendsExternalSignal(t *testing.T) {
	remote := &fakeRemote{
		healthy: true,
		ratings: map[string]domain.DomainRating{
			"cnn.com": {Domain: "cnn.com", Rating: 8.0, TotalVotes: 25},
		},
	}
	r := newTestResolver(remote, nil)

	got, err := r.Resolve(context.Background(), "https://www.cnn.com/article")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "cnn.com", got.Domain)
	assert.Equal(t, 8.0, got.Rating)
	assert.Equal(t, 25, got.TotalVotes)
	assert.Equal(t, []string{SourceLive, SourceMBFC}, got.Sources)
	// external composite 81 (high 85 * 0.6 + left-center 75 * 0.4),
	// blended: 81*0.7 + 80*0.3 = 80.7
	assert.InDelta(t, 80.7, got.Score.Score, 1e-9)
	assert.Equal(t, "A", got.Score.Grade)
	assert.Equal(t, "reliable", got.Badge)
}

func TestResolveLiveWithoutExternalSignal(t *testing.T) {
	remote := &fakeRemote{
		healthy: true,
		ratings: map[string]domain.DomainRating{
			"smallblog.net": {Domain: "smallblog.net", Rating: 6.0, TotalVotes: 4},
		},
	}
	r := newTestResolver(remote, nil)

	got, err := r.Resolve(context.Background(), "smallblog.net")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, []string{SourceLive}, got.Sources)
	assert.InDelta(t, 60, got.Score.Score, 1e-9)
}

func TestResolveFallsBackToCache(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	remote := &fakeRemote{
		healthy: true,
		ratings: map[string]domain.DomainRating{
			"cnn.com": {Domain: "cnn.com", Rating: 8.0, TotalVotes: 25},
		},
	}
	r := newTestResolver(remote, clock)
	ctx := context.Background()

	live, err := r.Resolve(ctx, "cnn.com")
	require.NoError(t, err)
	require.NotNil(t, live)

	// backend goes down well within the cache validity window
	remote.healthy = false
	now = now.Add(2 * time.Hour)

	cached, err := r.Resolve(ctx, "cnn.com")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, live.Rating, cached.Rating)
	assert.Equal(t, []string{SourceCached, SourceLive, SourceMBFC}, cached.Sources)
}

func TestResolveCacheExpires(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	remote := &fakeRemote{
		healthy: true,
		ratings: map[string]domain.DomainRating{
			"smallblog.net": {Domain: "smallblog.net", Rating: 6.0, TotalVotes: 4},
		},
	}
	r := newTestResolver(remote, clock)
	ctx := context.Background()

	_, err := r.Resolve(ctx, "smallblog.net")
	require.NoError(t, err)

	remote.healthy = false
	now = now.Add(25 * time.Hour)

	got, err := r.Resolve(ctx, "smallblog.net")
	require.NoError(t, err)
	assert.Nil(t, got, "expired cache entry and no mock fallback")
}

func TestResolveFallsBackToMock(t *testing.T) {
	r := newTestResolver(&fakeRemote{healthy: false}, nil)

	got, err := r.Resolve(context.Background(), "bbc.com")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 8.8, got.Rating)
	assert.Equal(t, []string{SourceMock}, got.Sources)
	assert.InDelta(t, 88, got.Score.Score, 1e-9)
	assert.Equal(t, "Reliable", got.Score.Label)
	assert.Equal(t, "reliable", got.Badge)
}

func TestResolveNoSourceHasRating(t *testing.T) {
	r := newTestResolver(&fakeRemote{healthy: false}, nil)

	got, err := r.Resolve(context.Background(), "totally-unknown.example")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveRejectsEmptyDomain(t *testing.T) {
	r := newTestResolver(&fakeRemote{healthy: true}, nil)

	_, err := r.Resolve(context.Background(), "")
	assert.True(t, domain.IsValidation(err))
}

func TestFailedProbeSuppressesLiveLookups(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	remote := &fakeRemote{healthy: false}
	r := newTestResolver(remote, clock)
	ctx := context.Background()

	require.Error(t, r.Probe(ctx))

	_, err := r.Resolve(ctx, "bbc.com")
	require.NoError(t, err)
	assert.Equal(t, 0, remote.calls, "live step skipped inside the probe window")

	now = now.Add(61 * time.Second)
	_, err = r.Resolve(ctx, "bbc.com")
	require.NoError(t, err)
	assert.Equal(t, 1, remote.calls, "live step retried after the window")
}

func TestSuccessfulProbeClearsSuppression(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	remote := &fakeRemote{healthy: false}
	r := newTestResolver(remote, clock)
	ctx := context.Background()

	require.Error(t, r.Probe(ctx))

	remote.healthy = true
	remote.ratings = map[string]domain.DomainRating{
		"bbc.com": {Domain: "bbc.com", Rating: 9.1, TotalVotes: 40},
	}
	require.NoError(t, r.Probe(ctx))

	got, err := r.Resolve(ctx, "bbc.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 9.1, got.Rating)
	assert.Contains(t, got.Sources, SourceLive)
}
