package engagement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitetrust/internal/domain"
)

type memStore struct {
	rows []domain.Engagement
}

func (m *memStore) Append(_ context.Context, e domain.Engagement) error {
	m.rows = append(m.rows, e)
	return nil
}

func (m *memStore) Since(_ context.Context, t time.Time) ([]domain.Engagement, error) {
	var out []domain.Engagement
	for _, e := range m.rows {
		if !e.At.Before(t) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) Trim(_ context.Context, before time.Time) error {
	kept := m.rows[:0]
	for _, e := range m.rows {
		if !e.At.Before(before) {
			kept = append(kept, e)
		}
	}
	m.rows = kept
	return nil
}

func TestLogMarksReliability(t *testing.T) {
	store := &memStore{}
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	svc := New(store, func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, svc.Log(ctx, "bbc.com", 8.8))
	require.NoError(t, svc.Log(ctx, "infowars.com", 1.4))
	require.NoError(t, svc.Log(ctx, "buzzfeed.com", 7.0))

	require.Len(t, store.rows, 3)
	assert.True(t, store.rows[0].Reliable)
	assert.False(t, store.rows[1].Reliable)
	assert.True(t, store.rows[2].Reliable, "7 is the reliable boundary")
}

func TestLogTrimsOldRows(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store := &memStore{rows: []domain.Engagement{
		{Domain: "ancient.com", Rating: 5, At: now.Add(-91 * 24 * time.Hour)},
		{Domain: "recent.com", Rating: 5, At: now.Add(-time.Hour)},
	}}
	svc := New(store, func() time.Time { return now })

	require.NoError(t, svc.Log(context.Background(), "bbc.com", 8.8))

	require.Len(t, store.rows, 2)
	assert.Equal(t, "recent.com", store.rows[0].Domain)
	assert.Equal(t, "bbc.com", store.rows[1].Domain)
}

func TestWeeklySummary(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store := &memStore{rows: []domain.Engagement{
		{Domain: "stale.com", Rating: 8, Reliable: true, At: now.Add(-8 * 24 * time.Hour)},
		{Domain: "bbc.com", Rating: 8.8, Reliable: true, At: now.Add(-time.Hour)},
		{Domain: "bbc.com", Rating: 8.8, Reliable: true, At: now.Add(-2 * time.Hour)},
		{Domain: "infowars.com", Rating: 1.4, Reliable: false, At: now.Add(-3 * time.Hour)},
	}}
	svc := New(store, func() time.Time { return now })

	sum, err := svc.WeeklySummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Total, "entry past the 7-day window excluded")
	assert.Equal(t, 2, sum.Reliable)
	assert.Equal(t, 1, sum.Unreliable)
	assert.Equal(t, 67, sum.ReliablePct)
	assert.Equal(t, 33, sum.UnreliablePct)

	require.Len(t, sum.TopDomains, 2)
	assert.Equal(t, DomainCount{Domain: "bbc.com", Count: 2}, sum.TopDomains[0])
	assert.Equal(t, DomainCount{Domain: "infowars.com", Count: 1}, sum.TopDomains[1])
}

func TestWeeklySummaryEmpty(t *testing.T) {
	svc := New(&memStore{}, nil)

	sum, err := svc.WeeklySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Total)
	assert.Equal(t, 0, sum.ReliablePct)
	assert.Empty(t, sum.TopDomains)
}

func TestWeeklySummaryTopDomainsCapped(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store := &memStore{}
	for _, name := range []string{"a.com", "b.com", "c.com", "d.com", "e.com", "f.com", "g.com"} {
		store.rows = append(store.rows, domain.Engagement{Domain: name, Rating: 8, Reliable: true, At: now.Add(-time.Hour)})
	}
	svc := New(store, func() time.Time { return now })

	sum, err := svc.WeeklySummary(context.Background())
	require.NoError(t, err)
	assert.Len(t, sum.TopDomains, 5)
	assert.Equal(t, "a.com", sum.TopDomains[0].Domain, "ties break alphabetically")
}
