package mockdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRating(t *testing.T) {
	got, ok := Rating("bbc.com")
	require.True(t, ok)
	assert.Equal(t, 8.8, got.Rating)
	assert.Equal(t, "bbc.com", got.Domain)
	assert.False(t, got.UpdatedAt.IsZero())

	_, ok = Rating("not-in-table.example")
	assert.False(t, ok)
}

func TestTopRated(t *testing.T) {
	top := TopRated(5)
	require.Len(t, top, 5)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Rating, top[i].Rating)
	}
	// five domains tie at 8.9; ties break alphabetically
	assert.Equal(t, "cdc.gov", top[0].Domain)
	assert.Equal(t, "gov.uk", top[1].Domain)
}

func TestLowestRated(t *testing.T) {
	lowest := LowestRated(3)
	require.Len(t, lowest, 3)
	assert.Equal(t, "infowars.com", lowest[0].Domain)
	assert.Equal(t, "naturalnews.com", lowest[1].Domain)
	assert.Equal(t, "breitbart.com", lowest[2].Domain)
}

func TestTopRatedLimitLargerThanTable(t *testing.T) {
	all := TopRated(1000)
	assert.Len(t, all, 32)
}

func TestStats(t *testing.T) {
	stats := Stats()
	assert.Equal(t, 32, stats.TotalDomains)
	assert.Greater(t, stats.AverageRating, 0.0)
	assert.LessOrEqual(t, stats.AverageRating, 10.0)
}
