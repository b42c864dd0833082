package mbfc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBiasRating(t *testing.T) {
	assert.Equal(t, 90.0, BiasRating("center").Score)
	assert.Equal(t, 15.0, BiasRating("fake-news").Score)
	assert.Equal(t, 90.0, BiasRating("CENTER").Score, "lookup is case-insensitive")
}

func TestCenterBiasColors(t *testing.T) {
	left := BiasRating("left-center")
	right := BiasRating("right-center")
	assert.Equal(t, left.Score, right.Score)
	// Colors differ at the same score; that split is in the dataset.
	assert.Equal(t, "#6bcf7f", left.Color)
	assert.Equal(t, "#ffc107", right.Color)
}

func TestFactualRating(t *testing.T) {
	assert.Equal(t, 95.0, FactualRating("very-high").Score)
	assert.Equal(t, 50.0, FactualRating("not-rated").Score)
	assert.Equal(t, 60.0, FactualRating("Mixed").Score)
}

func TestUnknownCategoryFallback(t *testing.T) {
	bias := BiasRating("made-up")
	assert.Equal(t, 50.0, bias.Score)
	assert.Equal(t, "#666", bias.Color)
	assert.Equal(t, "Unknown", bias.Label)

	factual := FactualRating("")
	assert.Equal(t, 50.0, factual.Score)
	assert.Equal(t, "Unknown", factual.Label)
}
