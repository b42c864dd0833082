package mbfc

import (
	"context"
	"time"

	"sitetrust/internal/domain"
)

// SignalRating is one categorical signal together with its fixed numeric
// interpretation.
type SignalRating struct {
	Category string `json:"category"`
	CategoryRating
}

// Metadata carries descriptive attributes of the rated outlet.
type Metadata struct {
	Country     string    `json:"country"`
	Language    string    `json:"language"`
	Traffic     string    `json:"traffic"`
	Credibility string    `json:"credibility"`
	Source      string    `json:"source"`
	RetrievedAt time.Time `json:"retrieved_at"`
}

// Report is the full bias/factual assessment of a single domain.
type Report struct {
	Domain   string         `json:"domain"`
	Bias     SignalRating   `json:"bias"`
	Factual  SignalRating   `json:"factual"`
	Combined Classification `json:"combined"`
	Metadata Metadata       `json:"metadata"`
}

// Source looks up the bias/factual assessment for a domain. Lookups for
// unlisted domains return domain.ErrNotFound. The interface exists so a
// real fact-check integration can replace the built-in static table
// without touching the combination math.
type Source interface {
	Lookup(ctx context.Context, name string) (*Report, error)
}

type staticEntry struct {
	bias        string
	factual     string
	country     string
	language    string
	traffic     string
	credibility string
}

// staticDatabase stands in for a real fact-check API.
var staticDatabase = map[string]staticEntry{
	"cnn.com":       {bias: "left-center", factual: "high", country: "US", language: "English", traffic: "very-high", credibility: "high"},
	"foxnews.com":   {bias: "right", factual: "high", country: "US", language: "English", traffic: "very-high", credibility: "high"},
	"bbc.com":       {bias: "center", factual: "very-high", country: "UK", language: "English", traffic: "very-high", credibility: "very-high"},
	"reuters.com":   {bias: "center", factual: "very-high", country: "International", language: "English", traffic: "high", credibility: "very-high"},
	"infowars.com":  {bias: "conspiracy", factual: "very-low", country: "US", language: "English", traffic: "medium", credibility: "very-low"},
	"breitbart.com": {bias: "right", factual: "low", country: "US", language: "English", traffic: "high", credibility: "low"},
	"huffpost.com":  {bias: "left", factual: "mostly-factual", country: "US", language: "English", traffic: "high", credibility: "medium"},
	"theonion.com":  {bias: "satire", factual: "not-rated", country: "US", language: "English", traffic: "medium", credibility: "satire"},
}

// StaticSource serves assessments from the fixed built-in table.
type StaticSource struct {
	now func() time.Time
}

// NewStaticSource returns a Source backed by the built-in table. A nil now
// func defaults to time.Now.
func NewStaticSource(now func() time.Time) *StaticSource {
	if now == nil {
		now = time.Now
	}
	return &StaticSource{now: now}
}

// Lookup builds a full report for a listed domain.
func (s *StaticSource) Lookup(_ context.Context, name string) (*Report, error) {
	entry, ok := staticDatabase[name]
	if !ok {
		return nil, domain.ErrNotFound
	}

	bias := BiasRating(entry.bias)
	factual := FactualRating(entry.factual)

	return &Report{
		Domain:   name,
		Bias:     SignalRating{Category: entry.bias, CategoryRating: bias},
		Factual:  SignalRating{Category: entry.factual, CategoryRating: factual},
		Combined: CombineBiasFactual(bias, factual),
		Metadata: Metadata{
			Country:     entry.country,
			Language:    entry.language,
			Traffic:     entry.traffic,
			Credibility: entry.credibility,
			Source:      "MBFC",
			RetrievedAt: s.now(),
		},
	}, nil
}
