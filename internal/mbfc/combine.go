package mbfc

// Combination weights. Factual accuracy matters more than political
// leaning for a reliability assessment, and an externally curated signal
// outranks community votes.
const (
	factualWeight = 0.6
	biasWeight    = 0.4

	externalWeight  = 0.7
	communityWeight = 0.3
)

// CombineBiasFactual folds a bias rating and a factual-reporting rating
// into one classified composite score on the 0-100 scale.
func CombineBiasFactual(bias, factual CategoryRating) Classification {
	return Classify(factual.Score*factualWeight + bias.Score*biasWeight)
}

// CombineCommunityAndExternal merges a 0-10 community rating with a 0-100
// external composite score. Both signals are projected onto the 0-100
// scale before weighting. When only one signal is present it is used
// directly; when neither is present the result is nil, which callers
// treat as "no rating" rather than an error.
func CombineCommunityAndExternal(community *float64, external *float64) *Classification {
	switch {
	case community == nil && external == nil:
		return nil
	case external == nil:
		c := Classify(*community * 10)
		return &c
	case community == nil:
		c := Classify(*external)
		return &c
	}
	c := Classify(*external*externalWeight + *community*10*communityWeight)
	return &c
}
