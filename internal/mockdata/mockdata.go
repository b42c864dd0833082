// Package mockdata holds the static fallback rating table used when the
// live backend is unreachable. Ratings are on the community 0-10 scale.
package mockdata

import (
	"math"
	"sort"
	"time"

	"sitetrust/internal/domain"
)

var seededAt = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

var ratings = map[string]float64{
	"wikipedia.org":       8.9,
	"cnn.com":             8.6,
	"bbc.com":             8.8,
	"reuters.com":         8.9,
	"ap.org":              8.7,
	"nytimes.com":         8.4,
	"washingtonpost.com":  8.2,
	"theguardian.com":     8.0,
	"npr.org":             8.3,
	"pbs.org":             8.5,
	"aljazeera.com":       7.9,
	"bloomberg.com":       8.1,
	"wsj.com":             8.0,
	"foxnews.com":         5.6,
	"msnbc.com":           6.2,
	"breitbart.com":       2.2,
	"infowars.com":        1.4,
	"naturalnews.com":     1.8,
	"theonion.com":        7.2,
	"buzzfeed.com":        5.8,
	"huffpost.com":        6.8,
	"vox.com":             7.6,
	"fivethirtyeight.com": 8.8,
	"twitter.com":         5.8,
	"facebook.com":        5.0,
	"reddit.com":          6.2,
	"youtube.com":         5.8,
	"medium.com":          6.8,
	"gov.uk":              8.9,
	"whitehouse.gov":      8.6,
	"cdc.gov":             8.9,
	"who.int":             8.9,
}

// Rating returns the static rating for a domain, or ok=false when the
// domain is not in the table.
func Rating(name string) (domain.DomainRating, bool) {
	r, ok := ratings[name]
	if !ok {
		return domain.DomainRating{}, false
	}
	return domain.DomainRating{
		Domain:    name,
		Rating:    r,
		CreatedAt: seededAt,
		UpdatedAt: seededAt,
	}, true
}

// TopRated returns up to limit entries ordered by rating descending, ties
// broken by domain name so repeated calls are stable.
func TopRated(limit int) []domain.DomainRating {
	return sorted(limit, func(a, b domain.DomainRating) bool {
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.Domain < b.Domain
	})
}

// LowestRated returns up to limit entries ordered by rating ascending.
func LowestRated(limit int) []domain.DomainRating {
	return sorted(limit, func(a, b domain.DomainRating) bool {
		if a.Rating != b.Rating {
			return a.Rating < b.Rating
		}
		return a.Domain < b.Domain
	})
}

// Stats summarizes the static table the same way the backend summarizes
// live data. The average is rounded to one decimal.
func Stats() domain.Stats {
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	avg := 0.0
	if len(ratings) > 0 {
		avg = math.Round(sum/float64(len(ratings))*10) / 10
	}
	return domain.Stats{
		TotalDomains:  len(ratings),
		AverageRating: avg,
	}
}

func sorted(limit int, less func(a, b domain.DomainRating) bool) []domain.DomainRating {
	all := make([]domain.DomainRating, 0, len(ratings))
	for name := range ratings {
		r, _ := Rating(name)
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return less(all[i], all[j]) })
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
