// Package engagement keeps a local, append-only log of page engagements
// and summarizes them over the trailing week.
package engagement

import (
	"context"
	"math"
	"sort"
	"time"

	"sitetrust/internal/domain"
	"sitetrust/internal/ports"
)

const (
	// retention caps how far back engagements are kept; older rows are
	// trimmed on every write.
	retention = 90 * 24 * time.Hour

	summaryWindow = 7 * 24 * time.Hour

	// reliableThreshold mirrors the display band: ratings at or above it
	// count as reliable engagements.
	reliableThreshold = 7

	topDomainCount = 5
)

type Service struct {
	store ports.EngagementStore
	now   func() time.Time
}

// New builds the engagement service. A nil now func defaults to time.Now.
func New(store ports.EngagementStore, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Log records one engagement and trims entries past the retention
// horizon.
func (s *Service) Log(ctx context.Context, name string, rating float64) error {
	now := s.now()
	if err := s.store.Trim(ctx, now.Add(-retention)); err != nil {
		return err
	}
	return s.store.Append(ctx, domain.Engagement{
		Domain:   name,
		Rating:   rating,
		Reliable: rating >= reliableThreshold,
		At:       now,
	})
}

// DomainCount is one domain with its engagement count.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// Summary covers the trailing seven days of engagements.
type Summary struct {
	Total         int           `json:"total"`
	Reliable      int           `json:"reliable"`
	Unreliable    int           `json:"unreliable"`
	ReliablePct   int           `json:"reliablePct"`
	UnreliablePct int           `json:"unreliablePct"`
	TopDomains    []DomainCount `json:"topDomains"`
}

// WeeklySummary aggregates the last week of engagements.
func (s *Service) WeeklySummary(ctx context.Context) (Summary, error) {
	recent, err := s.store.Since(ctx, s.now().Add(-summaryWindow))
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	counts := make(map[string]int)
	for _, e := range recent {
		sum.Total++
		if e.Reliable {
			sum.Reliable++
		} else {
			sum.Unreliable++
		}
		counts[e.Domain]++
	}
	if sum.Total > 0 {
		sum.ReliablePct = int(math.Round(float64(sum.Reliable) / float64(sum.Total) * 100))
		sum.UnreliablePct = int(math.Round(float64(sum.Unreliable) / float64(sum.Total) * 100))
	}

	top := make([]DomainCount, 0, len(counts))
	for name, count := range counts {
		top = append(top, DomainCount{Domain: name, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Domain < top[j].Domain
	})
	if len(top) > topDomainCount {
		top = top[:topDomainCount]
	}
	sum.TopDomains = top
	return sum, nil
}
