// Package resolver picks the rating to display for a domain: live backend
// first, then the cached combiner output, then the static mock table.
// Every step's failure is non-fatal; running out of sources yields "no
// rating", never an error.
package resolver

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"sitetrust/internal/domain"
	"sitetrust/internal/mbfc"
	"sitetrust/internal/mockdata"
	"sitetrust/internal/trustcache"
)

// probeTTL bounds how long a failed connectivity probe suppresses the
// live lookup step. After expiry the next lookup retries the backend.
const probeTTL = time.Minute

// Source names reported in Resolved.Sources.
const (
	SourceLive   = "community"
	SourceMBFC   = "mbfc"
	SourceCached = "cache"
	SourceMock   = "mock"
)

// Remote is the slice of the backend client the resolver needs.
type Remote interface {
	Health(ctx context.Context) error
	GetRating(ctx context.Context, name string) (domain.DomainRating, error)
}

// Resolved is a display-ready rating. Rating is on the community 0-10
// scale where known; Score is the combined 0-100 classification driving
// the label, grade and color.
type Resolved struct {
	Domain     string
	Rating     float64
	TotalVotes int
	Score      mbfc.Classification
	Badge      string
	Sources    []string
	ResolvedAt time.Time
}

type Resolver struct {
	remote Remote
	source mbfc.Source
	cache  *trustcache.Cache[Resolved]
	log    *zap.Logger
	now    func() time.Time

	probeFailedAt time.Time
}

// New builds a resolver. remote may be nil for fully offline use; a nil
// now func defaults to time.Now.
func New(remote Remote, source mbfc.Source, log *zap.Logger, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		remote: remote,
		source: source,
		cache:  trustcache.New[Resolved](trustcache.DefaultTTL, now),
		log:    log,
		now:    now,
	}
}

// Probe tests backend connectivity. A failure lets Resolve skip the live
// step until the probe result expires; it never blocks later retries.
func (r *Resolver) Probe(ctx context.Context) error {
	if r.remote == nil {
		return domain.ErrRemoteUnavailable
	}
	if err := r.remote.Health(ctx); err != nil {
		r.probeFailedAt = r.now()
		return err
	}
	r.probeFailedAt = time.Time{}
	return nil
}

// Resolve returns the rating to display for name, or nil when no source
// has one.
func (r *Resolver) Resolve(ctx context.Context, name string) (*Resolved, error) {
	name = domain.Normalize(name)
	if name == "" {
		return nil, domain.NewValidationError("domain", "must not be empty")
	}

	if resolved := r.resolveLive(ctx, name); resolved != nil {
		r.cache.Put(name, *resolved)
		return resolved, nil
	}

	if cached, ok := r.cache.Get(name); ok {
		cached.Sources = append([]string{SourceCached}, cached.Sources...)
		return &cached, nil
	}

	if mock, ok := mockdata.Rating(name); ok {
		combined := mbfc.CombineCommunityAndExternal(&mock.Rating, nil)
		return &Resolved{
			Domain:     name,
			Rating:     mock.Rating,
			TotalVotes: mock.TotalVotes,
			Score:      *combined,
			Badge:      mbfc.Badge(mock.Rating),
			Sources:    []string{SourceMock},
			ResolvedAt: r.now(),
		}, nil
	}

	return nil, nil
}

// resolveLive performs the live step: community rating from the backend,
// blended with the external bias/factual composite when one exists. Any
// failure returns nil and the caller falls through.
func (r *Resolver) resolveLive(ctx context.Context, name string) *Resolved {
	if r.remote == nil {
		return nil
	}
	if !r.probeFailedAt.IsZero() && r.now().Sub(r.probeFailedAt) < probeTTL {
		return nil
	}

	live, err := r.remote.GetRating(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrRemoteUnavailable) {
			r.probeFailedAt = r.now()
		}
		r.log.Debug("live lookup failed", zap.String("domain", name), zap.Error(err))
		return nil
	}

	sources := []string{SourceLive}
	var external *float64
	if r.source != nil {
		if report, lookupErr := r.source.Lookup(ctx, name); lookupErr == nil {
			external = &report.Combined.Score
			sources = append(sources, SourceMBFC)
		}
	}

	combined := mbfc.CombineCommunityAndExternal(&live.Rating, external)
	return &Resolved{
		Domain:     name,
		Rating:     live.Rating,
		TotalVotes: live.TotalVotes,
		Score:      *combined,
		Badge:      mbfc.Badge(live.Rating),
		Sources:    sources,
		ResolvedAt: r.now(),
	}
}
