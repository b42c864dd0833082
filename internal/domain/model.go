package domain

import "time"

// Core domain models used internally. HTTP request/response shapes live in
// the http adapter; keep these decoupled where helpful.

// DomainRating is the current aggregate rating for a single domain.
// Rating is on the community 0-10 scale. TotalVotes is zero in direct-set
// deployments, which do not track individual votes.
type DomainRating struct {
	Domain     string
	Rating     float64
	TotalVotes int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Vote is one user's submitted rating for a domain. Votes are append-only:
// once recorded they are never mutated or deleted, they only contribute to
// the recomputed aggregate.
type Vote struct {
	ID        string
	Domain    string
	Rating    int
	VoterID   string
	IPAddress string
	CreatedAt time.Time
}

// RatingMode selects which write semantics a deployment exposes. The two
// modes are never mixed: a votes deployment routes POST /api/rating with
// per-voter idempotence, a direct deployment routes PUT /api/rating as an
// unconditional upsert.
type RatingMode string

const (
	ModeVotes  RatingMode = "votes"
	ModeDirect RatingMode = "direct"
)

const (
	MinVoteRating = 1
	MaxVoteRating = 10
)

// DomainVoteStats summarizes the vote history of a single domain. It is
// derived entirely from vote rows, so direct-set deployments (which
// record no votes) have none.
type DomainVoteStats struct {
	Domain      string
	Rating      float64
	TotalVotes  int
	FirstVoteAt time.Time
	LastVoteAt  time.Time
}

// Stats is the platform-wide aggregate snapshot.
type Stats struct {
	TotalDomains  int
	TotalVotes    int
	TotalUsers    int
	AverageRating float64
}

// Engagement is one recorded page visit with the rating shown to the
// user at the time. Reliable mirrors the rating >= 7 display band.
type Engagement struct {
	Domain   string
	Rating   float64
	Reliable bool
	At       time.Time
}
