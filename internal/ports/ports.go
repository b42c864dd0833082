package ports

import (
	"context"
	"time"

	"sitetrust/internal/domain"
)

// EngagementStore records page engagements and serves them back for
// summaries. Entries are append-only; Trim drops entries older than the
// retention horizon.
type EngagementStore interface {
	Append(ctx context.Context, e domain.Engagement) error
	Since(ctx context.Context, t time.Time) ([]domain.Engagement, error)
	Trim(ctx context.Context, before time.Time) error
}
