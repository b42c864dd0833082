package sqlite

import (
	"context"
	"time"

	"sitetrust/internal/domain"
)

// Append records one engagement row.
func (s *Store) Append(ctx context.Context, e domain.Engagement) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO engagements (domain, rating, reliable, at)
		VALUES (?, ?, ?, ?)
	`, e.Domain, e.Rating, e.Reliable, e.At.UTC())
	return err
}

// Since returns engagements at or after t, oldest first.
func (s *Store) Since(ctx context.Context, t time.Time) ([]domain.Engagement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT domain, rating, reliable, at FROM engagements
		WHERE at >= ?
		ORDER BY at ASC
	`, t.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Engagement
	for rows.Next() {
		var e domain.Engagement
		if err := rows.Scan(&e.Domain, &e.Rating, &e.Reliable, &e.At); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Trim drops engagements older than before.
func (s *Store) Trim(ctx context.Context, before time.Time) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM engagements WHERE at < ?`, before.UTC())
	return err
}
