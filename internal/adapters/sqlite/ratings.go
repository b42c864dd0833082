package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	sqlite "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"

	"sitetrust/internal/domain"
)

// InsertVote appends a vote row. The (domain, user_id, ip_address) unique
// constraint is enforced by the schema; a violation maps to
// domain.ErrDuplicateVote and nothing is written.
func (s *Store) InsertVote(ctx context.Context, vote domain.Vote) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO votes (id, domain, rating, user_id, ip_address)
		VALUES (?, ?, ?, ?, ?)
	`, vote.ID, vote.Domain, vote.Rating, vote.VoterID, vote.IPAddress)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateVote
	}
	return err
}

// RecomputeRating derives the exact mean and count from all votes for the
// domain and upserts the aggregate row.
func (s *Store) RecomputeRating(ctx context.Context, name string) (domain.DomainRating, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.DomainRating{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var mean float64
	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM votes WHERE domain = ?`, name,
	).Scan(&mean, &count)
	if err != nil {
		return domain.DomainRating{}, fmt.Errorf("aggregate votes: %w", err)
	}
	if count == 0 {
		return domain.DomainRating{}, domain.ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO domain_ratings (domain, rating, total_votes)
		VALUES (?, ?, ?)
		ON CONFLICT (domain) DO UPDATE SET
			rating = excluded.rating,
			total_votes = excluded.total_votes,
			updated_at = CURRENT_TIMESTAMP
	`, name, mean, count)
	if err != nil {
		return domain.DomainRating{}, fmt.Errorf("upsert aggregate: %w", err)
	}

	rating, err := scanRating(tx.QueryRowContext(ctx, selectRating+` WHERE domain = ?`, name))
	if err != nil {
		return domain.DomainRating{}, err
	}
	return rating, tx.Commit()
}

// UpsertRating unconditionally overwrites the domain's rating (direct
// mode, no vote tracking).
func (s *Store) UpsertRating(ctx context.Context, name string, value float64) (domain.DomainRating, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO domain_ratings (domain, rating, total_votes)
		VALUES (?, ?, 0)
		ON CONFLICT (domain) DO UPDATE SET
			rating = excluded.rating,
			updated_at = CURRENT_TIMESTAMP
	`, name, value)
	if err != nil {
		return domain.DomainRating{}, err
	}
	return s.GetRating(ctx, name)
}

const selectRating = `SELECT domain, rating, total_votes, created_at, updated_at FROM domain_ratings`

func (s *Store) GetRating(ctx context.Context, name string) (domain.DomainRating, error) {
	return scanRating(s.db.QueryRowContext(ctx, selectRating+` WHERE domain = ?`, name))
}

func (s *Store) TopRated(ctx context.Context, limit, minVotes int) ([]domain.DomainRating, error) {
	return s.queryRatings(ctx, selectRating+`
		WHERE total_votes >= ?
		ORDER BY rating DESC, total_votes DESC, domain ASC
		LIMIT ?`, minVotes, limit)
}

func (s *Store) LowestRated(ctx context.Context, limit, minVotes int) ([]domain.DomainRating, error) {
	return s.queryRatings(ctx, selectRating+`
		WHERE total_votes >= ?
		ORDER BY rating ASC, total_votes DESC, domain ASC
		LIMIT ?`, minVotes, limit)
}

func (s *Store) List(ctx context.Context, page, limit, minVotes int) ([]domain.DomainRating, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM domain_ratings WHERE total_votes >= ?`, minVotes,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	items, err := s.queryRatings(ctx, selectRating+`
		WHERE total_votes >= ?
		ORDER BY rating DESC, total_votes DESC, domain ASC
		LIMIT ? OFFSET ?`, minVotes, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) Search(ctx context.Context, query string, limit int) ([]domain.DomainRating, error) {
	// LIKE is case-insensitive for ASCII in SQLite.
	return s.queryRatings(ctx, selectRating+`
		WHERE domain LIKE '%' || ? || '%'
		ORDER BY rating DESC, total_votes DESC, domain ASC
		LIMIT ?`, query, limit)
}

func (s *Store) Stats(ctx context.Context) (domain.Stats, error) {
	var st domain.Stats
	var avg float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM domain_ratings`,
	).Scan(&st.TotalDomains, &avg)
	if err != nil {
		return st, err
	}
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT CASE WHEN user_id <> '' THEN user_id END) FROM votes`,
	).Scan(&st.TotalVotes, &st.TotalUsers)
	if err != nil {
		return st, err
	}
	st.AverageRating = math.Round(avg*10) / 10
	return st, nil
}

// DomainStats summarizes the vote history for one domain. A domain with
// no vote rows, including direct-set aggregate rows, is ErrNotFound.
func (s *Store) DomainStats(ctx context.Context, name string) (domain.DomainVoteStats, error) {
	var count int
	var avg float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM votes WHERE domain = ?`, name,
	).Scan(&count, &avg)
	if err != nil {
		return domain.DomainVoteStats{}, err
	}
	if count == 0 {
		return domain.DomainVoteStats{}, domain.ErrNotFound
	}

	st := domain.DomainVoteStats{Domain: name, Rating: avg, TotalVotes: count}
	err = s.db.QueryRowContext(ctx,
		`SELECT created_at FROM votes WHERE domain = ? ORDER BY created_at ASC, id ASC LIMIT 1`, name,
	).Scan(&st.FirstVoteAt)
	if err != nil {
		return domain.DomainVoteStats{}, err
	}
	err = s.db.QueryRowContext(ctx,
		`SELECT created_at FROM votes WHERE domain = ? ORDER BY created_at DESC, id DESC LIMIT 1`, name,
	).Scan(&st.LastVoteAt)
	if err != nil {
		return domain.DomainVoteStats{}, err
	}
	return st, nil
}

func (s *Store) queryRatings(ctx context.Context, query string, args ...any) ([]domain.DomainRating, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DomainRating
	for rows.Next() {
		var r domain.DomainRating
		if err := rows.Scan(&r.Domain, &r.Rating, &r.TotalVotes, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRating(row rowScanner) (domain.DomainRating, error) {
	var r domain.DomainRating
	err := row.Scan(&r.Domain, &r.Rating, &r.TotalVotes, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DomainRating{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.DomainRating{}, err
	}
	return r, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code()
	return code == sqlitelib.SQLITE_CONSTRAINT_UNIQUE || code == sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY
}
