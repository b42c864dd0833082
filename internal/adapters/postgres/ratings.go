package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"sitetrust/internal/domain"
)

// uniqueViolation is the SQLSTATE for a unique-constraint violation.
const uniqueViolation = "23505"

// InsertVote appends a vote row, mapping a (domain, user_id, ip_address)
// uniqueness violation to domain.ErrDuplicateVote.
func (db *DB) InsertVote(ctx context.Context, vote domain.Vote) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO votes (id, domain, rating, user_id, ip_address)
		VALUES ($1, $2, $3, $4, $5)
	`, vote.ID, vote.Domain, vote.Rating, vote.VoterID, vote.IPAddress)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicateVote
	}
	return err
}

// RecomputeRating derives the mean and count from all votes for the
// domain and upserts the aggregate row, all inside one transaction.
func (db *DB) RecomputeRating(ctx context.Context, name string) (domain.DomainRating, error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.DomainRating{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	var mean float64
	var count int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM votes WHERE domain = $1`, name,
	).Scan(&mean, &count)
	if err != nil {
		return domain.DomainRating{}, fmt.Errorf("aggregate votes: %w", err)
	}
	if count == 0 {
		err = domain.ErrNotFound
		return domain.DomainRating{}, err
	}

	var out domain.DomainRating
	err = tx.QueryRow(ctx, `
		INSERT INTO domain_ratings (domain, rating, total_votes)
		VALUES ($1, $2, $3)
		ON CONFLICT (domain) DO UPDATE SET
			rating = EXCLUDED.rating,
			total_votes = EXCLUDED.total_votes,
			updated_at = now()
		RETURNING domain, rating, total_votes, created_at, updated_at
	`, name, mean, count).Scan(&out.Domain, &out.Rating, &out.TotalVotes, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return domain.DomainRating{}, fmt.Errorf("upsert aggregate: %w", err)
	}
	return out, nil
}

// UpsertRating unconditionally overwrites the domain's rating (direct
// mode, no vote tracking).
func (db *DB) UpsertRating(ctx context.Context, name string, value float64) (domain.DomainRating, error) {
	var out domain.DomainRating
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO domain_ratings (domain, rating, total_votes)
		VALUES ($1, $2, 0)
		ON CONFLICT (domain) DO UPDATE SET
			rating = EXCLUDED.rating,
			updated_at = now()
		RETURNING domain, rating, total_votes, created_at, updated_at
	`, name, value).Scan(&out.Domain, &out.Rating, &out.TotalVotes, &out.CreatedAt, &out.UpdatedAt)
	return out, err
}

const selectRating = `SELECT domain, rating, total_votes, created_at, updated_at FROM domain_ratings`

func (db *DB) GetRating(ctx context.Context, name string) (domain.DomainRating, error) {
	var out domain.DomainRating
	err := db.Pool.QueryRow(ctx, selectRating+` WHERE domain = $1`, name).
		Scan(&out.Domain, &out.Rating, &out.TotalVotes, &out.CreatedAt, &out.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DomainRating{}, domain.ErrNotFound
	}
	return out, err
}

func (db *DB) TopRated(ctx context.Context, limit, minVotes int) ([]domain.DomainRating, error) {
	return db.queryRatings(ctx, selectRating+`
		WHERE total_votes >= $1
		ORDER BY rating DESC, total_votes DESC, domain ASC
		LIMIT $2`, minVotes, limit)
}

func (db *DB) LowestRated(ctx context.Context, limit, minVotes int) ([]domain.DomainRating, error) {
	return db.queryRatings(ctx, selectRating+`
		WHERE total_votes >= $1
		ORDER BY rating ASC, total_votes DESC, domain ASC
		LIMIT $2`, minVotes, limit)
}

func (db *DB) List(ctx context.Context, page, limit, minVotes int) ([]domain.DomainRating, int, error) {
	var total int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM domain_ratings WHERE total_votes >= $1`, minVotes,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	items, err := db.queryRatings(ctx, selectRating+`
		WHERE total_votes >= $1
		ORDER BY rating DESC, total_votes DESC, domain ASC
		LIMIT $2 OFFSET $3`, minVotes, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (db *DB) Search(ctx context.Context, query string, limit int) ([]domain.DomainRating, error) {
	return db.queryRatings(ctx, selectRating+`
		WHERE domain ILIKE '%' || $1 || '%'
		ORDER BY rating DESC, total_votes DESC, domain ASC
		LIMIT $2`, query, limit)
}

func (db *DB) Stats(ctx context.Context) (domain.Stats, error) {
	var st domain.Stats
	var avg float64
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM domain_ratings`,
	).Scan(&st.TotalDomains, &avg)
	if err != nil {
		return st, err
	}
	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT user_id) FILTER (WHERE user_id <> '') FROM votes`,
	).Scan(&st.TotalVotes, &st.TotalUsers)
	if err != nil {
		return st, err
	}
	st.AverageRating = math.Round(avg*10) / 10
	return st, nil
}

// DomainStats summarizes the vote history for one domain. A domain with
// no vote rows, including direct-set aggregate rows, is ErrNotFound.
func (db *DB) DomainStats(ctx context.Context, name string) (domain.DomainVoteStats, error) {
	var count int
	var avg float64
	var first, last *time.Time
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(rating), 0), MIN(created_at), MAX(created_at)
		FROM votes WHERE domain = $1
	`, name).Scan(&count, &avg, &first, &last)
	if err != nil {
		return domain.DomainVoteStats{}, err
	}
	if count == 0 || first == nil || last == nil {
		return domain.DomainVoteStats{}, domain.ErrNotFound
	}
	return domain.DomainVoteStats{
		Domain:      name,
		Rating:      avg,
		TotalVotes:  count,
		FirstVoteAt: *first,
		LastVoteAt:  *last,
	}, nil
}

func (db *DB) queryRatings(ctx context.Context, query string, args ...any) ([]domain.DomainRating, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
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
