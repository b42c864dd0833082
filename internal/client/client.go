// Package client is a typed HTTP client for the rating backend. Transport
// failures and non-success statuses surface as domain.ErrRemoteUnavailable
// so callers can fall through to cached or static data; a 404 is the
// distinct domain.ErrNotFound.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sitetrust/internal/domain"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the backend at baseURL. A zero timeout uses the
// default; every call is bounded so the fallback resolver never blocks
// indefinitely.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type ratingPayload struct {
	Domain      string    `json:"domain"`
	Rating      float64   `json:"rating"`
	TotalVotes  int       `json:"total_votes"`
	LastUpdated time.Time `json:"last_updated"`
}

func (p ratingPayload) toDomain() domain.DomainRating {
	return domain.DomainRating{
		Domain:     p.Domain,
		Rating:     p.Rating,
		TotalVotes: p.TotalVotes,
		UpdatedAt:  p.LastUpdated,
	}
}

// Health probes the backend's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.get(ctx, "/health", nil, &out)
}

// GetRating fetches the current aggregate for a domain.
func (c *Client) GetRating(ctx context.Context, name string) (domain.DomainRating, error) {
	var out ratingPayload
	if err := c.get(ctx, "/api/rating/"+url.PathEscape(name), nil, &out); err != nil {
		return domain.DomainRating{}, err
	}
	return out.toDomain(), nil
}

// SubmitVote posts one vote and returns the recomputed aggregate.
func (c *Client) SubmitVote(ctx context.Context, name string, rating int, voterID string) (domain.DomainRating, error) {
	body := map[string]any{"domain": name, "rating": rating}
	if voterID != "" {
		body["user_id"] = voterID
	}
	var out struct {
		Domain     string  `json:"domain"`
		NewRating  float64 `json:"new_rating"`
		TotalVotes int     `json:"total_votes"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/rating", body, &out); err != nil {
		return domain.DomainRating{}, err
	}
	return domain.DomainRating{Domain: out.Domain, Rating: out.NewRating, TotalVotes: out.TotalVotes}, nil
}

// TopRated lists the highest rated domains.
func (c *Client) TopRated(ctx context.Context, limit, minVotes int) ([]domain.DomainRating, error) {
	return c.listRatings(ctx, "/api/domains/top", limit, minVotes)
}

// LowestRated lists the lowest rated domains.
func (c *Client) LowestRated(ctx context.Context, limit, minVotes int) ([]domain.DomainRating, error) {
	return c.listRatings(ctx, "/api/domains/lowest", limit, minVotes)
}

// Stats fetches the platform-wide aggregate snapshot.
func (c *Client) Stats(ctx context.Context) (domain.Stats, error) {
	var out struct {
		TotalDomains  int     `json:"total_domains"`
		TotalVotes    int     `json:"total_votes"`
		TotalUsers    int     `json:"total_users"`
		AverageRating float64 `json:"average_rating"`
	}
	if err := c.get(ctx, "/api/stats", nil, &out); err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{
		TotalDomains:  out.TotalDomains,
		TotalVotes:    out.TotalVotes,
		TotalUsers:    out.TotalUsers,
		AverageRating: out.AverageRating,
	}, nil
}

// DomainStats fetches the vote-history summary for one domain.
func (c *Client) DomainStats(ctx context.Context, name string) (domain.DomainVoteStats, error) {
	var out struct {
		Domain      string    `json:"domain"`
		Rating      float64   `json:"rating"`
		TotalVotes  int       `json:"total_votes"`
		FirstVoteAt time.Time `json:"first_vote_at"`
		LastVoteAt  time.Time `json:"last_vote_at"`
	}
	if err := c.get(ctx, "/api/domains/"+url.PathEscape(name)+"/stats", nil, &out); err != nil {
		return domain.DomainVoteStats{}, err
	}
	return domain.DomainVoteStats{
		Domain:      out.Domain,
		Rating:      out.Rating,
		TotalVotes:  out.TotalVotes,
		FirstVoteAt: out.FirstVoteAt,
		LastVoteAt:  out.LastVoteAt,
	}, nil
}

func (c *Client) listRatings(ctx context.Context, path string, limit, minVotes int) ([]domain.DomainRating, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if minVotes > 0 {
		params.Set("min_votes", strconv.Itoa(minVotes))
	}
	var out []ratingPayload
	if err := c.get(ctx, path, params, &out); err != nil {
		return nil, err
	}
	items := make([]domain.DomainRating, 0, len(out))
	for _, p := range out {
		items = append(items, p.toDomain())
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return err
		}
		payload = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return domain.ErrDuplicateVote
	case resp.StatusCode == http.StatusBadRequest:
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return domain.NewValidationError("request", e.Error)
	default:
		return fmt.Errorf("%w: status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}
}
