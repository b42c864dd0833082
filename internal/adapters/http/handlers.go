package httpadapter

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sitetrust/internal/domain"
)

type ratingResponse struct {
	Domain      string    `json:"domain"`
	Rating      float64   `json:"rating"`
	TotalVotes  int       `json:"total_votes"`
	LastUpdated time.Time `json:"last_updated"`
}

func toRatingResponse(r domain.DomainRating) ratingResponse {
	return ratingResponse{
		Domain:      r.Domain,
		Rating:      r.Rating,
		TotalVotes:  r.TotalVotes,
		LastUpdated: r.UpdatedAt,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  s.database,
		"version":   s.version,
	})
}

func (s *Server) handleGetRating(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "domain")
	rating, err := s.ratings.GetRating(r.Context(), name)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRatingResponse(rating))
}

type submitVoteRequest struct {
	Domain string `json:"domain"`
	Rating int    `json:"rating"`
	UserID string `json:"user_id"`
}

func (s *Server) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	var req submitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := s.ratings.SubmitVote(r.Context(), req.Domain, req.Rating, req.UserID, clientAddr(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Rating submitted successfully",
		"domain":      updated.Domain,
		"new_rating":  updated.Rating,
		"total_votes": updated.TotalVotes,
	})
}

type setRatingRequest struct {
	Domain string  `json:"domain"`
	Rating float64 `json:"rating"`
}

func (s *Server) handleSetRating(w http.ResponseWriter, r *http.Request) {
	var req setRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := s.ratings.SetRating(r.Context(), req.Domain, req.Rating)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Rating updated successfully",
		"domain":  updated.Domain,
		"rating":  updated.Rating,
	})
}

func (s *Server) handleTopRated(w http.ResponseWriter, r *http.Request) {
	items, err := s.ratings.TopRated(r.Context(), queryInt(r, "limit"), queryInt(r, "min_votes"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRatingResponses(items))
}

func (s *Server) handleLowestRated(w http.ResponseWriter, r *http.Request) {
	items, err := s.ratings.LowestRated(r.Context(), queryInt(r, "limit"), queryInt(r, "min_votes"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRatingResponses(items))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	items, err := s.ratings.Search(r.Context(), r.URL.Query().Get("q"), queryInt(r, "limit"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRatingResponses(items))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := s.ratings.List(r.Context(), queryInt(r, "page"), queryInt(r, "limit"), queryInt(r, "min_votes"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data": toRatingResponses(page.Items),
		"pagination": map[string]int{
			"page":  page.Page,
			"limit": page.Limit,
			"total": page.Total,
			"pages": page.Pages,
		},
	})
}

func (s *Server) handleDomainStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.ratings.DomainStats(r.Context(), chi.URLParam(r, "domain"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"domain":        st.Domain,
		"rating":        st.Rating,
		"total_votes":   st.TotalVotes,
		"first_vote_at": st.FirstVoteAt,
		"last_vote_at":  st.LastVoteAt,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.ratings.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_domains":  st.TotalDomains,
		"total_votes":    st.TotalVotes,
		"total_users":    st.TotalUsers,
		"average_rating": st.AverageRating,
	})
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500 and gets logged; the client only sees a
// generic message.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, domain.ErrDuplicateVote):
		writeError(w, http.StatusConflict, "Vote already recorded for this domain")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Domain not found")
	default:
		s.log.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toRatingResponses(items []domain.DomainRating) []ratingResponse {
	out := make([]ratingResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toRatingResponse(r))
	}
	return out
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
