// Package httpadapter exposes the rating service over JSON/HTTP.
package httpadapter

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"sitetrust/internal/domain"
	"sitetrust/internal/services/ratings"
)

// Rate-limit defaults: 100 requests per 15-minute window per client
// address.
const (
	defaultRateLimit  = 100
	defaultRateWindow = 15 * time.Minute
)

type Server struct {
	ratings *ratings.Service
	mode    domain.RatingMode
	log     *zap.Logger

	database string
	version  string

	rateLimit  int
	rateWindow time.Duration

	stop      chan struct{}
	closeOnce sync.Once
}

// Option adjusts optional server settings.
type Option func(*Server)

// WithRateLimit overrides the per-address request budget.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(s *Server) {
		s.rateLimit = requests
		s.rateWindow = window
	}
}

// New builds a server for the given write mode. database and version are
// reported by the health endpoint.
func New(svc *ratings.Service, mode domain.RatingMode, database, version string, log *zap.Logger, opts ...Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		ratings:    svc,
		mode:       mode,
		log:        log,
		database:   database,
		version:    version,
		rateLimit:  defaultRateLimit,
		rateWindow: defaultRateWindow,
		stop:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close stops background work owned by the server's middleware. Safe to
// call more than once.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.stop) })
}

// Routes returns the chi router with all endpoints mounted. Exactly one
// of POST (votes mode) or PUT (direct mode) is routed for /api/rating;
// the deployment's mode decides which, never both.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(rateLimiter(s.rateLimit, s.rateWindow, s.stop))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/rating/{domain}", s.handleGetRating)
		switch s.mode {
		case domain.ModeDirect:
			r.Put("/rating", s.handleSetRating)
		default:
			r.Post("/rating", s.handleSubmitVote)
		}
		r.Get("/domains/top", s.handleTopRated)
		r.Get("/domains/lowest", s.handleLowestRated)
		r.Get("/domains/search", s.handleSearch)
		r.Get("/domains/{domain}/stats", s.handleDomainStats)
		r.Get("/domains", s.handleList)
		r.Get("/stats", s.handleStats)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})
	return r
}
