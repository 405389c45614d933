// Package api provides the HTTP API server and handlers for the TableMatch server.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tablematch/tablematch-server/internal/service"
	"github.com/tablematch/tablematch-server/internal/store/sqlite"
)

// apiVersion is the version reported in the OpenAPI document.
const apiVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store             *sqlite.Store
	reservations      *service.ReservationService
	router            *chi.Mux
	api               huma.API
	logger            *slog.Logger
	actionRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *sqlite.Store, reservations *service.ReservationService, serverName string, logger *slog.Logger) *Server {
	s := &Server{
		store:             st,
		reservations:      reservations,
		router:            chi.NewRouter(),
		logger:            logger,
		actionRateLimiter: NewRateLimiter(60, time.Minute, 20),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig(serverName, apiVersion)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerReservationRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server resources.
func (s *Server) Close() {
	s.actionRateLimiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Identity"},
		MaxAge:         300,
	}))
	s.router.Use(actionRateLimit(s.actionRateLimiter, s.logger))
}

// actionRateLimit throttles the token-bearing action endpoints. Reads are
// left alone so polling a reservation never competes with RSVP traffic.
func actionRateLimit(limiter *RateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	limited := RateLimitMiddleware(limiter, logger)
	return func(next http.Handler) http.Handler {
		throttled := limited(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isActionPath(r) {
				throttled.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isActionPath(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	switch r.URL.Path {
	case "/api/v1/invites/respond", "/api/v1/reservations/cancel":
		return true
	}
	return false
}
