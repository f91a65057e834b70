package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/quake-impact-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-impact-service/internal/domain"
	"github.com/couchcryptid/quake-impact-service/internal/observability"
)

// FeedSource supplies a fresh feed snapshot for one request.
type FeedSource interface {
	RecentEvents(ctx context.Context) ([]domain.SeismicEvent, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the impact and listing endpoints plus health, readiness,
// and metrics routes.
type Server struct {
	httpServer *http.Server
	feed       FeedSource
	opts       domain.Options
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates the HTTP server. CORS is wide open on purpose: the
// browser client may be served from file:// or any other host.
func NewServer(addr string, feed FeedSource, ready ReadinessChecker, opts domain.Options, metrics *observability.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		feed:    feed,
		opts:    opts,
		metrics: metrics,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/impact", s.handleImpact)
	r.Get("/earthquakes", s.handleListing)
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", handleReady(ready))
	r.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: r,
		// WriteTimeout must outlast the bounded feed fetch inside handlers.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// errorResponse is the payload shape for all non-success conditions.
// Feed problems ship with HTTP 200; callers inspect the error field.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.metrics.ImpactRequests.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	events, ok := s.loadFeed(w, r, s.metrics.ImpactRequests)
	if !ok {
		return
	}

	result := domain.Evaluate(events, q, s.opts)
	s.metrics.ImpactRequests.WithLabelValues("ok").Inc()
	s.metrics.ImpactLevels.WithLabelValues(string(result.ImpactLevel)).Inc()
	writeJSON(w, http.StatusOK, result)
}

// listedEvent is the passthrough projection of one feed feature. Depth is
// rounded to one decimal; sign and ordering come straight from the feed.
type listedEvent struct {
	Place     string   `json:"place"`
	Magnitude *float64 `json:"magnitude"`
	DepthKm   float64  `json:"depth_km"`
	Lat       float64  `json:"latitude"`
	Lon       float64  `json:"longitude"`
}

type listingResponse struct {
	Count       int           `json:"count"`
	Earthquakes []listedEvent `json:"earthquakes"`
}

func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	events, ok := s.loadFeed(w, r, s.metrics.ListingRequests)
	if !ok {
		return
	}

	out := make([]listedEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, listedEvent{
			Place:     ev.Place,
			Magnitude: ev.Magnitude,
			DepthKm:   math.Round(ev.DepthKm*10) / 10,
			Lat:       ev.Lat,
			Lon:       ev.Lon,
		})
	}

	s.metrics.ListingRequests.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, listingResponse{Count: len(out), Earthquakes: out})
}

// loadFeed fetches the feed and writes the error payload for the two
// non-success conditions: upstream failure and an empty feed. The second
// return value is false when a payload was already written.
func (s *Server) loadFeed(w http.ResponseWriter, r *http.Request, requests *prometheus.CounterVec) ([]domain.SeismicEvent, bool) {
	events, err := s.feed.RecentEvents(r.Context())
	if err != nil {
		requests.WithLabelValues("feed_error").Inc()
		writeJSON(w, http.StatusOK, errorResponse{
			Error: "cannot fetch earthquake data",
			Kind:  string(usgs.KindOf(err)),
		})
		return nil, false
	}
	if len(events) == 0 {
		requests.WithLabelValues("no_data").Inc()
		writeJSON(w, http.StatusOK, errorResponse{
			Error: "no earthquake data available",
			Kind:  "no_data",
		})
		return nil, false
	}
	return events, true
}

func parseQuery(r *http.Request) (domain.Query, error) {
	params := r.URL.Query()

	lat, err := strconv.ParseFloat(params.Get("lat"), 64)
	if err != nil {
		return domain.Query{}, errors.New("lat is required and must be a number")
	}
	lon, err := strconv.ParseFloat(params.Get("lon"), 64)
	if err != nil {
		return domain.Query{}, errors.New("lon is required and must be a number")
	}

	return domain.Query{
		Lat:      lat,
		Lon:      lon,
		Building: domain.ParseBuildingType(params.Get("building")),
	}, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
