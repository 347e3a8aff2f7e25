// Package server exposes a lexicon over HTTP.
//
// The server serves lookup and prefix-completion queries against the lexicon
// held by a [lexicon.Loader], so a manifest edit on disk (or a POST to
// /v1/reload) swaps the served lexicon without a restart. Prometheus metrics
// are exposed on /metrics.
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polytrie/polytrie/internal/lexicon"
	"github.com/polytrie/polytrie/pkg/errors"
)

// Server holds all HTTP handler dependencies.
type Server struct {
	loader *lexicon.Loader
	logger *log.Logger
	router chi.Router
}

// New creates the HTTP handler and registers all routes.
func New(loader *lexicon.Loader, logger *log.Logger) *Server {
	s := &Server{loader: loader, logger: logger, router: chi.NewRouter()}

	s.router.Use(s.requestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/v1/lookup", s.lookup)
	s.router.Get("/v1/completions", s.completions)
	s.router.Get("/v1/graph", s.graph)
	s.router.Post("/v1/reload", s.reload)
	s.router.Get("/healthz", s.healthz)
	s.router.Get("/readyz", s.readyz)
	s.router.Handle("/metrics", promhttp.Handler())

	registerMetricHooks()
	if lex := loader.Lexicon(); lex != nil {
		lexiconNodes.Set(float64(lex.NodeCount()))
	}
	loader.OnChange(func(lex *lexicon.Lexicon) {
		lexiconNodes.Set(float64(lex.NodeCount()))
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// lookupResponse is the envelope for GET /v1/lookup.
type lookupResponse struct {
	Query string `json:"query"`
	Value string `json:"value,omitempty"`
	Found bool   `json:"found"`
}

// GET /v1/lookup?q=<query> resolves a single key path.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	// Hit/miss counts and latency are recorded by the lookup hooks.
	value, found, err := s.loader.Lexicon().Lookup(r.Context(), query)
	if err != nil {
		lookupsTotal.WithLabelValues("invalid").Inc()
		writeError(w, statusForCode(errors.GetCode(err)), errors.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, lookupResponse{Query: query, Value: value, Found: found})
}

// completionsResponse is the envelope for GET /v1/completions.
type completionsResponse struct {
	Prefix      string               `json:"prefix"`
	Completions []lexicon.Completion `json:"completions"`
}

// GET /v1/completions?prefix=<prefix> lists entries under a prefix.
func (s *Server) completions(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")

	out, err := s.loader.Lexicon().Completions(r.Context(), prefix)
	if err != nil {
		writeError(w, statusForCode(errors.GetCode(err)), errors.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, completionsResponse{Prefix: prefix, Completions: out})
}

// GET /v1/graph returns the serialized form of the served lexicon.
func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.loader.Lexicon().Graph())
}

// POST /v1/reload rebuilds the lexicon from the manifest on disk.
func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	lex, err := s.loader.Reload(r.Context())
	if err != nil {
		writeError(w, statusForCode(errors.GetCode(err)), errors.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reloaded": true,
		"name":     lex.Name,
		"nodes":    lex.NodeCount(),
	})
}

// GET /healthz always returns 200 (liveness probe).
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz returns 503 until a lexicon is loaded.
func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	lex := s.loader.Lexicon()
	if lex == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ready",
		"lexicon": lex.Name,
		"nodes":   lex.NodeCount(),
	})
}

// requestIDHeader carries the per-request UUID back to the client.
const requestIDHeader = "X-Request-ID"

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		requestsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", w.Header().Get(requestIDHeader),
		)
	})
}
