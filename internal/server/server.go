// Package server exposes the socialmem operations over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yukiacerium/socialmem/internal/engine"
	"github.com/yukiacerium/socialmem/internal/metrics"
)

// Server is the socialmem HTTP API server.
type Server struct {
	engine  *engine.Engine
	metrics *metrics.Metrics
	log     *slog.Logger
	router  chi.Router
	version string
	started time.Time
}

// New creates a Server around an engine. metrics may be nil.
func New(eng *engine.Engine, m *metrics.Metrics, log *slog.Logger, version string) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		engine:  eng,
		metrics: m,
		log:     log,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/affection", s.instrument("get_affection_state", s.handleAffectionState))
			r.Post("/affection/events", s.instrument("record_affection_event", s.handleRecordEvent))
			r.Get("/affection/history", s.instrument("get_interaction_history", s.handleHistory))
			r.Get("/bonds", s.instrument("get_bond_info", s.handleBondInfo))

			r.Post("/memories", s.instrument("record_memory", s.handleRecordMemory))
			r.Get("/memories", s.instrument("query_memory", s.handleQueryMemories))
			r.Get("/memories/search", s.instrument("search_memory", s.handleSearchMemories))

			r.Get("/summary", s.instrument("get_user_summary", s.handleSummary))
			r.Get("/profile", s.instrument("get_user_profile", s.handleProfileText))
			r.Get("/context", s.instrument("render_context", s.handleContext))

			r.Post("/messages", s.instrument("inbound_message", s.handleInboundMessage))
		})
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	s.router = r
}

// instrument wraps a handler with per-operation metrics. Status is judged
// from the response code the handler wrote.
func (s *Server) instrument(operation string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		h(ww, r)

		status := "ok"
		if ww.Status() >= 400 {
			status = "error"
		}
		s.metrics.RecordOperation(operation, status, time.Since(start))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}
