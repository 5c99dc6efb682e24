package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"soulsreq/internal/game"
	"soulsreq/internal/metrics"
	"soulsreq/internal/session"
)

const cookieName = "soulsreq_sid"

// Server exposes the usability engine as a JSON API.
type Server struct {
	Registry *game.Registry
	Presets  *game.PresetTable
	Store    session.Store[session.PlayerState]

	selections *lru.Cache[string, *session.Selection]
}

// NewServer wires a server. sessionCache bounds how many per-session
// dataset selections are kept in memory.
func NewServer(reg *game.Registry, presets *game.PresetTable, store session.Store[session.PlayerState], sessionCache int) (*Server, error) {
	if sessionCache <= 0 {
		sessionCache = 1
	}
	sel, err := lru.New[string, *session.Selection](sessionCache)
	if err != nil {
		return nil, err
	}
	return &Server{Registry: reg, Presets: presets, Store: store, selections: sel}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/games", s.handleGames)
		r.Get("/games/{id}/presets", s.handlePresets)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", s.handleSession)
			r.Post("/game", s.handleSelectGame)
			r.Put("/stats", s.handleStats)
			r.Post("/preset", s.handleApplyPreset)
			r.Get("/armaments", s.handleArmaments)
			r.Get("/sheet.pdf", s.handleSheet)
		})
	})
	return r
}

// requestLogger logs every request and counts it by route pattern.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		slog.DebugContext(r.Context(), "http request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
