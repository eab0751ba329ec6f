// Package web serves chromagate to browser clients: a small JSON API plus a
// websocket that carries commands in and snapshots out, one engine per
// connection.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/chromagate/internal/puzzle"
)

// Config holds settings for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// AllowedOrigins lists origins allowed to open a websocket.
	// Empty allows only same-origin requests; "*" allows any.
	AllowedOrigins []string

	// Seed seeds each connection's portal RNG. Zero is time-based.
	Seed int64
}

// Server is the HTTP and websocket front end.
type Server struct {
	config   Config
	levels   []puzzle.Level
	logger   *log.Logger
	r        *chi.Mux
	upgrader websocket.Upgrader
	http     *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config, levels []puzzle.Level, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "chromagate-web",
		})
	}

	s := &Server{
		config: cfg,
		levels: levels,
		logger: logger,
		r:      chi.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(cfg.AllowedOrigins),
		},
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.requestLogger)

	// Websocket handlers outlive any request timeout.
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Get("/health", s.handleHealth)
		r.Get("/levels", s.handleLevels)
	})
	s.r.Get("/ws", s.handleWS)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the router (useful for tests).
func (s *Server) Router() http.Handler {
	return s.r
}

// ListenAndServe starts the server and blocks until SIGINT or SIGTERM.
func (s *Server) ListenAndServe() error {
	s.http = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("starting web server", "address", s.config.Address, "levels", len(s.levels))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		return fmt.Errorf("web: listen: %w", err)
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. Open websockets are hijacked
// connections and end when their clients disconnect.
func (s *Server) Shutdown() error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "levels": len(s.levels)})
}

type levelEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	out := make([]levelEntry, len(s.levels))
	for i, lvl := range s.levels {
		out[i] = levelEntry{ID: lvl.ID, Name: lvl.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()

	s.logger.Info("connection opened", "conn", id, "remote", r.RemoteAddr)
	start := time.Now()
	newSession(id, conn, s.levels, puzzle.NewRandomSource(s.config.Seed), s.logger).run()
	s.logger.Info("connection closed", "conn", id, "duration", time.Since(start).Round(time.Second))
}

// requestLogger logs each request with its chi request ID.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // client may have gone away
	json.NewEncoder(w).Encode(v)
}

// checkOrigin builds the upgrader's origin policy.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if len(allowed) == 0 {
			u, err := url.Parse(origin)
			return err == nil && strings.EqualFold(u.Host, r.Host)
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(strings.TrimRight(a, "/"), origin) {
				return true
			}
		}
		return false
	}
}
