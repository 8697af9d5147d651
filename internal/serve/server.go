// Package serve exposes the analysis pipeline over HTTP: a small embedded
// web page plus a JSON API for reports, articles, rendering, and history.
package serve

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/samsaffron/vidbrief/internal/insight"
	"github.com/samsaffron/vidbrief/internal/serveui"
	"github.com/samsaffron/vidbrief/internal/store"
)

// Config holds the server configuration.
type Config struct {
	Addr        string
	RequireAuth bool
	Token       string
}

// Server is the HTTP server for vidbrief.
type Server struct {
	cfg      Config
	provider insight.Provider
	store    store.Store
	log      *slog.Logger
	router   chi.Router
}

// NewServer creates and configures the HTTP server.
func NewServer(cfg Config, provider insight.Provider, st store.Store, log *slog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		provider: provider,
		store:    st,
		log:      log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleIndex)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		if s.cfg.RequireAuth {
			r.Use(AuthMiddleware(s.cfg.Token))
		}

		r.Post("/api/report", s.handleReport)
		r.Post("/api/article", s.handleArticle)
		r.Post("/api/render", s.handleRender)
		r.Get("/api/history", s.handleHistory)
		r.Get("/api/history/{id}", s.handleHistoryItem)
		r.Delete("/api/history/{id}", s.handleHistoryDelete)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(serveui.IndexHTML())
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// GenerateToken creates a random bearer token for a single serve run.
func GenerateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// IsLoopbackAddr reports whether a listen address binds only to loopback.
// Running without auth is allowed only for such addresses.
func IsLoopbackAddr(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	h := strings.TrimSpace(strings.ToLower(host))
	return h == "127.0.0.1" || h == "localhost" || h == "::1"
}
