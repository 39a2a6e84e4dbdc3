// Package server wires the REST and GraphQL surfaces into one HTTP server.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/blogcore/blogd/pkg/gql"
	"github.com/blogcore/blogd/pkg/rest"
)

const shutdownTimeout = 10 * time.Second

// Config holds the server configuration.
type Config struct {
	Addr string
}

// Store is everything both surfaces need from the data-access layer.
type Store interface {
	rest.Store
	gql.Store
}

// Server runs the combined REST + GraphQL HTTP server.
type Server struct {
	http *http.Server
	log  zerolog.Logger
}

// New builds the handler chain for both surfaces.
func New(st Store, log zerolog.Logger, cfg Config) *Server {
	mux := http.NewServeMux()

	rest.NewHandler(st, log).Register(mux)
	mux.Handle("/graphql", gql.NewHandler(gql.NewResolver(st, log), log))
	mux.HandleFunc("GET /{$}", index)

	// Everything not matched above gets a JSON 404.
	mux.HandleFunc("/", notFound)

	handler := recoverer(log, corsHeaders(requestLogger(log, mux)))

	return &Server{
		http: &http.Server{Addr: cfg.Addr, Handler: handler},
		log:  log,
	}
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.http.Addr).Msg("server listening")
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// index describes the API on the root path.
func index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Blog API Server",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"posts":   "/posts",
			"users":   "/users",
			"health":  "/health",
			"graphql": "/graphql",
		},
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error":   "Endpoint not found",
		"message": "The requested URL was not found on the server",
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
