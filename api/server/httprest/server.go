// Package httprest implements the HTTP server lifecycle (New, Start,
// Stop) as a small functional-options type, mirroring the shape of
// Prysm's api/server/httprest.Server.
package httprest

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Server wraps a net/http.Server bound to a gorilla/mux router, with
// rs/cors middleware applied.
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	log        *logrus.Entry
}

// Option configures a Server at construction time.
type Option func(*Server)

// WithReadTimeout sets the server's read timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) { s.httpServer.ReadTimeout = d }
}

// WithWriteTimeout sets the server's write timeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) { s.httpServer.WriteTimeout = d }
}

// New constructs a Server bound to addr, routing through router with
// permissive CORS applied (the spec explicitly treats CORS middleware as
// an external, out-of-scope-to-reimplement concern — we still wire the
// real library).
func New(addr string, router *mux.Router, log *logrus.Entry, opts ...Option) *Server {
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	}).Handler(router)

	s := &Server{
		router: router,
		log:    log.WithField("component", "httprest"),
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins serving in a background goroutine. Listen errors other
// than a clean shutdown are logged.
func (s *Server) Start() {
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("starting HTTP server")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("HTTP server stopped unexpectedly")
		}
	}()
}

// Stop gracefully shuts the server down, bounded by ctx.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
