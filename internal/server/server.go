// Package server serves the restaurant site: the rendered page, section
// fragments, the no-script form fallbacks, the live endpoint and the
// embedded static assets.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/deltafood/delta/internal/config"
	"github.com/deltafood/delta/internal/contact"
	"github.com/deltafood/delta/internal/content"
	"github.com/deltafood/delta/internal/live"
	"github.com/deltafood/delta/internal/logging"
	"github.com/deltafood/delta/internal/ui"
)

const shutdownTimeout = 10 * time.Second

// Server wires the content store, the section registry and the live
// manager behind a chi router.
type Server struct {
	config    *config.Config
	store     *content.Store
	sections  *ui.Registry
	live      *live.Manager
	submitter contact.Submitter
	session   live.Options
	logger    logging.Logger
	router    chi.Router

	serverMutex sync.RWMutex
	httpServer  *http.Server
}

// Option customizes a Server.
type Option func(*Server)

// WithSubmitter replaces the contact submitter.
func WithSubmitter(s contact.Submitter) Option {
	return func(srv *Server) { srv.submitter = s }
}

// WithSessionOptions sets the template for live sessions, e.g. a manual
// clock in tests. Catalog, Carousel, Contact, Submitter and Logger are
// filled from the server when unset.
func WithSessionOptions(opts live.Options) Option {
	return func(srv *Server) { srv.session = opts }
}

// New creates a server. Nothing listens until Start.
func New(cfg *config.Config, store *content.Store, sections *ui.Registry, logger logging.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{
		config:   cfg,
		store:    store,
		sections: sections,
		logger:   logger.WithComponent("server"),
	}
	s.submitter = contact.NewSimulatedSubmitter(cfg.Contact.SubmitDelay, logger)

	for _, opt := range opts {
		opt(s)
	}
	s.live = s.newManager(s.session)
	s.router = s.buildRouter()
	return s
}

func (s *Server) newManager(opts live.Options) *live.Manager {
	if opts.Carousel == (config.CarouselConfig{}) {
		opts.Carousel = s.config.Carousel
	}
	if opts.Contact == (config.ContactConfig{}) {
		opts.Contact = s.config.Contact
	}
	if opts.Logger == nil {
		opts.Logger = s.logger
	}
	if opts.Submitter == nil {
		opts.Submitter = s.submitter
	}

	return live.NewManager(live.ManagerConfig{
		OriginPatterns: originPatterns(s.config.Server.AllowedOrigins),
		Session:        opts,
		Catalog:        s.store.Catalog,
		Logger:         s.logger,
	})
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/sections", s.handleSections)
	r.Get("/sections/{name}", s.handleSection)
	r.Post("/contact", s.handleContact)
	r.Post("/newsletter", s.handleNewsletter)
	r.Get("/healthz", s.handleHealth)
	r.Get("/live", s.live.HandleLive)
	r.Handle("/static/*", http.StripPrefix("/static/", staticHandler()))

	return r
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Live returns the live session manager.
func (s *Server) Live() *live.Manager { return s.live }

// Start listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	httpServer := s.httpServer
	s.serverMutex.Unlock()

	events := s.store.Watch()
	defer s.store.Unwatch(events)
	go s.live.Follow(ctx, events)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Server listening", "addr", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown closes live sessions first, then stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	liveErr := s.live.Shutdown(ctx)

	s.serverMutex.RLock()
	httpServer := s.httpServer
	s.serverMutex.RUnlock()

	var httpErr error
	if httpServer != nil {
		httpErr = httpServer.Shutdown(ctx)
	}
	s.logger.Info(ctx, "Server stopped")
	return errors.Join(liveErr, httpErr)
}

// originPatterns converts allowed origins to the host patterns the
// websocket handshake checks.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := parseOrigin(o); err == nil {
			out = append(out, u)
		}
	}
	return out
}
