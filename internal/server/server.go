package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/ghprofile/pkg/health"
	"github.com/dmitrymomot/ghprofile/pkg/profile"
)

// Profiles is the profile surface the API exposes. *ghprofile.Client
// implements it.
type Profiles interface {
	FetchProfile(ctx context.Context, username string, forceRefresh bool) (profile.Profile, error)
	Invalidate(ctx context.Context, username string) error
	ClearCache(ctx context.Context) error
}

// Server is the JSON API in front of a Profiles implementation.
type Server struct {
	profiles Profiles
	opts     *options
	router   chi.Router
	listener net.Listener
	mu       sync.Mutex
}

// New builds the router. Call Run to serve it, or use Handler directly.
func New(profiles Profiles, opts ...Option) *Server {
	s := &Server{
		profiles: profiles,
		opts:     newOptions(opts...),
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Use(
		requestID(),
		logRequests(s.opts.logger),
		recoverer(s.opts.logger),
	)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.opts.logger, newHTTPError(http.StatusNotFound, "Not found", "The requested resource does not exist."))
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.opts.logger, newHTTPError(http.StatusMethodNotAllowed, "Method not allowed", "The method is not supported for this resource."))
	})

	s.router.Get("/health/live", health.LivenessHandler())
	s.router.Get("/health/ready", health.ReadinessHandler(s.opts.checks, health.WithLogger(s.opts.logger)))

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/profiles/{username}", s.getProfile)
		r.Delete("/profiles/{username}/cache", s.invalidateProfile)
		r.Delete("/cache", s.clearCache)
	})
}

// Run serves on the configured address until ctx is done, then shuts down
// gracefully and runs the shutdown hooks in order.
// It returns nil on a clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	log := s.opts.logger

	srv := &http.Server{
		Addr:              s.opts.addr,
		Handler:           s.router,
		ReadTimeout:       s.opts.readTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		WriteTimeout:      s.opts.writeTimeout,
		IdleTimeout:       defaultIdleTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return errors.Join(ErrListen, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}

	for _, hook := range s.opts.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			log.Error("shutdown hook failed", slog.String("error", err.Error()))
		}
	}

	if len(errs) > 0 {
		log.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	log.Info("shutdown completed")
	return nil
}

// Addr returns the listening address once Run has started, or "".
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
