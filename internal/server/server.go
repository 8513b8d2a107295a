// Package server exposes the store over a JSON REST API and serves the
// progress dashboard
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ayoisaiah/focusflow/assistant"
	"github.com/ayoisaiah/focusflow/internal/cache"
	"github.com/ayoisaiah/focusflow/store"
)

const (
	shutdownTimeout = 10 * time.Second
	maxBodyBytes    = 1 << 20
)

// Assistant answers the task assistant routes.
type Assistant interface {
	Analyze(ctx context.Context, title, description string) assistant.Suggestion
	Groups(ctx context.Context, tasks []assistant.TaskInput) []assistant.GroupSuggestion
	BreakDown(ctx context.Context, title, description string) []string
}

// Options configures a Server.
type Options struct {
	Logger       *slog.Logger
	Cache        *cache.Cache
	Now          func() time.Time
	Addr         string
	DefaultUser  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	db          store.DB
	ai          Assistant
	cache       *cache.Cache
	log         *slog.Logger
	now         func() time.Time
	http        *http.Server
	defaultUser string
}

func New(db store.DB, ai Assistant, opts Options) *Server {
	s := &Server{
		db:          db,
		ai:          ai,
		cache:       opts.Cache,
		log:         opts.Logger,
		now:         opts.Now,
		defaultUser: opts.DefaultUser,
	}

	if s.log == nil {
		s.log = slog.Default()
	}

	if s.now == nil {
		s.now = time.Now
	}

	if s.cache == nil {
		s.cache = cache.New(cache.DefaultSize, cache.DefaultTTL)
	}

	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.log.Handler(), slog.LevelError),
	}

	return s
}

// Handler returns the API and dashboard routes wrapped in the middleware
// chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	s.routes(mux)

	return chain(
		mux,
		requestLogger(s.log),
		recoverer,
		currentUser(s.defaultUser),
	)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("starting server", slog.String("addr", s.http.Addr))

		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")

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
