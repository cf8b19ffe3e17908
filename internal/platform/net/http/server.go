package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"producescan/internal/platform/config"
	"producescan/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// Server owns the chi mux and the listener the API is served on
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

// NewServer reads API_PORT and the API_*_TIMEOUT keys from cfg
// each hook gets the mux before any route is mounted
func NewServer(cfg config.Conf, hooks ...func(*chi.Mux)) *Server {
	api := cfg.Prefix("API_")
	m := chi.NewRouter()
	for _, h := range hooks {
		h(m)
	}
	return &Server{
		mux:   m,
		grace: api.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
		srv: &stdhttp.Server{
			Addr:              api.MayString("PORT", ":4000"),
			Handler:           m,
			ReadHeaderTimeout: api.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
			IdleTimeout:       api.MayDuration("IDLE_TIMEOUT", 2*time.Minute),
		},
	}
}

// Router exposes the mux through the Router facade
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is canceled or the listener fails
// on cancel in flight requests get the shutdown grace period to finish
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	log := logger.Named("http")
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.srv.Serve(ln); !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Dur("grace", s.grace).Msg("http shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), s.grace)
		defer cancel()
		return s.Shutdown(sctx)
	})
	return g.Wait()
}

// Shutdown stops accepting connections and waits for active ones
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
