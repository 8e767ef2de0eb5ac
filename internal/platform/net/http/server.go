package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"akkadian/internal/platform/config"
	"akkadian/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the chi mux and the listening http.Server
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer reads its listener settings from cfg:
//
//	API_PORT           listen address, default :4000
//	API_READ_TIMEOUT   full request read, default 15s
//	API_WRITE_TIMEOUT  response write, default 90s (translation calls are slow)
//	API_IDLE_TIMEOUT   keep-alive idle, default 60s
func NewServer(cfg config.Conf) *Server {
	addr := cfg.MayString("API_PORT", ":4000")
	m := chi.NewRouter()
	return &Server{
		addr: addr,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.MayDuration("API_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      cfg.MayDuration("API_WRITE_TIMEOUT", 90*time.Second),
			IdleTimeout:       cfg.MayDuration("API_IDLE_TIMEOUT", 60*time.Second),
		},
	}
}

// Router is where modules mount
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.addr }

// Run starts the server and blocks until it fails or ctx is done. On ctx done
// in-flight requests get ShutdownGrace to finish
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.addr).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("http draining")
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			return err
		}
		<-errc
		return nil
	}
}

// ShutdownGrace bounds how long Run waits for in-flight requests
var ShutdownGrace = 10 * time.Second
