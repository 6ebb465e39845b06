package nas

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dwc-revival/nasd/nas/handshake"
	"github.com/dwc-revival/nasd/nas/transcript"
	"github.com/dwc-revival/nasd/std/log"
)

const shutdownTimeout = 5 * time.Second

// Server is the NAS daemon: the HTTP listener, the transcript sink and the
// optional metrics listener.
type Server struct {
	config *Config

	transcript *transcript.Logger
	metrics    *Metrics
	handler    *Handler

	listener    net.Listener
	server      http.Server
	metricsHttp *http.Server
}

func NewServer(config *Config) *Server {
	return &Server{config: config}
}

func (s *Server) String() string {
	return "nas-server"
}

// Addr returns the address of the HTTP listener once started.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start opens the transcript sink and starts serving. It does not block.
func (s *Server) Start() error {
	sink, err := transcript.Open(&s.config.Transcript)
	if err != nil {
		return err
	}
	s.transcript = transcript.NewLogger(sink)
	s.metrics = NewMetrics()

	builder := &handshake.Builder{Locator: s.config.Nas.Locator}
	s.handler = NewHandler(builder, s.transcript, s.metrics, s.config.Nas.Node)

	addr := net.JoinHostPort(s.config.Nas.Bind, strconv.FormatUint(uint64(s.config.Nas.Port), 10))
	s.listener, err = net.Listen("tcp", addr)
	if err != nil {
		s.transcript.Close()
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.server.Handler = s.handler

	log.Info(s, "Starting NAS server", "addr", s.listener.Addr(), "transcript", s.config.Transcript.Backend)
	go s.serve(&s.server, s.listener)

	if s.config.Metrics.Enabled {
		ml, err := net.Listen("tcp", s.config.Metrics.Bind)
		if err != nil {
			s.Stop()
			return fmt.Errorf("failed to listen on %s: %w", s.config.Metrics.Bind, err)
		}
		s.metricsHttp = &http.Server{Handler: s.metrics.Handler()}
		log.Info(s, "Serving metrics", "addr", ml.Addr())
		go s.serve(s.metricsHttp, ml)
	}

	return nil
}

func (s *Server) serve(srv *http.Server, l net.Listener) {
	if err := srv.Serve(l); !errors.Is(err, http.ErrServerClosed) {
		log.Error(s, "Listener failed", "addr", l.Addr(), "err", err)
	}
}

// Stop shuts the listeners down and closes the transcript sink.
func (s *Server) Stop() error {
	log.Info(s, "Stopping NAS server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.metricsHttp != nil {
		err = errors.Join(err, s.metricsHttp.Shutdown(ctx))
	}
	if s.transcript != nil {
		err = errors.Join(err, s.transcript.Close())
	}
	return err
}
