package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"telegram-announce-relay/internal/infra/metrics"
)

// NewHealthRouter answers liveness probes on / and /healthz.
func NewHealthRouter(logger *zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(), Recover(logger), RequestLog(logger), middleware.GetHead)
	r.Get("/", handleHealthCheck)
	r.Get("/healthz", handleHealthCheck)
	return r
}

// NewMetricsRouter serves the Prometheus registry on /metrics.
func NewMetricsRouter(logger *zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(Recover(logger))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	return r
}

func handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Server is a small wrapper that owns one listener.
type Server struct {
	name   string
	server *http.Server
	log    *zerolog.Logger
}

func NewServer(name string, port int, handler http.Handler, logger *zerolog.Logger) *Server {
	return &Server{
		name: name,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		log: logger,
	}
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("%s listen %s: %w", s.name, s.server.Addr, err)
	}
	return s.Serve(ln)
}

func (s *Server) Serve(ln net.Listener) error {
	s.log.Info().Str("server", s.name).Str("addr", ln.Addr().String()).Msg("http listening")
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s serve: %w", s.name, err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
