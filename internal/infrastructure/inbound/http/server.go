package delivery_http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	ports "blog-service/internal/domain/ports/output"
)

type Server struct {
	server  *http.Server
	log     ports.Logger
	address string
	port    int
}

func NewServer(handler http.Handler, address string, port int, readTimeout, writeTimeout time.Duration, log ports.Logger) *Server {
	addr := fmt.Sprintf("%s:%d", address, port)
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			ReadHeaderTimeout: readTimeout,
			IdleTimeout:       time.Minute,
		},
		log:     log,
		address: address,
		port:    port,
	}
}

// Run blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Run() error {
	s.log.Info("Starting HTTP server", slog.String("address", s.address), slog.Int("port", s.port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	s.log.Info("HTTP server closed")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
