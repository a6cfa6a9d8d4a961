package metrics_server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	ports "blog-service/internal/domain/ports/output"
)

type MetricsServer struct {
	server  *http.Server
	log     ports.Logger
	address string
	port    int
}

func NewMetricsServer(address string, port int, log ports.Logger) *MetricsServer {
	return &MetricsServer{
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", address, port),
			Handler:           Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log:     log,
		address: address,
		port:    port,
	}
}

func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *MetricsServer) Run() error {
	s.log.Info("Starting metrics server", slog.String("address", s.address), slog.Int("port", s.port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down metrics server")
	return s.server.Shutdown(ctx)
}
