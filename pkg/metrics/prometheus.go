package metrics

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/radioforge/hrd-link/pkg/logger"
)

// PrometheusConfig holds Prometheus server configuration
type PrometheusConfig struct {
	Enabled bool
	Port    int
	Path    string
}

// PrometheusHandler handles Prometheus metrics HTTP requests
type PrometheusHandler struct {
	collector *Collector
}

// NewPrometheusHandler creates a new Prometheus handler
func NewPrometheusHandler(collector *Collector) *PrometheusHandler {
	return &PrometheusHandler{
		collector: collector,
	}
}

// ServeHTTP handles HTTP requests for metrics
func (h *PrometheusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	var output strings.Builder

	// Packet metrics
	output.WriteString("# HELP hrd_packets_received_total Total packets received from the radio\n")
	output.WriteString("# TYPE hrd_packets_received_total counter\n")
	output.WriteString(fmt.Sprintf("hrd_packets_received_total %d\n", h.collector.GetPacketsReceived()))

	output.WriteString("# HELP hrd_packets_sent_total Total packets sent to the radio\n")
	output.WriteString("# TYPE hrd_packets_sent_total counter\n")
	output.WriteString(fmt.Sprintf("hrd_packets_sent_total %d\n", h.collector.GetPacketsSent()))

	output.WriteString("# HELP hrd_bytes_received_total Total bytes received\n")
	output.WriteString("# TYPE hrd_bytes_received_total counter\n")
	output.WriteString(fmt.Sprintf("hrd_bytes_received_total %d\n", h.collector.GetBytesReceived()))

	output.WriteString("# HELP hrd_bytes_sent_total Total bytes sent\n")
	output.WriteString("# TYPE hrd_bytes_sent_total counter\n")
	output.WriteString(fmt.Sprintf("hrd_bytes_sent_total %d\n", h.collector.GetBytesSent()))

	// Decode metrics
	output.WriteString("# HELP hrd_radio_states_decoded_total Total radio-state packets decoded\n")
	output.WriteString("# TYPE hrd_radio_states_decoded_total counter\n")
	output.WriteString(fmt.Sprintf("hrd_radio_states_decoded_total %d\n", h.collector.GetRadioStatesDecoded()))

	output.WriteString("# HELP hrd_status_messages_decoded_total Total status packets decoded\n")
	output.WriteString("# TYPE hrd_status_messages_decoded_total counter\n")
	output.WriteString(fmt.Sprintf("hrd_status_messages_decoded_total %d\n", h.collector.GetStatusDecoded()))

	output.WriteString("# HELP hrd_unknown_packets_total Total unrecognized packets\n")
	output.WriteString("# TYPE hrd_unknown_packets_total counter\n")
	output.WriteString(fmt.Sprintf("hrd_unknown_packets_total %d\n", h.collector.GetUnknownPackets()))

	output.WriteString("# HELP hrd_decode_failures_total Total classified packets that failed to decode\n")
	output.WriteString("# TYPE hrd_decode_failures_total counter\n")
	output.WriteString(fmt.Sprintf("hrd_decode_failures_total %d\n", h.collector.GetDecodeFailures()))

	output.WriteString("# HELP hrd_checksum_failures_total Total packets with checksum mismatches\n")
	output.WriteString("# TYPE hrd_checksum_failures_total counter\n")
	output.WriteString(fmt.Sprintf("hrd_checksum_failures_total %d\n", h.collector.GetChecksumFailures()))

	w.Write([]byte(output.String()))
}

// PrometheusServer is an HTTP server for Prometheus metrics
type PrometheusServer struct {
	config    PrometheusConfig
	collector *Collector
	log       *logger.Logger
	server    *http.Server
}

// NewPrometheusServer creates a new Prometheus metrics server
func NewPrometheusServer(config PrometheusConfig, collector *Collector, log *logger.Logger) *PrometheusServer {
	if log == nil {
		log = logger.New(logger.Config{Level: "info", Format: "text"})
	}

	return &PrometheusServer{
		config:    config,
		collector: collector,
		log:       log.WithComponent("metrics"),
	}
}

// Start starts the Prometheus metrics server
func (s *PrometheusServer) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.log.Info("Prometheus metrics server disabled")
		return nil
	}

	handler := NewPrometheusHandler(s.collector)
	mux := http.NewServeMux()
	mux.Handle(s.config.Path, handler)

	// Use a listener to get the actual port (useful for testing with port 0)
	addr := fmt.Sprintf(":%d", s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	actualPort := listener.Addr().(*net.TCPAddr).Port

	s.server = &http.Server{
		Handler: mux,
	}

	s.log.Info("Starting Prometheus metrics server",
		logger.Int("port", actualPort),
		logger.String("path", s.config.Path))

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info("Shutting down Prometheus metrics server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown error: %w", err)
		}
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

// Stop stops the Prometheus metrics server
func (s *PrometheusServer) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(ctx)
	}
}
