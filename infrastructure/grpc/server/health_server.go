package server

import (
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the name the chat service reports its health under.
const ServiceName = "chathub"

// HealthServer exposes grpc.health.v1.Health for the chat hub.
type HealthServer struct {
	log      *slog.Logger
	listener net.Listener
	server   *grpc.Server
	health   *health.Server
}

func NewHealthServer(log *slog.Logger, address string) (*HealthServer, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	s := grpc.NewServer()
	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)
	reflection.Register(s)

	hs := &HealthServer{log: log, listener: listener, server: s, health: h}
	hs.SetServing(true)
	return hs, nil
}

func (h *HealthServer) Addr() net.Addr {
	return h.listener.Addr()
}

// Serve blocks until Stop is called.
func (h *HealthServer) Serve() error {
	h.log.Info("Starting health server", "address", h.listener.Addr().String())
	if err := h.server.Serve(h.listener); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("health server error: %w", err)
	}
	return nil
}

func (h *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.server.GracefulStop()
}
