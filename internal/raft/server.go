package raft

import (
	"context"
	"fmt"
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	raftstore "regionkv/internal/raftstore"
)

// ServerConfig holds transport server configuration.
type ServerConfig struct {
	Address string
}

// Server hosts the raft transport endpoint for one store.
type Server struct {
	cfg    ServerConfig
	srv    *grpc.Server
	health *health.Server
}

// NewServer builds the transport server and registers the transport and
// health services against the provided router.
func NewServer(cfg ServerConfig, router raftstore.RaftStoreRouter) *Server {
	s := &Server{
		cfg:    cfg,
		srv:    grpc.NewServer(grpc.ForceServerCodec(jsonCodec{})),
		health: health.NewServer(),
	}
	RegisterGRPCTransportServer(s.srv, router)
	healthpb.RegisterHealthServer(s.srv, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Start begins listening on the configured address and serves until the
// context is canceled.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.Address == "" {
		return fmt.Errorf("transport address is empty")
	}
	lis, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	go func() {
		if err := s.srv.Serve(lis); err != nil {
			log.Printf("[transport] serve stopped: %v", err)
		}
	}()
	return nil
}

// Stop drains in-flight streams and shuts the server down.
func (s *Server) Stop() {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	s.srv.GracefulStop()
}
