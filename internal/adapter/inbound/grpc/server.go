package grpc

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/0xsj/overwatch-pkg/log"
)

// ServerConfig holds configuration for the catalog gRPC server.
type ServerConfig struct {
	Host              string
	Port              int
	EnableReflection  bool
	EnableHealthCheck bool
}

// Address returns the server address.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate validates the server configuration.
func (c ServerConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}

// Server wraps the gRPC server.
type Server struct {
	config     ServerConfig
	grpcServer *grpc.Server
	health     *health.Server
	listener   net.Listener
	logger     log.Logger
}

// NewServer creates a new catalog gRPC server with handler registered.
func NewServer(cfg ServerConfig, handler CatalogServiceServer, logger log.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(BuildUnaryInterceptors(logger)...),
		grpc.ChainStreamInterceptor(BuildStreamInterceptors(logger)...),
	)
	grpcServer.RegisterService(&CatalogServiceDesc, handler)

	s := &Server{
		config:     cfg,
		grpcServer: grpcServer,
		logger:     logger,
	}

	// Register health check service
	if cfg.EnableHealthCheck {
		s.health = health.NewServer()
		s.health.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
		grpc_health_v1.RegisterHealthServer(grpcServer, s.health)
	}

	// Enable reflection for development
	if cfg.EnableReflection {
		reflection.Register(grpcServer)
	}

	return s, nil
}

// Start listens on the configured address and serves until stopped.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Address(), err)
	}
	return s.Serve(listener)
}

// Serve serves on listener until stopped.
func (s *Server) Serve(listener net.Listener) error {
	s.listener = listener

	s.logger.Info("gRPC server starting",
		log.String("address", listener.Addr().String()),
		log.Any("reflection", s.config.EnableReflection),
		log.Any("health_check", s.config.EnableHealthCheck),
	)

	return s.grpcServer.Serve(listener)
}

// Stop gracefully stops the gRPC server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("gRPC server stopping")

	if s.health != nil {
		s.health.Shutdown()
	}

	stopped := make(chan struct{})

	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("gRPC server force stopping")
		s.grpcServer.Stop()
		return ctx.Err()
	case <-stopped:
		s.logger.Info("gRPC server stopped gracefully")
		return nil
	}
}

// Address returns the server's listening address.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// GRPCServer returns the underlying grpc.Server.
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpcServer
}
