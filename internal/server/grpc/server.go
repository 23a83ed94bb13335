// Package grpc exposes the core services over gRPC. Messages are JSON
// encoded (see api.CodecName); there are no generated stubs.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/joggingtracker/internal/api"
	"github.com/dmitrijs2005/joggingtracker/internal/logging"
	"github.com/dmitrijs2005/joggingtracker/internal/server/auth"
	"github.com/dmitrijs2005/joggingtracker/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	address string
	gate    *auth.Gate
	tokens  *services.TokenService
	records *services.RecordStore
	users   *services.UserService
	logger  logging.Logger
	health  *health.Server

	interceptors []grpc.UnaryServerInterceptor
}

func NewGRPCServer(a string, l logging.Logger, gate *auth.Gate, ts *services.TokenService, rs *services.RecordStore, us *services.UserService) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		gate:    gate,
		tokens:  ts,
		records: rs,
		users:   us,
		health:  health.NewServer(),
	}
}

// Use adds interceptors that run ahead of logging and authorization.
func (s *GRPCServer) Use(interceptors ...grpc.UnaryServerInterceptor) {
	s.interceptors = append(s.interceptors, interceptors...)
}

// NewServer builds a grpc.Server with the auth interceptor, the jogging
// service and the standard health service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	chain := make([]grpc.UnaryServerInterceptor, 0, len(s.interceptors)+2)
	chain = append(chain, s.interceptors...)
	chain = append(chain, s.loggingInterceptor, s.authInterceptor)

	opts = append(opts, grpc.ChainUnaryInterceptor(chain...))
	srv := grpc.NewServer(opts...)

	RegisterJoggingServiceServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

// Run listens on the configured address and serves until ctx is cancelled,
// then drains in-flight calls.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
