package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Server serves the estimator and health services.
type Server struct {
	srv    *grpc.Server
	health *health.Server
	port   int
}

// NewServer creates a gRPC server for est. Health starts as NOT_SERVING
// unless est already has artifacts.
func NewServer(port int, est Estimator) *Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(logUnary))
	hs := health.NewServer()

	RegisterEstimatorServer(srv, NewService(est))
	healthpb.RegisterHealthServer(srv, hs)

	s := &Server{srv: srv, health: hs, port: port}
	s.SetServing(est.Loaded())
	return s
}

// SetServing updates the health status of the estimator service.
func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}

	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// Run listens on the configured port and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("grpc: failed to listen on port %d: %w", s.port, err)
	}

	return s.Serve(ctx, ln)
}

// Serve serves on an existing listener until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		s.health.Shutdown()
		s.srv.GracefulStop()
	}()

	slog.Info("gRPC server listening", "addr", ln.Addr().String())
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc: serve failed: %w", err)
	}

	return nil
}

// logUnary logs one line per unary call.
func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	slog.InfoContext(ctx, "gRPC request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)

	return resp, err
}
