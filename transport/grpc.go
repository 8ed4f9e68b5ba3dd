// Package transport builds the gRPC clients and servers every binary of the chain uses.
package transport

import (
	"context"
	"errors"
	"net"
	"time"

	"seatrouter/api"
	"seatrouter/domain"
	"seatrouter/helpers"
	"seatrouter/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ShutdownTimeout bounds GracefulStop before the server is stopped hard.
const ShutdownTimeout = 5 * time.Second

// reconnectBackoff keeps reconnect attempts at most a second apart so an endpoint that comes back
// is READY by the next probe or the one after.
var reconnectBackoff = grpc.ConnectParams{
	Backoff: backoff.Config{
		BaseDelay:  100 * time.Millisecond,
		Multiplier: 1.6,
		Jitter:     0.2,
		MaxDelay:   time.Second,
	},
	MinConnectTimeout: time.Second,
}

// Dial creates the long-lived plaintext connection to addr. It does not block: the channel
// connects in the background and reconnects on its own after failures.
//
// Used as service.DialFunc by the routing binaries and by the client CLI.
func Dial(addr domain.Address) (*grpc.ClientConn, error) {
	return grpc.NewClient(
		addr.String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithConnectParams(reconnectBackoff),
	)
}

// Server is a gRPC server with the chain's interceptors, grpc.health.v1 and reflection.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	logger log.Logger
}

// NewServer creates a Server handling at most maxWorkers calls at once. Interceptor order: the
// concurrency limit first, then RouterError to gRPC status mapping.
func NewServer(maxWorkers int, logger log.Logger) *Server {
	logger = helpers.NilPanic(logger, "transport.grpc.go: logger is required")
	limiter := service.NewConcurrencyLimiter(maxWorkers)
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(limiter.UnaryInterceptor(), service.RouterErrorToGRPCInterceptor(logger)),
		grpc.ChainStreamInterceptor(limiter.StreamInterceptor(), service.RouterErrorToGRPCStreamInterceptor(logger)),
	)
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, hs)
	reflection.Register(srv)
	return &Server{grpc: srv, health: hs, logger: logger}
}

// Register adds the ReservationService implementation and marks the server SERVING.
func (s *Server) Register(impl api.ReservationServiceServer) {
	api.RegisterReservationServiceServer(s.grpc, impl)
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(api.ReservationService_ServiceDesc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
}

// Serve serves on lis until ctx is cancelled or the server fails. On cancel the health status
// turns NOT_SERVING and the server stops gracefully within ShutdownTimeout, then hard.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		level.Info(s.logger).Log("msg", "Starting gRPC server", "addr", lis.Addr())
		errCh <- s.grpc.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	level.Info(s.logger).Log("msg", "Shutting down gRPC server...")
	s.health.Shutdown()
	s.Stop(ShutdownTimeout)
	if err := <-errCh; !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop stops the server gracefully, falling back to a hard stop after timeout.
func (s *Server) Stop(timeout time.Duration) {
	stopped := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(timeout):
		level.Warn(s.logger).Log("msg", "graceful stop timed out, stopping", "timeout", timeout)
		s.grpc.Stop()
		<-stopped
	}
	level.Info(s.logger).Log("msg", "gRPC server stopped")
}
