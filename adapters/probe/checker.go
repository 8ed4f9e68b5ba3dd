// Package probe holds the ConnectivityChecker implementations a HealthProbe can run.
package probe

import (
	"context"
	"errors"
	"fmt"

	"seatrouter/api"
	"seatrouter/interfaces"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	ModeConnectivity = "connectivity"
	ModeHealth       = "health"
	ModePing         = "ping"
)

var ErrUnknownMode = errors.New("unknown probe mode")

// NewChecker returns the checker for mode ("" selects ModeConnectivity).
func NewChecker(mode string) (interfaces.ConnectivityChecker, error) {
	switch mode {
	case "", ModeConnectivity:
		return ConnectivityChecker{}, nil
	case ModeHealth:
		return HealthChecker{}, nil
	case ModePing:
		return PingChecker{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// ConnectivityChecker waits until the channel is READY. An idle channel is kicked into connecting
// first; the wait ends with ctx.
type ConnectivityChecker struct{}

func (ConnectivityChecker) Check(ctx context.Context, conn *grpc.ClientConn) error {
	if conn == nil {
		return errors.New("no connection")
	}
	conn.Connect()
	for {
		state := conn.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.Shutdown:
			return errors.New("connection is shut down")
		}
		if !conn.WaitForStateChange(ctx, state) {
			return fmt.Errorf("channel not ready (state %s): %w", state, ctx.Err())
		}
	}
}

// HealthChecker calls grpc.health.v1.Health/Check for the whole server and requires SERVING.
type HealthChecker struct{}

func (HealthChecker) Check(ctx context.Context, conn *grpc.ClientConn) error {
	if conn == nil {
		return errors.New("no connection")
	}
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return err
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("health status %s", resp.GetStatus())
	}
	return nil
}

// PingChecker calls the service's own Ping.
type PingChecker struct{}

func (PingChecker) Check(ctx context.Context, conn *grpc.ClientConn) error {
	if conn == nil {
		return errors.New("no connection")
	}
	_, err := api.NewReservationServiceClient(conn).Ping(ctx, &api.PingRequest{})
	return err
}
