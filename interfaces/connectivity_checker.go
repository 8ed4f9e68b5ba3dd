package interfaces

import (
	"context"

	"google.golang.org/grpc"
)

// ConnectivityChecker decides whether one backend endpoint is reachable through its long-lived
// connection. It is the single probe attempt a HealthProbe runs every interval.
//
// Check must honour ctx: the probe bounds every attempt with the probe timeout, and a deadline
// hit is reported as an error (endpoint marked down). conn is the endpoint's own connection and
// must not be closed or replaced by the checker.
//
// Implemented by adapters/probe (connectivity state, grpc.health.v1 and Ping variants).
// Called from service.HealthProbe.ProbeOnce.
//
//go:generate moq -stub -out mock/connectivity_checker.go -pkg mock . ConnectivityChecker
type ConnectivityChecker interface {
	// Check returns nil when the endpoint is reachable within ctx, an error otherwise.
	Check(ctx context.Context, conn *grpc.ClientConn) error
}
