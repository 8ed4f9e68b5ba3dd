package service

import (
	"context"
	"strings"

	"golang.org/x/sync/semaphore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// DefaultMaxWorkers is the number of calls a server handles at once when MaxWorkers is not set.
const DefaultMaxWorkers = 10

// ConcurrencyLimiter bounds the number of in-flight calls of a server. A call that cannot get a
// slot waits for one until its own context ends. Health checks bypass the limit so a busy server
// is not reported down by the probes of the tier above it.
type ConcurrencyLimiter struct {
	sem *semaphore.Weighted
}

// NewConcurrencyLimiter creates a limiter with maxWorkers slots (DefaultMaxWorkers when <= 0).
func NewConcurrencyLimiter(maxWorkers int) *ConcurrencyLimiter {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}
	return &ConcurrencyLimiter{sem: semaphore.NewWeighted(int64(maxWorkers))}
}

func (l *ConcurrencyLimiter) acquire(ctx context.Context, fullMethod string) (func(), error) {
	if strings.HasPrefix(fullMethod, "/"+grpc_health_v1.Health_ServiceDesc.ServiceName+"/") {
		return func() {}, nil
	}
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	return func() { l.sem.Release(1) }, nil
}

// UnaryInterceptor returns the unary side of the limiter.
func (l *ConcurrencyLimiter) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		release, err := l.acquire(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		defer release()
		return handler(ctx, req)
	}
}

// StreamInterceptor returns the streaming side of the limiter. The slot is held for the whole
// stream.
func (l *ConcurrencyLimiter) StreamInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		release, err := l.acquire(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}
		defer release()
		return handler(srv, ss)
	}
}
