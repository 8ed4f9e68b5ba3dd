package service

import (
	"context"
	"errors"
	"io"
	"iter"

	"seatrouter/api"
	"seatrouter/domain"
	"seatrouter/helpers"

	"github.com/go-kit/log"
)

// TierRouter binds one BackendPool to the outbound calls of its tier. Each call makes exactly one
// selection and at most one backend attempt. When no endpoint is live the router answers itself
// with a failure-shaped response and no backend is contacted. Errors of the chosen backend are
// returned as they are: no retry on another endpoint and no conversion to the unavailable answer.
type TierRouter struct {
	pool   *BackendPool
	logger log.Logger
}

func NewTierRouter(pool *BackendPool, logger log.Logger) *TierRouter {
	pool = helpers.NilPanic(pool, "service.tier_router.go: pool is required")
	return &TierRouter{
		pool:   pool,
		logger: log.With(helpers.NilPanic(logger, "service.tier_router.go: logger is required"), "component", "tier_router", "tier", pool.Tier()),
	}
}

// Tier returns the tier of the underlying pool.
func (r *TierRouter) Tier() domain.Tier { return r.pool.Tier() }

// Pool returns the underlying pool.
func (r *TierRouter) Pool() *BackendPool { return r.pool }

// ReserveSeat forwards req to the next live endpoint.
//
// Returns: (response, endpoint, nil) on a forwarded call; (synthesized unavailable response, nil,
// nil) when the tier has no live endpoint; (nil, endpoint, err) when the backend call failed, err
// being the backend's gRPC status error untouched.
func (r *TierRouter) ReserveSeat(ctx context.Context, req *api.ReservationRequest) (*api.ReservationResponse, *Endpoint, error) {
	ep, ok := r.pool.SelectNext()
	if !ok {
		return UnavailableReservation(r.pool.Tier()), nil, nil
	}
	resp, err := ep.client.ReserveSeat(ctx, req)
	if err != nil {
		return nil, ep, err
	}
	return resp, ep, nil
}

// GetSeatStatus selects the next live endpoint and returns a lazy sequence over its seat stream.
// The stream is opened when the sequence is iterated and closed when iteration ends, so every
// iteration is a fresh backend call. Backend errors are yielded once as the final element.
//
// Returns: (sequence, endpoint); with no live endpoint the endpoint is nil and the sequence holds a
// single failure-shaped entry (seat 0, status "Unavailable").
func (r *TierRouter) GetSeatStatus(ctx context.Context, req *api.SeatListRequest) (iter.Seq2[*api.SeatStatus, error], *Endpoint) {
	ep, ok := r.pool.SelectNext()
	if !ok {
		return unavailableSeatStatus(r.pool.Tier()), nil
	}
	return func(yield func(*api.SeatStatus, error) bool) {
		streamCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		stream, err := ep.client.GetSeatStatus(streamCtx, req)
		if err != nil {
			yield(nil, err)
			return
		}
		for {
			st, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(st, nil) {
				return
			}
		}
	}, ep
}

// UnavailableReservation is the ReserveSeat answer given when tier has no live endpoint.
func UnavailableReservation(tier domain.Tier) *api.ReservationResponse {
	return &api.ReservationResponse{
		Success: false,
		Message: domain.UnavailableMessage(tier),
	}
}

// UnavailableSeatStatus is the single GetSeatStatus entry given when tier has no live endpoint.
func UnavailableSeatStatus(tier domain.Tier) *api.SeatStatus {
	return &api.SeatStatus{
		SeatNumber: 0,
		Status:     domain.StatusUnavailable,
		Message:    domain.UnavailableMessage(tier),
	}
}

func unavailableSeatStatus(tier domain.Tier) iter.Seq2[*api.SeatStatus, error] {
	return func(yield func(*api.SeatStatus, error) bool) {
		yield(UnavailableSeatStatus(tier), nil)
	}
}
