package service

import (
	"context"

	"seatrouter/api"
	"seatrouter/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
)

// callState is the lifecycle of one routed call, logged at debug level under the "state" key.
type callState string

const (
	stateReceived    callState = "RECEIVED"
	stateRouting     callState = "ROUTING"
	stateForwarded   callState = "FORWARDED"
	stateUnavailable callState = "UNAVAILABLE"
	stateResponded   callState = "RESPONDED"
)

// DispatchServicer is the inbound ReservationService of a routing tier. ReserveSeat goes through
// the reserve router and GetSeatStatus through the status router; Ping is answered locally. The
// dispatcher points reserve at the reservation tier and status at the seat-management tier; a
// reservation server points both at the seat-management tier.
type DispatchServicer struct {
	api.UnimplementedReservationServiceServer

	reserve    *TierRouter
	status     *TierRouter
	annotation string
	logger     log.Logger
}

// NewDispatchServicer creates the servicer. annotation, when not empty, is appended as
// " (<annotation>)" to the message of every forwarded ReserveSeat response; synthesized
// unavailable responses are never annotated.
//
// Called from boot.NewRouter.
func NewDispatchServicer(reserve, status *TierRouter, annotation string, logger log.Logger) *DispatchServicer {
	return &DispatchServicer{
		reserve:    helpers.NilPanic(reserve, "service.dispatch.go: reserve router is required"),
		status:     helpers.NilPanic(status, "service.dispatch.go: status router is required"),
		annotation: annotation,
		logger:     log.With(helpers.NilPanic(logger, "service.dispatch.go: logger is required"), "component", "dispatch"),
	}
}

// Ping answers immediately whatever the state of the pools.
func (s *DispatchServicer) Ping(context.Context, *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{}, nil
}

func (s *DispatchServicer) ReserveSeat(ctx context.Context, req *api.ReservationRequest) (*api.ReservationResponse, error) {
	logger := log.With(s.logger, "method", "ReserveSeat", "seat", req.GetSeatNumber())
	s.logState(logger, stateReceived)
	s.logState(logger, stateRouting, "tier", s.reserve.Tier())

	resp, ep, err := s.reserve.ReserveSeat(ctx, req)
	if err != nil {
		level.Debug(logger).Log("msg", "forwarded call failed", "endpoint", ep, "err", err)
		return nil, err
	}
	if ep == nil {
		s.logState(logger, stateUnavailable, "tier", s.reserve.Tier())
	} else {
		s.logState(logger, stateForwarded, "endpoint", ep)
		if s.annotation != "" {
			resp = &api.ReservationResponse{
				Success: resp.GetSuccess(),
				Message: resp.GetMessage() + " (" + s.annotation + ")",
			}
		}
	}
	s.logState(logger, stateResponded, "success", resp.GetSuccess())
	return resp, nil
}

func (s *DispatchServicer) GetSeatStatus(req *api.SeatListRequest, stream grpc.ServerStreamingServer[api.SeatStatus]) error {
	logger := log.With(s.logger, "method", "GetSeatStatus")
	s.logState(logger, stateReceived)
	s.logState(logger, stateRouting, "tier", s.status.Tier())

	seq, ep := s.status.GetSeatStatus(stream.Context(), req)
	if ep == nil {
		s.logState(logger, stateUnavailable, "tier", s.status.Tier())
	} else {
		s.logState(logger, stateForwarded, "endpoint", ep)
	}

	sent := 0
	for st, err := range seq {
		if err != nil {
			level.Debug(logger).Log("msg", "forwarded stream failed", "endpoint", ep, "sent", sent, "err", err)
			return err
		}
		if err := stream.Send(st); err != nil {
			return err
		}
		sent++
	}
	s.logState(logger, stateResponded, "sent", sent)
	return nil
}

func (s *DispatchServicer) logState(logger log.Logger, state callState, keyvals ...any) {
	level.Debug(logger).Log(append([]any{"msg", "call state", "state", state}, keyvals...)...)
}
