package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"seatrouter/api"
	"seatrouter/domain"
	"seatrouter/helpers"
	"seatrouter/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
)

// SeatManager is the ReservationService of the seat-management tier: the end of the routing
// chain, answering from a SeatStore instead of forwarding.
type SeatManager struct {
	api.UnimplementedReservationServiceServer

	store  interfaces.SeatStore
	logger log.Logger
}

// NewSeatManager creates a SeatManager over store. Panics on nil store or logger.
//
// Called from cmd/seatmanager.
func NewSeatManager(store interfaces.SeatStore, logger log.Logger) *SeatManager {
	return &SeatManager{
		store:  helpers.NilPanic(store, "service.seat_manager.go: store is required"),
		logger: log.With(helpers.NilPanic(logger, "service.seat_manager.go: logger is required"), "component", "seat_manager"),
	}
}

func (m *SeatManager) Ping(context.Context, *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{}, nil
}

// ReserveSeat reserves room req.SeatNumber for req.CustomerName.
//
// An empty name or a non-positive seat number is a bad_parameter error. Every other outcome is a
// normal response: success, room already occupied, unknown room, or success=false when the store
// failed (the store error is logged, not returned).
func (m *SeatManager) ReserveSeat(ctx context.Context, req *api.ReservationRequest) (*api.ReservationResponse, error) {
	name := strings.TrimSpace(req.GetCustomerName())
	if name == "" {
		return nil, NewBadParameterError("customer name is required", nil)
	}
	seat := req.GetSeatNumber()
	if seat <= 0 {
		return nil, NewBadParameterError("seat number must be positive", nil)
	}

	reserved, err := m.store.Reserve(ctx, seat, name)
	switch {
	case IsEntityNotFound(err):
		return &api.ReservationResponse{Success: false, Message: fmt.Sprintf("Room %d does not exist.", seat)}, nil
	case err != nil:
		level.Error(m.logger).Log("msg", "reserve failed", "seat", seat, "err", err)
		return &api.ReservationResponse{Success: false, Message: fmt.Sprintf("Room %d could not be reserved: %s.", seat, domain.MsgServiceUnavailable)}, nil
	case !reserved:
		return &api.ReservationResponse{Success: false, Message: fmt.Sprintf("Room %d is already occupied.", seat)}, nil
	}

	level.Info(m.logger).Log("msg", "room reserved", "seat", seat, "guest", name)
	return &api.ReservationResponse{Success: true, Message: fmt.Sprintf("Room %d successfully reserved for %s.", seat, name)}, nil
}

// GetSeatStatus streams every room ordered by id.
//
// A failed listing is an unavailable error when the store no longer answers a ping (the caller may
// try another seat manager) and an internal error otherwise.
func (m *SeatManager) GetSeatStatus(_ *api.SeatListRequest, stream grpc.ServerStreamingServer[api.SeatStatus]) error {
	ctx := stream.Context()
	rooms, err := m.store.ListRooms(ctx)
	if err != nil {
		if pingErr := m.store.Ping(ctx); pingErr != nil {
			return NewUnavailableError("seat store is unavailable", errors.Join(err, pingErr))
		}
		return NewInternalServerError("list rooms failed", err)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	for _, room := range rooms {
		if err := stream.Send(&api.SeatStatus{SeatNumber: room.ID, Status: room.Status()}); err != nil {
			return err
		}
	}
	return nil
}
