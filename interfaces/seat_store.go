package interfaces

import (
	"context"

	"seatrouter/domain"
)

// SeatStore keeps the rooms of the seat-management tier. Implementations: adapters/memory,
// adapters/postgres, adapters/redis.
//
//go:generate mockgen -destination=mock/seat_store_gomock.go -package=mock . SeatStore
type SeatStore interface {
	// ListRooms returns every room ordered by ID.
	ListRooms(ctx context.Context) ([]domain.Room, error)

	// Reserve marks room roomID occupied by guest if it is free. Returns (true, nil) when this call
	// reserved it, (false, nil) when it was already occupied and a service entity_not_found error
	// when no such room exists.
	Reserve(ctx context.Context, roomID int32, guest string) (bool, error)

	// Ping verifies the backing storage is reachable; used at startup.
	Ping(ctx context.Context) error

	Close() error
}
