package memory

import (
	"context"
	"sort"
	"sync"

	"seatrouter/domain"
	"seatrouter/service"
)

// SeatStore keeps rooms in process memory. State is lost on restart.
type SeatStore struct {
	mu    sync.Mutex
	rooms map[int32]domain.Room
}

// NewSeatStore creates a store holding rooms. Later duplicates of an ID replace earlier ones.
func NewSeatStore(rooms []domain.Room) *SeatStore {
	m := make(map[int32]domain.Room, len(rooms))
	for _, r := range rooms {
		m[r.ID] = r
	}
	return &SeatStore{rooms: m}
}

func (s *SeatStore) ListRooms(_ context.Context) ([]domain.Room, error) {
	s.mu.Lock()
	out := make([]domain.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *SeatStore) Reserve(_ context.Context, roomID int32, guest string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[roomID]
	if !ok {
		return false, service.NewEntityNotFoundError("room not found", nil)
	}
	if r.Occupied {
		return false, nil
	}
	r.Occupied = true
	r.GuestName = guest
	s.rooms[roomID] = r
	return true, nil
}

func (s *SeatStore) Ping(context.Context) error { return nil }

func (s *SeatStore) Close() error { return nil }
