package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"seatrouter/domain"
	"seatrouter/helpers"
	"seatrouter/service"

	"github.com/go-redis/redis/v8"
)

const (
	keyRooms  = "rooms"
	keyGuests = "room_guests"
)

// SeatStore keeps rooms in two hashes: rooms (room id → room name) and room_guests (room id →
// guest name). A room is occupied iff it has a room_guests field; HSETNX on that hash makes the
// reservation atomic across seat-management servers sharing one Redis.
type SeatStore struct {
	client redis.UniversalClient
}

// Timeouts of the seat-store connection.
const (
	dialTimeout = 2 * time.Second
	ioTimeout   = time.Second
)

// Open connects a SeatStore to the redis named by dsn (redis://[user:password@]host:port/db, the
// StoreDSN of a seat manager). Credentials, database and TLS come from the URL; timeouts are the
// store's own.
func Open(dsn string) (*SeatStore, error) {
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse redis store dsn: %w", err)
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{opts.Addr},
		DB:           opts.DB,
		Username:     opts.Username,
		Password:     opts.Password,
		TLSConfig:    opts.TLSConfig,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	})
	return NewSeatStore(client), nil
}

// NewSeatStore wraps an existing client. Panics on nil client.
func NewSeatStore(client redis.UniversalClient) *SeatStore {
	return &SeatStore{client: helpers.NilPanic(client, "adapters.redis.seat_store.go: client is required")}
}

// Seed creates the given rooms if they do not exist yet. Existing names and reservations are
// left as they are, so every seat-management server can seed the same catalog at startup.
func (s *SeatStore) Seed(ctx context.Context, rooms []domain.Room) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, r := range rooms {
			field := roomField(r.ID)
			pipe.HSetNX(ctx, keyRooms, field, r.Name)
			if r.Occupied {
				pipe.HSetNX(ctx, keyGuests, field, r.GuestName)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed rooms in redis: %w", err)
	}
	return nil
}

func (s *SeatStore) ListRooms(ctx context.Context) ([]domain.Room, error) {
	names, err := s.client.HGetAll(ctx, keyRooms).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms from redis: %w", err)
	}
	guests, err := s.client.HGetAll(ctx, keyGuests).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get room guests from redis: %w", err)
	}

	rooms := make([]domain.Room, 0, len(names))
	for field, name := range names {
		id, err := strconv.ParseInt(field, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid room id %q in redis: %w", field, err)
		}
		guest, occupied := guests[field]
		rooms = append(rooms, domain.Room{ID: int32(id), Name: name, Occupied: occupied, GuestName: guest})
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (s *SeatStore) Reserve(ctx context.Context, roomID int32, guest string) (bool, error) {
	field := roomField(roomID)
	exists, err := s.client.HExists(ctx, keyRooms, field).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check room in redis: %w", err)
	}
	if !exists {
		return false, service.NewEntityNotFoundError("room not found", nil)
	}
	ok, err := s.client.HSetNX(ctx, keyGuests, field, guest).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve room in redis: %w", err)
	}
	return ok, nil
}

func (s *SeatStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SeatStore) Close() error {
	return s.client.Close()
}

func roomField(id int32) string {
	return strconv.FormatInt(int64(id), 10)
}
