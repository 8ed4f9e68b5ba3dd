package postgres

import (
	"context"
	"errors"
	"fmt"

	"seatrouter/domain"
	"seatrouter/service"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const roomsTable = "rooms"

const schema = `
create table if not exists rooms (
	room_id    integer primary key,
	room_name  text    not null,
	occupied   boolean not null default false,
	guest_name text    not null default ''
);
`

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// SeatStore keeps rooms in the Postgres table rooms(room_id, room_name, occupied, guest_name).
type SeatStore struct {
	db *pgxpool.Pool
}

// NewPool parses dsn and creates a connection pool. The pool connects lazily; call Ping (the
// seat manager does it with retries) to find out whether the database is reachable.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	return pool, nil
}

func NewSeatStore(db *pgxpool.Pool) *SeatStore {
	return &SeatStore{db: db}
}

// EnsureSchema creates the rooms table when missing.
func (s *SeatStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create rooms table: %w", err)
	}
	return nil
}

// Seed inserts the given rooms, skipping IDs that already exist.
func (s *SeatStore) Seed(ctx context.Context, rooms []domain.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	q := psql.Insert(roomsTable).Columns("room_id", "room_name", "occupied", "guest_name")
	for _, r := range rooms {
		q = q.Values(r.ID, r.Name, r.Occupied, r.GuestName)
	}
	sql, args, err := q.Suffix("on conflict (room_id) do nothing").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build seed query: %w", err)
	}
	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to seed rooms: %w", err)
	}
	return nil
}

func (s *SeatStore) ListRooms(ctx context.Context) ([]domain.Room, error) {
	sql, args, err := psql.Select("room_id", "room_name", "occupied", "guest_name").
		From(roomsTable).
		OrderBy("room_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	rooms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Room, error) {
		var r domain.Room
		err := row.Scan(&r.ID, &r.Name, &r.Occupied, &r.GuestName)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan rooms: %w", err)
	}
	return rooms, nil
}

// Reserve flips a free room to occupied with a single conditional UPDATE, so concurrent
// reservations of one room from several seat-management servers have exactly one winner.
func (s *SeatStore) Reserve(ctx context.Context, roomID int32, guest string) (bool, error) {
	sql, args, err := psql.Update(roomsTable).
		Set("occupied", true).
		Set("guest_name", guest).
		Where(squirrel.Eq{"room_id": roomID, "occupied": false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build reserve query: %w", err)
	}
	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("failed to reserve room: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	sql, args, err = psql.Select("1").From(roomsTable).Where(squirrel.Eq{"room_id": roomID}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build lookup query: %w", err)
	}
	var one int
	err = s.db.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, service.NewEntityNotFoundError("room not found", err)
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up room: %w", err)
	}
	return false, nil
}

func (s *SeatStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *SeatStore) Close() error {
	s.db.Close()
	return nil
}
