package config

import (
	"fmt"
	"os"

	"seatrouter/domain"

	"gopkg.in/yaml.v3"
)

// roomsFile is the YAML room catalog:
//
//	rooms:
//	  - id: 1
//	    name: Sea view
//	  - id: 2
//	    name: Garden
//	    occupied: true
//	    guest_name: Ann
type roomsFile struct {
	Rooms []domain.Room `yaml:"rooms"`
}

// LoadRooms reads the room catalog at path. IDs must be positive and unique; a missing name
// becomes "Room <id>".
func LoadRooms(path string) ([]domain.Room, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rooms %s: %w", path, err)
	}
	var f roomsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rooms %s: %w", path, err)
	}
	seen := make(map[int32]bool, len(f.Rooms))
	for i := range f.Rooms {
		r := &f.Rooms[i]
		if r.ID <= 0 {
			return nil, fmt.Errorf("rooms %s: entry %d: id must be positive", path, i+1)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("rooms %s: duplicate id %d", path, r.ID)
		}
		seen[r.ID] = true
		if r.Name == "" {
			r.Name = fmt.Sprintf("Room %d", r.ID)
		}
		if !r.Occupied {
			r.GuestName = ""
		}
	}
	return f.Rooms, nil
}

// DefaultRooms returns n free rooms with IDs 1..n.
func DefaultRooms(n int) []domain.Room {
	rooms := make([]domain.Room, n)
	for i := range n {
		rooms[i] = domain.Room{ID: int32(i + 1), Name: fmt.Sprintf("Room %d", i+1)}
	}
	return rooms
}

// Rooms returns the catalog of cfg: the RoomsFile when set, RoomCount default rooms otherwise.
func (cfg *Config) Rooms() ([]domain.Room, error) {
	if cfg.RoomsFile != "" {
		return LoadRooms(cfg.RoomsFile)
	}
	return DefaultRooms(cfg.RoomCount), nil
}
