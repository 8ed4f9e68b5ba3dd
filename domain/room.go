package domain

// Room statuses streamed by GetSeatStatus.
const (
	StatusOccupied = "Occupied"
	StatusFree     = "Free"
	// StatusUnavailable marks the single element synthesized when the seat-management tier is down.
	StatusUnavailable = "Unavailable"
)

// Room is one reservable unit kept by the seat-management tier. GuestName is empty while the room is free.
type Room struct {
	ID        int32  `yaml:"id"`
	Name      string `yaml:"name"`
	Occupied  bool   `yaml:"occupied"`
	GuestName string `yaml:"guest_name"`
}

// Status returns StatusOccupied or StatusFree.
func (r Room) Status() string {
	if r.Occupied {
		return StatusOccupied
	}
	return StatusFree
}
