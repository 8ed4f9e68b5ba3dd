package domain

import "fmt"

// Tier names one logical group of interchangeable backend instances.
type Tier string

const (
	TierReservation    Tier = "reservation"
	TierSeatManagement Tier = "seat_management"
)

// MsgServiceUnavailable is the fixed text every synthesized unavailable-tier response contains.
const MsgServiceUnavailable = "service temporarily unavailable"

// ConfigPrefix returns the key prefix used for this tier in configuration files
// (ReservationServerCount, SeatManagementServerIP1, ...).
func (t Tier) ConfigPrefix() string {
	switch t {
	case TierReservation:
		return "Reservation"
	case TierSeatManagement:
		return "SeatManagement"
	default:
		return string(t)
	}
}

// DisplayName is the human readable tier name used in user-facing messages.
func (t Tier) DisplayName() string {
	switch t {
	case TierReservation:
		return "reservation"
	case TierSeatManagement:
		return "seat management"
	default:
		return string(t)
	}
}

// UnavailableMessage is the message of the response synthesized when no endpoint of the tier is live.
func UnavailableMessage(t Tier) string {
	return fmt.Sprintf("Sorry, all %s servers are down: %s. Please try again later.", t.DisplayName(), MsgServiceUnavailable)
}
