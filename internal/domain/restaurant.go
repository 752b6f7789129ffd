package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// RestaurantProfile is the single restaurant configuration row
type RestaurantProfile struct {
	Name        string
	Address     string
	PhoneNumber string
	Description *string

	OpeningTime             types.TimeString
	ClosingTime             types.TimeString
	SlotIntervalMinutes     int
	DefaultMaxGuestsPerSlot int // capacity of the legacy all-rooms availability mode

	UpdatedAt time.Time
}

// Room is a bookable dining area with an aggregate guest capacity per slot
type Room struct {
	ID          int64
	Name        string
	Capacity    int
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fits returns true if a party of the given size can ever be seated in the room
func (r *Room) Fits(partySize int) bool {
	return partySize <= r.Capacity
}

// FoodPackage is an optional pre-ordered menu attached to a reservation
type FoodPackage struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
