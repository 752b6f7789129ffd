package domain

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// Default restaurant profile values, used to bootstrap the singleton row
const (
	DefaultRestaurantName      = "Our Restaurant"
	DefaultOpeningTime         = types.TimeString("10:00")
	DefaultClosingTime         = types.TimeString("22:00")
	DefaultSlotIntervalMinutes = 30
	DefaultMaxGuestsPerSlot    = 20
	DefaultTimezone            = "UTC"
)

// Business validation constants
const (
	MaxNameLength            = 100
	MaxPhoneLength           = 20
	MaxSpecialRequestsLength = 500
	MaxDescriptionLength     = 1000
	MaxRoomCapacity          = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CapacityStatuses statuses counted in committed guests of a slot
var CapacityStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// AllStatuses every known reservation status
var AllStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusWaitlisted,
	StatusCancelled,
	StatusCompleted,
}
