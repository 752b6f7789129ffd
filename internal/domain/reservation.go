package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusWaitlisted ReservationStatus = "waitlisted"
	StatusCancelled  ReservationStatus = "cancelled"
	StatusCompleted  ReservationStatus = "completed"
)

// Reservation represents a table reservation for a party in a room at a time slot
type Reservation struct {
	ID     int64
	UserID *int64 // nil for guest reservations

	GuestName  string
	GuestEmail string
	GuestPhone string

	Date      time.Time
	Time      types.TimeString
	PartySize int

	RoomID   *int64 // nil once the room has been deleted
	RoomName string // denormalized for history

	FoodPackageID   *int64
	SpecialRequests *string

	Status ReservationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConsumesCapacity returns true if the reservation counts towards committed guests
func (r *Reservation) ConsumesCapacity() bool {
	return r.Status.ConsumesCapacity()
}

// IsOwnedBy returns true if the reservation was made by the given user
func (r *Reservation) IsOwnedBy(userID int64) bool {
	return r.UserID != nil && *r.UserID == userID
}

// ScheduledAt returns the moment the reservation starts in the restaurant time zone
func (r *Reservation) ScheduledAt(loc *time.Location) time.Time {
	return r.Time.On(r.Date, loc)
}

// CanBeSelfCancelled returns true if the owner may still cancel the reservation at now
func (r *Reservation) CanBeSelfCancelled(now time.Time, loc *time.Location) bool {
	switch r.Status {
	case StatusPending, StatusConfirmed, StatusWaitlisted:
	default:
		return false
	}
	return r.ScheduledAt(loc).After(now)
}

// SlotKey identifies the capacity bucket of the reservation
func (r *Reservation) SlotKey() (SlotKey, bool) {
	if r.RoomID == nil {
		return SlotKey{}, false
	}
	return SlotKey{RoomID: *r.RoomID, Date: r.Date, Time: r.Time}, true
}

// ConsumesCapacity returns true for statuses counted in committed guests
func (s ReservationStatus) ConsumesCapacity() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true if no further transitions are possible
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsValid returns true for known statuses
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusWaitlisted, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows s -> next
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case StatusPending, StatusWaitlisted:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted
	default:
		return false
	}
}

// ReservationsFilter filter for listing reservations
type ReservationsFilter struct {
	UserID   *int64
	RoomID   *int64
	Date     *time.Time
	Time     *types.TimeString
	Statuses []ReservationStatus // empty = any status
}
