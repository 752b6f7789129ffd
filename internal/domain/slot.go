package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// SlotKey identifies a (room, date, time) capacity bucket
type SlotKey struct {
	RoomID int64
	Date   time.Time
	Time   types.TimeString
}

// String returns a stable key, used for advisory locks
func (k SlotKey) String() string {
	return fmt.Sprintf("room:%d:%s:%s", k.RoomID, k.Date.Format(DateFormat), k.Time)
}

// AvailableSlot represents a time slot with remaining capacity
type AvailableSlot struct {
	StartTime         types.TimeString
	RemainingCapacity int
	TotalCapacity     int
}

// IsAvailable returns true if at least one more guest fits
func (s *AvailableSlot) IsAvailable() bool {
	return s.RemainingCapacity > 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.TotalCapacity <= 0 {
		return 0
	}
	occupied := s.TotalCapacity - s.RemainingCapacity
	return float64(occupied) / float64(s.TotalCapacity) * 100
}
