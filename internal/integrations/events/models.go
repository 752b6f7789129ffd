package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Routing keys доменных событий
const (
	RoutingKeyCreated       = "reservation.created"
	RoutingKeyStatusChanged = "reservation.status_changed"
)

// ReservationEvent полезная нагрузка события о бронировании
type ReservationEvent struct {
	EventID        string  `json:"event_id"`
	ReservationID  int64   `json:"reservation_id"`
	Status         string  `json:"status"`
	PreviousStatus *string `json:"previous_status,omitempty"`
	RoomID         *int64  `json:"room_id,omitempty"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	PartySize      int     `json:"party_size"`
	OccurredAt     string  `json:"occurred_at"` // RFC3339
}

// NewReservationEvent собирает событие по бронированию
func NewReservationEvent(res *domain.Reservation, previous *domain.ReservationStatus, occurredAt time.Time) ReservationEvent {
	event := ReservationEvent{
		EventID:       uuid.NewString(),
		ReservationID: res.ID,
		Status:        string(res.Status),
		RoomID:        res.RoomID,
		Date:          res.Date.Format(domain.DateFormat),
		Time:          res.Time.String(),
		PartySize:     res.PartySize,
		OccurredAt:    occurredAt.UTC().Format(time.RFC3339),
	}
	if previous != nil {
		prev := string(*previous)
		event.PreviousStatus = &prev
	}
	return event
}
