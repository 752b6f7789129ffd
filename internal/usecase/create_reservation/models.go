package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Outcome исход обработки заявки
type Outcome string

const (
	OutcomeAccepted        Outcome = "accepted"
	OutcomeWaitlisted      Outcome = "waitlisted"
	OutcomeWaitlistOffered Outcome = "waitlist_offered"
	OutcomeRejected        Outcome = "rejected"
)

// Причины отказа
const (
	ReasonRequired        = "required"
	ReasonInvalidEmail    = "invalid email"
	ReasonInvalidTime     = "invalid time format, expected HH:MM"
	ReasonTooLong         = "too long"
	ReasonPartySize       = "party size must be positive"
	ReasonPastDate        = "date is in the past"
	ReasonOutsideHours    = "outside operating hours"
	ReasonRoomNotFound    = "room not found"
	ReasonPackageNotFound = "food package not found"
	ReasonExceedsCapacity = "exceeds room capacity"
	ReasonSlotFull        = "not enough capacity in this slot"
)

// FieldError ошибка конкретного поля заявки
type FieldError struct {
	Field   string
	Message string
}

// Request модель заявки на бронирование
type Request struct {
	UserID *int64 // nil для гостя

	GuestName  string
	GuestEmail string
	GuestPhone string

	Date      time.Time        // Дата (UTC полночь), нулевая = не указана
	Time      types.TimeString // Время слота, например "19:00"
	PartySize int
	RoomID    int64 // 0 = не указана

	FoodPackageID   *int64
	SpecialRequests *string

	JoinWaitlist bool // согласие встать в лист ожидания, если мест нет
}

// Response результат обработки заявки
type Response struct {
	Outcome     Outcome
	Reasons     []FieldError
	Reservation *domain.Reservation // заполнено для accepted и waitlisted
	Remaining   int                 // свободные места слота для waitlist_offered
}

// Created возвращает true, если бронирование сохранено
func (r *Response) Created() bool {
	return r.Outcome == OutcomeAccepted || r.Outcome == OutcomeWaitlisted
}

func reject(reasons ...FieldError) *Response {
	return &Response{Outcome: OutcomeRejected, Reasons: reasons}
}
