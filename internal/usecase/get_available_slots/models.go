package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date   time.Time // Дата (UTC полночь)
	RoomID *int64    // nil - общая вместимость ресторана по всем комнатам
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date   time.Time
	RoomID *int64
	Slots  []Slot // только слоты со свободными местами
}

// Slot модель временного слота
type Slot struct {
	StartTime         types.TimeString // Время начала слота (например, "19:00")
	RemainingCapacity int              // Количество свободных мест
	TotalCapacity     int              // Общее количество мест
}
