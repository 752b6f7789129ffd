package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// calculateAvailability считает свободные места для каждого слота
// Слоты без свободных мест не попадают в результат
func calculateAvailability(slots []types.TimeString, committed map[types.TimeString]int, capacity int) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, 0, len(slots))

	for _, start := range slots {
		slot := domain.AvailableSlot{
			StartTime:         start,
			RemainingCapacity: capacity - committed[start],
			TotalCapacity:     capacity,
		}
		if !slot.IsAvailable() {
			continue
		}
		result = append(result, slot)
	}

	return result
}

// dropStartedSlots убирает уже начавшиеся слоты, если дата - сегодня
func dropStartedSlots(slots []domain.AvailableSlot, date, now time.Time, loc *time.Location) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.StartTime.On(date, loc).After(now) {
			result = append(result, slot)
		}
	}
	return result
}

func toResponseSlots(slots []domain.AvailableSlot) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			StartTime:         s.StartTime,
			RemainingCapacity: s.RemainingCapacity,
			TotalCapacity:     s.TotalCapacity,
		}
	}
	return result
}

// today возвращает текущую дату ресторана как UTC полночь
func today(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func dateOnly(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
