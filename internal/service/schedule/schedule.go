package schedule

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const minutesPerDay = 24 * 60

// GenerateSlots генерирует времена начала слотов в полуинтервале [opening, closing)
// с шагом intervalMinutes. Число итераций ограничено (24*60)/intervalMinutes.
func GenerateSlots(opening, closing types.TimeString, intervalMinutes int) ([]types.TimeString, error) {
	if intervalMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot interval must be positive, got %d", ErrConfiguration, intervalMinutes)
	}

	openMinutes := opening.Minutes()
	closeMinutes := closing.Minutes()
	if openMinutes < 0 || closeMinutes < 0 {
		return nil, fmt.Errorf("%w: invalid time format (opening=%q, closing=%q)", ErrConfiguration, opening, closing)
	}
	if openMinutes >= closeMinutes {
		return nil, fmt.Errorf("%w: opening %s must be before closing %s", ErrConfiguration, opening, closing)
	}

	maxSteps := minutesPerDay / intervalMinutes
	slots := make([]types.TimeString, 0, (closeMinutes-openMinutes+intervalMinutes-1)/intervalMinutes)

	for current, steps := openMinutes, 0; current < closeMinutes; current += intervalMinutes {
		if steps >= maxSteps {
			return nil, fmt.Errorf("%w: slot generation exceeded %d steps", ErrConfiguration, maxSteps)
		}
		slot, err := types.FromMinutes(current)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		slots = append(slots, slot)
		steps++
	}

	return slots, nil
}

// OperatingSlots возвращает слоты по часам работы ресторана
func OperatingSlots(profile *domain.RestaurantProfile) ([]types.TimeString, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: restaurant profile is not configured", ErrConfiguration)
	}
	return GenerateSlots(profile.OpeningTime, profile.ClosingTime, profile.SlotIntervalMinutes)
}

// Contains проверяет, что t совпадает с одним из слотов
func Contains(slots []types.TimeString, t types.TimeString) bool {
	for _, slot := range slots {
		if slot.Equal(t) {
			return true
		}
	}
	return false
}
