package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ProfileProvider источник профиля ресторана (часы работы, общая вместимость)
type ProfileProvider interface {
	Get(ctx context.Context) (*domain.RestaurantProfile, error)
}

// RoomCatalog источник комнат
type RoomCatalog interface {
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
}

// CapacityLedger занятость слотов даты
type CapacityLedger interface {
	// CommittedByTime возвращает занятые места по времени; roomID == nil - по всем комнатам
	CommittedByTime(ctx context.Context, date time.Time, roomID *int64) (map[types.TimeString]int, error)
}

// AvailabilityCache кеш рассчитанной доступности
// Version читается до расчета; Set с версией, устаревшей из-за Invalidate, ничего не пишет
type AvailabilityCache interface {
	Get(ctx context.Context, date time.Time, roomID *int64) ([]domain.AvailableSlot, bool, error)
	Version(ctx context.Context, date time.Time) (string, error)
	Set(ctx context.Context, date time.Time, roomID *int64, version string, slots []domain.AvailableSlot) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
