package profile

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ProfileRepository интерфейс репозитория профиля ресторана
type ProfileRepository interface {
	Get(ctx context.Context) (*domain.RestaurantProfile, error)
	CreateIfMissing(ctx context.Context, profile *domain.RestaurantProfile) (bool, error)
	Update(ctx context.Context, profile *domain.RestaurantProfile) (*domain.RestaurantProfile, error)
}

// AvailabilityCache кеш доступности, который сбрасывается при смене часов работы
type AvailabilityCache interface {
	Flush(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
