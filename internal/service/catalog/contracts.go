package catalog

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) (*domain.Room, error)
	Delete(ctx context.Context, id int64) error
}

// FoodPackageRepository интерфейс репозитория пакетов питания
type FoodPackageRepository interface {
	Create(ctx context.Context, pkg *domain.FoodPackage) (*domain.FoodPackage, error)
	GetByID(ctx context.Context, id int64) (*domain.FoodPackage, error)
	List(ctx context.Context) ([]*domain.FoodPackage, error)
	Update(ctx context.Context, pkg *domain.FoodPackage) (*domain.FoodPackage, error)
	Delete(ctx context.Context, id int64) error
}

// AvailabilityCache кеш доступности, зависящий от вместимости комнат
type AvailabilityCache interface {
	Flush(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
