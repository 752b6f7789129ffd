package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/ledger"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	LockSlot(ctx context.Context, key domain.SlotKey) error
}

// RoomCatalog источник комнат
type RoomCatalog interface {
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
}

// CapacityLedger проверка вместимости слота
type CapacityLedger interface {
	HasCapacity(ctx context.Context, room *domain.Room, date time.Time, t types.TimeString, partySize int) (ledger.Check, error)
}

// StaffChecker признак сотрудника из UserService
type StaffChecker interface {
	IsStaff(ctx context.Context, userID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache кеш доступности по датам
type AvailabilityCache interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	StatusChanged(ctx context.Context, res *domain.Reservation, previous domain.ReservationStatus) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
