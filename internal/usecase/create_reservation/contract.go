package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/userservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/ledger"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	LockSlot(ctx context.Context, key domain.SlotKey) error
}

// ProfileProvider источник профиля ресторана (часы работы)
type ProfileProvider interface {
	Get(ctx context.Context) (*domain.RestaurantProfile, error)
}

// Catalog справочник комнат и пакетов питания
type Catalog interface {
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	GetFoodPackage(ctx context.Context, id int64) (*domain.FoodPackage, error)
}

// CapacityLedger проверка вместимости слота
type CapacityLedger interface {
	HasCapacity(ctx context.Context, room *domain.Room, date time.Time, t types.TimeString, partySize int) (ledger.Check, error)
}

// UserServiceClient источник контактов аккаунта для предзаполнения
type UserServiceClient interface {
	Contact(ctx context.Context, userID int64) (*userservice.Contact, error)
}

// TransactionManager интерфейс для управления транзакциями
// Транзакция READ COMMITTED: после LockSlot каждый запрос видит свежие данные слота
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache кеш доступности по датам
type AvailabilityCache interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	ReservationCreated(ctx context.Context, res *domain.Reservation) error
}

// DecisionRecorder учет исходов заявок в метриках
type DecisionRecorder interface {
	RecordDecision(outcome string)
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
