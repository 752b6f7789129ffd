package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Check результат проверки вместимости слота
type Check struct {
	Committed int
	Capacity  int
	Fits      bool
}

// Remaining сколько гостей еще помещается в слот (может быть отрицательным)
func (c Check) Remaining() int {
	return c.Capacity - c.Committed
}

// Ledger считает занятые места по слотам. Только чтение: значения берутся
// в момент вызова, поэтому решение о записи должно приниматься в той же транзакции.
type Ledger struct {
	repo ReservationRepository
}

// New создает ledger поверх репозитория бронирований
func New(repo ReservationRepository) *Ledger {
	return &Ledger{repo: repo}
}

// CommittedGuests возвращает сумму гостей pending/confirmed для слота комнаты
func (l *Ledger) CommittedGuests(ctx context.Context, roomID int64, date time.Time, t types.TimeString) (int, error) {
	committed, err := l.repo.SumCommittedGuests(ctx, roomID, date, t)
	if err != nil {
		return 0, fmt.Errorf("%w: CommittedGuests - room=%d date=%s time=%s: %w",
			ErrInternal, roomID, date.Format(domain.DateFormat), t, err)
	}
	return committed, nil
}

// HasCapacity проверяет, помещается ли группа partySize в слот комнаты
func (l *Ledger) HasCapacity(ctx context.Context, room *domain.Room, date time.Time, t types.TimeString, partySize int) (Check, error) {
	committed, err := l.CommittedGuests(ctx, room.ID, date, t)
	if err != nil {
		return Check{}, err
	}

	return Check{
		Committed: committed,
		Capacity:  room.Capacity,
		Fits:      committed+partySize <= room.Capacity,
	}, nil
}

// CommittedByTime возвращает занятость всех слотов даты одним запросом
func (l *Ledger) CommittedByTime(ctx context.Context, date time.Time, roomID *int64) (map[types.TimeString]int, error) {
	committed, err := l.repo.CommittedByTime(ctx, date, roomID)
	if err != nil {
		return nil, fmt.Errorf("%w: CommittedByTime - date=%s: %w", ErrInternal, date.Format(domain.DateFormat), err)
	}
	if committed == nil {
		committed = make(map[types.TimeString]int)
	}
	return committed, nil
}
