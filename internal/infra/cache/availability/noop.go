package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// NoopCache используется, когда Redis выключен в конфигурации
type NoopCache struct{}

func (NoopCache) Get(context.Context, time.Time, *int64) ([]domain.AvailableSlot, bool, error) {
	return nil, false, nil
}

func (NoopCache) Version(context.Context, time.Time) (string, error) {
	return "", nil
}

func (NoopCache) Set(context.Context, time.Time, *int64, string, []domain.AvailableSlot) (bool, error) {
	return false, nil
}

func (NoopCache) Invalidate(context.Context, time.Time) error {
	return nil
}

func (NoopCache) Flush(context.Context) error {
	return nil
}
