package get_operating_slots

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type ProfileProvider interface {
	Get(ctx context.Context) (*domain.RestaurantProfile, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
