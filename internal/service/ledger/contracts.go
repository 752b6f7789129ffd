package ledger

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationRepository источник занятых мест
type ReservationRepository interface {
	// SumCommittedGuests сумма гостей в статусах pending/confirmed на слот комнаты
	SumCommittedGuests(ctx context.Context, roomID int64, date time.Time, t types.TimeString) (int, error)
	// CommittedByTime сумма гостей по времени слота за дату; roomID nil - по всем комнатам
	CommittedByTime(ctx context.Context, date time.Time, roomID *int64) (map[types.TimeString]int, error)
}
