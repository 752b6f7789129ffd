package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule"
)

// UseCase use case для получения доступных слотов
type UseCase struct {
	profiles     ProfileProvider
	rooms        RoomCatalog
	ledger       CapacityLedger
	cache        AvailabilityCache
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	profiles ProfileProvider,
	rooms RoomCatalog,
	ledger CapacityLedger,
	cache AvailabilityCache,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		profiles:     profiles,
		rooms:        rooms,
		ledger:       ledger,
		cache:        cache,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает свободные места по слотам даты
// С комнатой считается от вместимости комнаты, без комнаты - от общей вместимости ресторана
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, room=%s", req.Date.Format(domain.DateFormat), roomLabel(req.RoomID))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := dateOnly(req.Date)

	// 2. Дата не в прошлом
	if err := validateDate(date, now, uc.location); err != nil {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Комната, если указана
	var room *domain.Room
	if req.RoomID != nil {
		r, err := uc.rooms.GetRoom(ctx, *req.RoomID)
		if err != nil {
			if errors.Is(err, catalog.ErrRoomNotFound) {
				uc.logger.Warn("GetAvailableSlots: room id=%d not found", *req.RoomID)
				return nil, ErrRoomNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get room id=%d: %v", *req.RoomID, err)
			return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}
		room = r
	}

	// 4. Доступность на весь день: из кеша или расчетом
	slots, err := uc.dayAvailability(ctx, date, room)
	if err != nil {
		return nil, err
	}

	// 5. Для сегодняшней даты убираем уже начавшиеся слоты
	if date.Equal(today(now, uc.location)) {
		slots = dropStartedSlots(slots, date, now, uc.location)
	}

	uc.logger.Info("GetAvailableSlots: %d available slots for date=%s, room=%s",
		len(slots), date.Format(domain.DateFormat), roomLabel(req.RoomID))

	return &Response{
		Date:   date,
		RoomID: req.RoomID,
		Slots:  toResponseSlots(slots),
	}, nil
}

func (uc *UseCase) dayAvailability(ctx context.Context, date time.Time, room *domain.Room) ([]domain.AvailableSlot, error) {
	var roomID *int64
	if room != nil {
		roomID = &room.ID
	}

	cached, ok, err := uc.cache.Get(ctx, date, roomID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cache read failed for date=%s: %v", date.Format(domain.DateFormat), err)
	}
	if ok {
		return cached, nil
	}

	// версия фиксируется до чтения занятости: бронь, попавшая между ними, отменит запись в кеш
	version, verr := uc.cache.Version(ctx, date)
	if verr != nil {
		uc.logger.Warn("GetAvailableSlots: cache version read failed for date=%s: %v", date.Format(domain.DateFormat), verr)
	}

	profile, err := uc.profiles.Get(ctx)
	if err != nil {
		if errors.Is(err, schedule.ErrConfiguration) {
			uc.logger.Error("GetAvailableSlots: restaurant profile is misconfigured: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to get restaurant profile: %v", err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}

	timeSlots, err := schedule.OperatingSlots(profile)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid operating hours: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	committed, err := uc.ledger.CommittedByTime(ctx, date, roomID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get committed guests: %v", err)
		return nil, fmt.Errorf("%w: failed to get committed guests: %v", ErrInternal, err)
	}

	capacity := profile.DefaultMaxGuestsPerSlot
	if room != nil {
		capacity = room.Capacity
	}

	slots := calculateAvailability(timeSlots, committed, capacity)

	if verr != nil {
		return slots, nil
	}
	stored, err := uc.cache.Set(ctx, date, roomID, version, slots)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cache write failed for date=%s: %v", date.Format(domain.DateFormat), err)
	} else if !stored {
		uc.logger.Info("GetAvailableSlots: date=%s invalidated during calculation, cache write skipped", date.Format(domain.DateFormat))
	}

	return slots, nil
}

func roomLabel(roomID *int64) string {
	if roomID == nil {
		return "all"
	}
	return fmt.Sprintf("%d", *roomID)
}
