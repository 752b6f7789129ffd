package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule"
)

// UseCase use case приема заявки на бронирование
type UseCase struct {
	reservationRepo ReservationRepository
	profiles        ProfileProvider
	catalog         Catalog
	ledger          CapacityLedger
	userClient      UserServiceClient
	txManager       TransactionManager
	cache           AvailabilityCache
	events          EventPublisher
	decisions       DecisionRecorder
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	profiles ProfileProvider,
	catalog Catalog,
	ledger CapacityLedger,
	userClient UserServiceClient,
	txManager TransactionManager,
	cache AvailabilityCache,
	events EventPublisher,
	decisions DecisionRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		profiles:        profiles,
		catalog:         catalog,
		ledger:          ledger,
		userClient:      userClient,
		txManager:       txManager,
		cache:           cache,
		events:          events,
		decisions:       decisions,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute проверяет заявку и, если решение положительное, сохраняет бронирование
// Проверка вместимости и вставка выполняются в одной транзакции под advisory-блокировкой
// слота, поэтому чтение вместимости видит все вставки предыдущих владельцев блокировки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	uc.logger.Info("CreateReservation: room=%d, date=%s, time=%s, party=%d, waitlist=%t",
		req.RoomID, req.Date.Format(domain.DateFormat), req.Time, req.PartySize, req.JoinWaitlist)

	resp, err := uc.decide(ctx, req)
	if err != nil {
		return nil, err
	}

	uc.decisions.RecordDecision(string(resp.Outcome))

	if resp.Created() {
		uc.afterCreate(ctx, resp.Reservation)
		uc.logger.Info("CreateReservation: reservation id=%d created with status=%s",
			resp.Reservation.ID, resp.Reservation.Status)
	} else {
		uc.logger.Info("CreateReservation: outcome=%s, reasons=%v", resp.Outcome, resp.Reasons)
	}

	return resp, nil
}

func (uc *UseCase) decide(ctx context.Context, req *Request) (*Response, error) {
	// 1. Контакты из аккаунта пользователя, если они не указаны в заявке
	if req.UserID != nil {
		uc.prefill(ctx, req)
	}

	// 2. Обязательные поля и форматы, ошибки накапливаются
	if errs := validateFields(req); len(errs) > 0 {
		return reject(errs...), nil
	}

	// 3. Размер группы
	if req.PartySize <= 0 {
		return reject(FieldError{Field: "party_size", Message: ReasonPartySize}), nil
	}

	// 4. Дата не в прошлом, без обращения к ledger
	if isDateInPast(req.Date, uc.timeProvider.Now(), uc.location) {
		return reject(FieldError{Field: "date", Message: ReasonPastDate}), nil
	}

	// 5. Время совпадает со слотом часов работы
	profile, err := uc.profiles.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get restaurant profile: %v", err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}

	slots, err := schedule.OperatingSlots(profile)
	if err != nil {
		uc.logger.Error("CreateReservation: invalid operating hours: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if !schedule.Contains(slots, req.Time) {
		return reject(FieldError{Field: "time", Message: ReasonOutsideHours}), nil
	}

	// 6. Комната, пакет питания и вместимость комнаты
	room, rejected, err := uc.resolveReferences(ctx, req)
	if err != nil || rejected != nil {
		return rejected, err
	}

	if !room.Fits(req.PartySize) {
		return reject(FieldError{
			Field:   "party_size",
			Message: fmt.Sprintf("%s (max %d)", ReasonExceedsCapacity, room.Capacity),
		}), nil
	}

	// 7. Проверка занятости и запись в одной транзакции слота
	return uc.commit(ctx, req, room)
}

func (uc *UseCase) prefill(ctx context.Context, req *Request) {
	contact, err := uc.userClient.Contact(ctx, *req.UserID)
	if err != nil {
		uc.logger.Warn("CreateReservation: using submitted contacts for user=%d: %v", *req.UserID, err)
		return
	}
	prefillFromContact(req, contact)
}

func (uc *UseCase) resolveReferences(ctx context.Context, req *Request) (*domain.Room, *Response, error) {
	room, err := uc.catalog.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, catalog.ErrRoomNotFound) {
			return nil, reject(FieldError{Field: "room_id", Message: ReasonRoomNotFound}), nil
		}
		uc.logger.Error("CreateReservation: failed to get room id=%d: %v", req.RoomID, err)
		return nil, nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	if req.FoodPackageID != nil {
		if _, err := uc.catalog.GetFoodPackage(ctx, *req.FoodPackageID); err != nil {
			if errors.Is(err, catalog.ErrFoodPackageNotFound) {
				return nil, reject(FieldError{Field: "food_package_id", Message: ReasonPackageNotFound}), nil
			}
			uc.logger.Error("CreateReservation: failed to get food package id=%d: %v", *req.FoodPackageID, err)
			return nil, nil, fmt.Errorf("%w: failed to get food package: %v", ErrInternal, err)
		}
	}

	return room, nil, nil
}

func (uc *UseCase) commit(ctx context.Context, req *Request, room *domain.Room) (*Response, error) {
	key := domain.SlotKey{RoomID: room.ID, Date: req.Date, Time: req.Time}

	var resp *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.reservationRepo.LockSlot(txCtx, key); err != nil {
			return fmt.Errorf("%w: failed to lock slot %s: %w", ErrInternal, key, err)
		}

		check, err := uc.ledger.HasCapacity(txCtx, room, req.Date, req.Time, req.PartySize)
		if err != nil {
			return fmt.Errorf("%w: failed to check capacity: %w", ErrInternal, err)
		}

		status := domain.StatusPending
		outcome := OutcomeAccepted
		if !check.Fits {
			uc.logger.Info("CreateReservation: slot %s full, %d/%d seats taken, party=%d",
				key, check.Committed, check.Capacity, req.PartySize)

			if !req.JoinWaitlist {
				resp = &Response{
					Outcome:   OutcomeWaitlistOffered,
					Reasons:   []FieldError{{Field: "time", Message: ReasonSlotFull}},
					Remaining: max(check.Remaining(), 0),
				}
				return nil
			}
			status = domain.StatusWaitlisted
			outcome = OutcomeWaitlisted
		}

		created, err := uc.reservationRepo.Create(txCtx, buildReservation(req, room, status))
		if err != nil {
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		resp = &Response{Outcome: outcome, Reservation: created}
		return nil
	})
	if err != nil {
		uc.logger.Error("CreateReservation: transaction failed for slot %s: %v", key, err)
		return nil, err
	}

	return resp, nil
}

// afterCreate сбрасывает кеш доступности и публикует событие; ошибки только логируются
func (uc *UseCase) afterCreate(ctx context.Context, res *domain.Reservation) {
	if err := uc.cache.Invalidate(ctx, res.Date); err != nil {
		uc.logger.Warn("CreateReservation: failed to invalidate availability for %s: %v", res.Date.Format(domain.DateFormat), err)
	}
	if err := uc.events.ReservationCreated(ctx, res); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish event for reservation id=%d: %v", res.ID, err)
	}
}

func buildReservation(req *Request, room *domain.Room, status domain.ReservationStatus) *domain.Reservation {
	roomID := room.ID
	return &domain.Reservation{
		UserID:          req.UserID,
		GuestName:       strings.TrimSpace(req.GuestName),
		GuestEmail:      strings.TrimSpace(req.GuestEmail),
		GuestPhone:      strings.TrimSpace(req.GuestPhone),
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		RoomID:          &roomID,
		RoomName:        room.Name,
		FoodPackageID:   req.FoodPackageID,
		SpecialRequests: req.SpecialRequests,
		Status:          status,
	}
}
