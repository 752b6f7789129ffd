package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service жизненный цикл бронирований: просмотр, отмена и смена статусов
type Service struct {
	reservationRepo ReservationRepository
	rooms           RoomCatalog
	ledger          CapacityLedger
	staff           StaffChecker
	txManager       TransactionManager
	cache           AvailabilityCache
	events          EventPublisher
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	rooms RoomCatalog,
	ledger CapacityLedger,
	staff StaffChecker,
	txManager TransactionManager,
	cache AvailabilityCache,
	events EventPublisher,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		rooms:           rooms,
		ledger:          ledger,
		staff:           staff,
		txManager:       txManager,
		cache:           cache,
		events:          events,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование может владелец или сотрудник ресторана
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, res, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainReservation(res), nil
}

// GetUserReservations получает бронирования пользователя, сначала самые поздние
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d", req.UserID)

	filter := domain.ReservationsFilter{UserID: &req.UserID}
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Statuses = []domain.ReservationStatus{status}
	}

	reservations, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// List получает бронирования для сотрудников с фильтрами по статусу, дате и комнате
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListReservations: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListReservations: fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование по запросу владельца
// Разрешено для pending/confirmed/waitlisted, пока время визита не наступило
func (s *Service) Cancel(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, userID)

	var (
		res      *domain.Reservation
		previous domain.ReservationStatus
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.reservationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if !current.IsOwnedBy(userID) {
			return ErrNotOwner
		}

		if !current.CanBeSelfCancelled(s.timeProvider.Now(), s.location) {
			return fmt.Errorf("%w: status=%s, scheduled at %s", ErrCancellationNotAllowed,
				current.Status, current.ScheduledAt(s.location).Format(time.RFC3339))
		}

		if err := s.reservationRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
			return err
		}

		previous = current.Status
		current.Status = domain.StatusCancelled
		res = current
		return nil
	})
	if err != nil {
		return nil, s.mapError("Cancel", id, err)
	}

	s.afterStatusChange(ctx, res, previous)
	s.logger.Info("Cancel: reservation id=%d cancelled (was %s)", id, previous)
	return models.FromDomainReservation(res), nil
}

// UpdateStatus меняет статус бронирования по запросу сотрудника
// Подтверждение из листа ожидания перепроверяет вместимость под блокировкой слота
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d", id, req.Status, req.UserID)

	next, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var (
		res      *domain.Reservation
		previous domain.ReservationStatus
	)

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.reservationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if !current.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
		}

		if current.Status == domain.StatusWaitlisted && next == domain.StatusConfirmed {
			if err := s.checkPromotionCapacity(ctx, current); err != nil {
				return err
			}
		}

		if err := s.reservationRepo.UpdateStatus(ctx, id, next); err != nil {
			return err
		}

		previous = current.Status
		current.Status = next
		res = current
		return nil
	})
	if err != nil {
		return nil, s.mapError("UpdateStatus", id, err)
	}

	s.afterStatusChange(ctx, res, previous)
	s.logger.Info("UpdateStatus: reservation id=%d moved %s -> %s", id, previous, next)
	return models.FromDomainReservation(res), nil
}

// Вспомогательные методы

// checkPromotionCapacity блокирует слот и проверяет, что гости из листа ожидания помещаются
func (s *Service) checkPromotionCapacity(ctx context.Context, res *domain.Reservation) error {
	key, ok := res.SlotKey()
	if !ok {
		return fmt.Errorf("%w: room of reservation id=%d was deleted", ErrNoCapacity, res.ID)
	}

	if err := s.reservationRepo.LockSlot(ctx, key); err != nil {
		return err
	}

	room, err := s.rooms.GetRoom(ctx, key.RoomID)
	if err != nil {
		if errors.Is(err, catalog.ErrRoomNotFound) {
			return fmt.Errorf("%w: room id=%d not found", ErrNoCapacity, key.RoomID)
		}
		return err
	}

	check, err := s.ledger.HasCapacity(ctx, room, res.Date, res.Time, res.PartySize)
	if err != nil {
		return err
	}
	if !check.Fits {
		return fmt.Errorf("%w: %d of %d seats taken, party of %d", ErrNoCapacity, check.Committed, check.Capacity, res.PartySize)
	}

	return nil
}

// afterStatusChange сбрасывает кеш доступности и публикует событие; ошибки только логируются
func (s *Service) afterStatusChange(ctx context.Context, res *domain.Reservation, previous domain.ReservationStatus) {
	if err := s.cache.Invalidate(ctx, res.Date); err != nil {
		s.logger.Warn("StatusChange: failed to invalidate availability for %s: %v", res.Date.Format(domain.DateFormat), err)
	}
	if err := s.events.StatusChanged(ctx, res, previous); err != nil {
		s.logger.Warn("StatusChange: failed to publish event for reservation id=%d: %v", res.ID, err)
	}
}

// checkUserAccess проверяет, что пользователь владелец бронирования или сотрудник
func (s *Service) checkUserAccess(ctx context.Context, res *domain.Reservation, userID int64) error {
	if res.IsOwnedBy(userID) {
		return nil
	}

	isStaff, err := s.staff.IsStaff(ctx, userID)
	if err != nil {
		s.logger.Warn("checkUserAccess: failed to check user=%d: %v", userID, err)
		return ErrNotOwner
	}
	if !isStaff {
		return ErrNotOwner
	}

	return nil
}

func (s *Service) mapError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		s.logger.Warn("%s: reservation id=%d not found", op, id)
		return ErrReservationNotFound
	case errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrCancellationNotAllowed),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrNoCapacity):
		s.logger.Warn("%s: reservation id=%d: %v", op, id, err)
		return err
	default:
		s.logger.Error("%s: failed for reservation id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - %v", ErrInternal, op, err)
	}
}
