package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	foodPackageRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/foodpackage"
	roomRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/room"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
	"github.com/m04kA/SMC-ReservationService/pkg/validation"
)

// Service справочник комнат и пакетов питания
type Service struct {
	roomRepo        RoomRepository
	foodPackageRepo FoodPackageRepository
	cache           AvailabilityCache
	logger          Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(
	roomRepo RoomRepository,
	foodPackageRepo FoodPackageRepository,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		roomRepo:        roomRepo,
		foodPackageRepo: foodPackageRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Комнаты

// GetRoom получает комнату по ID (используется валидатором бронирований)
func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetRoom: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetRoom - repository error: %v", ErrInternal, err)
	}
	return room, nil
}

// ListRooms возвращает все комнаты по алфавиту
func (s *Service) ListRooms(ctx context.Context) (*models.RoomListResponse, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListRooms: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRooms - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainRoomList(rooms), nil
}

// CreateRoom создает комнату
func (s *Service) CreateRoom(ctx context.Context, req *models.RoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("CreateRoom: name=%q, capacity=%d", req.Name, req.Capacity)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("CreateRoom: validation failed: %s", validation.Describe(err))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, validation.Describe(err))
	}

	room, err := s.roomRepo.Create(ctx, req.ToDomain(0))
	if err != nil {
		if errors.Is(err, roomRepo.ErrDuplicateName) {
			s.logger.Warn("CreateRoom: room %q already exists", req.Name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("CreateRoom: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRoom - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRoom: created room id=%d", room.ID)
	return models.FromDomainRoom(room), nil
}

// UpdateRoom обновляет комнату. Изменение вместимости не затрагивает существующие бронирования
func (s *Service) UpdateRoom(ctx context.Context, id int64, req *models.RoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("UpdateRoom: id=%d, name=%q, capacity=%d", id, req.Name, req.Capacity)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("UpdateRoom: validation failed: %s", validation.Describe(err))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, validation.Describe(err))
	}

	room, err := s.roomRepo.Update(ctx, req.ToDomain(id))
	if err != nil {
		switch {
		case errors.Is(err, roomRepo.ErrRoomNotFound):
			return nil, ErrRoomNotFound
		case errors.Is(err, roomRepo.ErrDuplicateName):
			return nil, ErrDuplicateName
		}
		s.logger.Error("UpdateRoom: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateRoom - repository error: %v", ErrInternal, err)
	}

	s.flushAvailability(ctx, "UpdateRoom")
	return models.FromDomainRoom(room), nil
}

// DeleteRoom удаляет комнату, бронирования остаются в истории без room_id
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	s.logger.Info("DeleteRoom: id=%d", id)

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		s.logger.Error("DeleteRoom: repository error for room id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteRoom - repository error: %v", ErrInternal, err)
	}

	s.flushAvailability(ctx, "DeleteRoom")
	return nil
}

// Пакеты питания

// GetFoodPackage получает пакет питания по ID
func (s *Service) GetFoodPackage(ctx context.Context, id int64) (*domain.FoodPackage, error) {
	pkg, err := s.foodPackageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, foodPackageRepo.ErrFoodPackageNotFound) {
			return nil, ErrFoodPackageNotFound
		}
		s.logger.Error("GetFoodPackage: repository error for package id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetFoodPackage - repository error: %v", ErrInternal, err)
	}
	return pkg, nil
}

// ListFoodPackages возвращает все пакеты питания по алфавиту
func (s *Service) ListFoodPackages(ctx context.Context) (*models.FoodPackageListResponse, error) {
	packages, err := s.foodPackageRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListFoodPackages: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListFoodPackages - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainFoodPackageList(packages), nil
}

// CreateFoodPackage создает пакет питания
func (s *Service) CreateFoodPackage(ctx context.Context, req *models.FoodPackageRequest) (*models.FoodPackageResponse, error) {
	s.logger.Info("CreateFoodPackage: name=%q, price=%.2f", req.Name, req.Price)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("CreateFoodPackage: validation failed: %s", validation.Describe(err))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, validation.Describe(err))
	}

	pkg, err := s.foodPackageRepo.Create(ctx, req.ToDomain(0))
	if err != nil {
		if errors.Is(err, foodPackageRepo.ErrDuplicateName) {
			s.logger.Warn("CreateFoodPackage: package %q already exists", req.Name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("CreateFoodPackage: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateFoodPackage - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateFoodPackage: created package id=%d", pkg.ID)
	return models.FromDomainFoodPackage(pkg), nil
}

// UpdateFoodPackage обновляет пакет питания
func (s *Service) UpdateFoodPackage(ctx context.Context, id int64, req *models.FoodPackageRequest) (*models.FoodPackageResponse, error) {
	s.logger.Info("UpdateFoodPackage: id=%d, name=%q", id, req.Name)

	if err := validation.Struct(req); err != nil {
		s.logger.Warn("UpdateFoodPackage: validation failed: %s", validation.Describe(err))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, validation.Describe(err))
	}

	pkg, err := s.foodPackageRepo.Update(ctx, req.ToDomain(id))
	if err != nil {
		switch {
		case errors.Is(err, foodPackageRepo.ErrFoodPackageNotFound):
			return nil, ErrFoodPackageNotFound
		case errors.Is(err, foodPackageRepo.ErrDuplicateName):
			return nil, ErrDuplicateName
		}
		s.logger.Error("UpdateFoodPackage: repository error for package id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateFoodPackage - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFoodPackage(pkg), nil
}

// DeleteFoodPackage удаляет пакет питания
func (s *Service) DeleteFoodPackage(ctx context.Context, id int64) error {
	s.logger.Info("DeleteFoodPackage: id=%d", id)

	if err := s.foodPackageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, foodPackageRepo.ErrFoodPackageNotFound) {
			return ErrFoodPackageNotFound
		}
		s.logger.Error("DeleteFoodPackage: repository error for package id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteFoodPackage - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) flushAvailability(ctx context.Context, op string) {
	if err := s.cache.Flush(ctx); err != nil {
		s.logger.Warn("%s: failed to flush availability cache: %v", op, err)
	}
}
