package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/profile/models"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
	"github.com/m04kA/SMC-ReservationService/pkg/validation"
)

// Provider единственный источник профиля ресторана
// Профиль читается из БД один раз (Init) и обновляется только через Update
type Provider struct {
	repo     ProfileRepository
	cache    AvailabilityCache
	defaults *domain.RestaurantProfile
	logger   Logger

	initOnce sync.Once
	initErr  error

	mu      sync.RWMutex
	current *domain.RestaurantProfile
}

// NewProvider создает провайдер профиля; defaults используются, если строки профиля нет в БД
func NewProvider(
	repo ProfileRepository,
	cache AvailabilityCache,
	defaults *domain.RestaurantProfile,
	logger Logger,
) *Provider {
	return &Provider{
		repo:     repo,
		cache:    cache,
		defaults: defaults,
		logger:   logger,
	}
}

// Init загружает профиль, при необходимости создавая его из значений по умолчанию
// Повторные вызовы возвращают результат первого
func (p *Provider) Init(ctx context.Context) error {
	p.initOnce.Do(func() {
		p.initErr = p.load(ctx)
	})
	return p.initErr
}

func (p *Provider) load(ctx context.Context) error {
	if _, err := schedule.OperatingSlots(p.defaults); err != nil {
		p.logger.Error("ProfileInit: invalid default profile: %v", err)
		return err
	}

	created, err := p.repo.CreateIfMissing(ctx, p.defaults)
	if err != nil {
		p.logger.Error("ProfileInit: failed to bootstrap profile: %v", err)
		return fmt.Errorf("%w: Init - bootstrap: %v", ErrInternal, err)
	}
	if created {
		p.logger.Info("ProfileInit: restaurant profile created from config defaults")
	}

	profile, err := p.repo.Get(ctx)
	if err != nil {
		p.logger.Error("ProfileInit: failed to load profile: %v", err)
		return fmt.Errorf("%w: Init - load: %v", ErrInternal, err)
	}

	if _, err := schedule.OperatingSlots(profile); err != nil {
		p.logger.Error("ProfileInit: stored profile has invalid operating hours: %v", err)
		return err
	}

	p.set(profile)
	p.logger.Info("ProfileInit: loaded profile %q, hours %s-%s every %d min",
		profile.Name, profile.OpeningTime, profile.ClosingTime, profile.SlotIntervalMinutes)
	return nil
}

// Get возвращает копию текущего профиля
func (p *Provider) Get(ctx context.Context) (*domain.RestaurantProfile, error) {
	if err := p.Init(ctx); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	profile := *p.current
	return &profile, nil
}

// GetProfile возвращает профиль для API
func (p *Provider) GetProfile(ctx context.Context) (*models.ProfileResponse, error) {
	profile, err := p.Get(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainProfile(profile), nil
}

// Update заменяет профиль ресторана; часы работы проверяются генерацией слотов
func (p *Provider) Update(ctx context.Context, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	p.logger.Info("UpdateProfile: hours %s-%s, interval=%d, maxGuests=%d",
		req.OpeningTime, req.ClosingTime, req.SlotIntervalMinutes, req.DefaultMaxGuestsPerSlot)

	if err := validation.Struct(req); err != nil {
		p.logger.Warn("UpdateProfile: validation failed: %s", validation.Describe(err))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, validation.Describe(err))
	}

	opening, err := types.ParseClock(req.OpeningTime)
	if err != nil {
		return nil, fmt.Errorf("%w: openingTime: %v", ErrInvalidInput, err)
	}
	closing, err := types.ParseClock(req.ClosingTime)
	if err != nil {
		return nil, fmt.Errorf("%w: closingTime: %v", ErrInvalidInput, err)
	}

	profile := &domain.RestaurantProfile{
		Name:                    req.Name,
		Address:                 req.Address,
		PhoneNumber:             req.PhoneNumber,
		Description:             req.Description,
		OpeningTime:             opening,
		ClosingTime:             closing,
		SlotIntervalMinutes:     req.SlotIntervalMinutes,
		DefaultMaxGuestsPerSlot: req.DefaultMaxGuestsPerSlot,
	}

	if _, err := schedule.OperatingSlots(profile); err != nil {
		p.logger.Warn("UpdateProfile: invalid operating hours: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := p.repo.Update(ctx, profile)
	if err != nil {
		p.logger.Error("UpdateProfile: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	p.set(updated)

	if err := p.cache.Flush(ctx); err != nil {
		p.logger.Warn("UpdateProfile: failed to flush availability cache: %v", err)
	}

	p.logger.Info("UpdateProfile: profile updated")
	return models.FromDomainProfile(updated), nil
}

func (p *Provider) set(profile *domain.RestaurantProfile) {
	p.mu.Lock()
	defer p.mu.Unlock()

	copied := *profile
	p.current = &copied
}
