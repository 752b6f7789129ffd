package profile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	profileRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-ReservationService/internal/service/profile/models"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	mu        sync.Mutex
	stored    *domain.RestaurantProfile
	getCalls  int
	updateErr error
}

func (f *fakeRepo) Get(context.Context) (*domain.RestaurantProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.stored == nil {
		return nil, profileRepo.ErrProfileNotFound
	}
	copied := *f.stored
	return &copied, nil
}

func (f *fakeRepo) CreateIfMissing(_ context.Context, p *domain.RestaurantProfile) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stored != nil {
		return false, nil
	}
	copied := *p
	f.stored = &copied
	return true, nil
}

func (f *fakeRepo) Update(_ context.Context, p *domain.RestaurantProfile) (*domain.RestaurantProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	copied := *p
	f.stored = &copied
	return p, nil
}

type fakeCache struct{ flushed int }

func (c *fakeCache) Flush(context.Context) error {
	c.flushed++
	return nil
}

func defaults() *domain.RestaurantProfile {
	return &domain.RestaurantProfile{
		Name:                    domain.DefaultRestaurantName,
		OpeningTime:             domain.DefaultOpeningTime,
		ClosingTime:             domain.DefaultClosingTime,
		SlotIntervalMinutes:     domain.DefaultSlotIntervalMinutes,
		DefaultMaxGuestsPerSlot: domain.DefaultMaxGuestsPerSlot,
	}
}

func TestProvider_InitBootstrapsOnce(t *testing.T) {
	repo := &fakeRepo{}
	provider := NewProvider(repo, &fakeCache{}, defaults(), nopLogger{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, provider.Init(ctx))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, repo.getCalls)

	profile, err := provider.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultOpeningTime, profile.OpeningTime)
	assert.Equal(t, 20, profile.DefaultMaxGuestsPerSlot)
}

func TestProvider_KeepsExistingProfile(t *testing.T) {
	repo := &fakeRepo{stored: &domain.RestaurantProfile{
		Name:                    "Warung",
		OpeningTime:             "17:00",
		ClosingTime:             "23:00",
		SlotIntervalMinutes:     60,
		DefaultMaxGuestsPerSlot: 40,
	}}
	provider := NewProvider(repo, &fakeCache{}, defaults(), nopLogger{})

	profile, err := provider.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Warung", profile.Name)
	assert.Equal(t, 60, profile.SlotIntervalMinutes)
}

func TestProvider_InvalidStoredHours(t *testing.T) {
	repo := &fakeRepo{stored: &domain.RestaurantProfile{
		Name:                "Broken",
		OpeningTime:         "22:00",
		ClosingTime:         "10:00",
		SlotIntervalMinutes: 30,
	}}
	provider := NewProvider(repo, &fakeCache{}, defaults(), nopLogger{})

	_, err := provider.Get(context.Background())
	assert.ErrorIs(t, err, schedule.ErrConfiguration)
}

func TestProvider_GetReturnsCopy(t *testing.T) {
	provider := NewProvider(&fakeRepo{}, &fakeCache{}, defaults(), nopLogger{})

	first, err := provider.Get(context.Background())
	require.NoError(t, err)
	first.SlotIntervalMinutes = 1

	second, err := provider.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotIntervalMinutes, second.SlotIntervalMinutes)
}

func TestProvider_Update(t *testing.T) {
	cache := &fakeCache{}
	repo := &fakeRepo{}
	provider := NewProvider(repo, cache, defaults(), nopLogger{})
	ctx := context.Background()
	require.NoError(t, provider.Init(ctx))

	resp, err := provider.Update(ctx, &models.UpdateProfileRequest{
		Name:                    "Rumah Makan",
		OpeningTime:             "11:00",
		ClosingTime:             "21:00",
		SlotIntervalMinutes:     45,
		DefaultMaxGuestsPerSlot: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, "11:00", resp.OpeningTime)
	assert.Equal(t, 1, cache.flushed)

	profile, err := provider.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 45, profile.SlotIntervalMinutes)
	assert.Equal(t, "Rumah Makan", repo.stored.Name)
}

func TestProvider_UpdateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpdateProfileRequest
	}{
		{
			name: "missing name",
			req:  models.UpdateProfileRequest{OpeningTime: "10:00", ClosingTime: "22:00", SlotIntervalMinutes: 30, DefaultMaxGuestsPerSlot: 10},
		},
		{
			name: "zero interval",
			req:  models.UpdateProfileRequest{Name: "R", OpeningTime: "10:00", ClosingTime: "22:00", DefaultMaxGuestsPerSlot: 10},
		},
		{
			name: "malformed opening",
			req:  models.UpdateProfileRequest{Name: "R", OpeningTime: "10am", ClosingTime: "22:00", SlotIntervalMinutes: 30, DefaultMaxGuestsPerSlot: 10},
		},
		{
			name: "closing before opening",
			req:  models.UpdateProfileRequest{Name: "R", OpeningTime: "22:00", ClosingTime: "10:00", SlotIntervalMinutes: 30, DefaultMaxGuestsPerSlot: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &fakeCache{}
			repo := &fakeRepo{}
			provider := NewProvider(repo, cache, defaults(), nopLogger{})

			_, err := provider.Update(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.stored)
			assert.Zero(t, cache.flushed)
		})
	}
}

func TestProvider_UpdateRepositoryError(t *testing.T) {
	repo := &fakeRepo{updateErr: errors.New("db down")}
	provider := NewProvider(repo, &fakeCache{}, defaults(), nopLogger{})

	_, err := provider.Update(context.Background(), &models.UpdateProfileRequest{
		Name: "R", OpeningTime: "10:00", ClosingTime: "22:00", SlotIntervalMinutes: 30, DefaultMaxGuestsPerSlot: 10,
	})
	assert.ErrorIs(t, err, ErrInternal)
}
