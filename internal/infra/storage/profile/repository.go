package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const (
	table = "restaurant_profile"

	// singletonID единственная строка профиля (CHECK id = 1 в схеме)
	singletonID = 1
)

// Repository репозиторий профиля ресторана
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профиля
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает профиль ресторана
func (r *Repository) Get(ctx context.Context) (*domain.RestaurantProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"name",
		"address",
		"phone_number",
		"description",
		"opening_time",
		"closing_time",
		"slot_interval_minutes",
		"default_max_guests_per_slot",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var profile domain.RestaurantProfile
	var description sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.Name,
		&profile.Address,
		&profile.PhoneNumber,
		&description,
		&profile.OpeningTime,
		&profile.ClosingTime,
		&profile.SlotIntervalMinutes,
		&profile.DefaultMaxGuestsPerSlot,
		&profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan profile: %v", ErrScanRow, err)
	}

	if description.Valid {
		profile.Description = &description.String
	}

	return &profile, nil
}

// CreateIfMissing создает строку профиля, если ее еще нет
// Возвращает true, если строка была создана
func (r *Repository) CreateIfMissing(ctx context.Context, profile *domain.RestaurantProfile) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"name",
			"address",
			"phone_number",
			"description",
			"opening_time",
			"closing_time",
			"slot_interval_minutes",
			"default_max_guests_per_slot",
		).
		Values(
			singletonID,
			profile.Name,
			profile.Address,
			profile.PhoneNumber,
			profile.Description,
			profile.OpeningTime,
			profile.ClosingTime,
			profile.SlotIntervalMinutes,
			profile.DefaultMaxGuestsPerSlot,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfMissing - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfMissing - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfMissing - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// Update перезаписывает профиль ресторана
func (r *Repository) Update(ctx context.Context, profile *domain.RestaurantProfile) (*domain.RestaurantProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", profile.Name).
		Set("address", profile.Address).
		Set("phone_number", profile.PhoneNumber).
		Set("description", profile.Description).
		Set("opening_time", profile.OpeningTime).
		Set("closing_time", profile.ClosingTime).
		Set("slot_interval_minutes", profile.SlotIntervalMinutes).
		Set("default_max_guests_per_slot", profile.DefaultMaxGuestsPerSlot).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": singletonID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return profile, nil
}
