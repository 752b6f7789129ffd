package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const table = "reservations"

var columns = []string{
	"id",
	"user_id",
	"guest_name",
	"guest_email",
	"guest_phone",
	"reservation_date",
	"reservation_time",
	"party_size",
	"room_id",
	"room_name",
	"food_package_id",
	"special_requests",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями столиков
// Ошибки драйвера оборачиваются через %w, чтобы txmanager видел конфликт сериализации
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование
// Если в контексте есть транзакция, запрос выполняется в ней
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"guest_name",
			"guest_email",
			"guest_phone",
			"reservation_date",
			"reservation_time",
			"party_size",
			"room_id",
			"room_name",
			"food_package_id",
			"special_requests",
			"status",
		).
		Values(
			res.UserID,
			res.GuestName,
			res.GuestEmail,
			res.GuestPhone,
			res.Date,
			res.Time,
			res.PartySize,
			res.RoomID,
			res.RoomName,
			res.FoodPackageID,
			res.SpecialRequests,
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// List получает бронирования по фильтру, сначала самые поздние по дате и времени
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_date": *filter.Date})
	}
	if filter.Time != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_time": *filter.Time})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}

	query, args, err := selectBuilder.
		OrderBy("reservation_date DESC", "reservation_time DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}

// LockSlot берет advisory lock на слот (комната, дата, время) до конца транзакции
// Все писатели одного слота выполняются строго по очереди
func (r *Repository) LockSlot(ctx context.Context, key domain.SlotKey) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: LockSlot - %s", ErrTransaction, key)
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key.String()); err != nil {
		return fmt.Errorf("%w: LockSlot - %s: %w", ErrExecQuery, key, err)
	}

	return nil
}

// SumCommittedGuests сумма гостей в статусах, занимающих места, на слот комнаты
func (r *Repository) SumCommittedGuests(ctx context.Context, roomID int64, date time.Time, t types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := sumCommittedQuery(roomID, date, t).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumCommittedGuests - build select query: %v", ErrBuildQuery, err)
	}

	var committed int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&committed); err != nil {
		return 0, fmt.Errorf("%w: SumCommittedGuests - scan sum: %w", ErrScanRow, err)
	}

	return committed, nil
}

// CommittedByTime сумма занятых мест по времени слота за дату
// Если roomID не задан, суммирует по всем комнатам
func (r *Repository) CommittedByTime(ctx context.Context, date time.Time, roomID *int64) (map[types.TimeString]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := committedByTimeQuery(date, roomID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CommittedByTime - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CommittedByTime - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	committed := make(map[types.TimeString]int)
	for rows.Next() {
		var slot types.TimeString
		var guests int
		if err := rows.Scan(&slot, &guests); err != nil {
			return nil, fmt.Errorf("%w: CommittedByTime - scan row: %w", ErrScanRow, err)
		}
		committed[slot] = guests
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CommittedByTime - rows error: %w", ErrScanRow, err)
	}

	return committed, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var userID, roomID, foodPackageID sql.NullInt64
	var specialRequests sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&userID,
		&res.GuestName,
		&res.GuestEmail,
		&res.GuestPhone,
		&res.Date,
		&res.Time,
		&res.PartySize,
		&roomID,
		&res.RoomName,
		&foodPackageID,
		&specialRequests,
		&res.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		res.UserID = &userID.Int64
	}
	if roomID.Valid {
		res.RoomID = &roomID.Int64
	}
	if foodPackageID.Valid {
		res.FoodPackageID = &foodPackageID.Int64
	}
	if specialRequests.Valid {
		res.SpecialRequests = &specialRequests.String
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// sumCommittedQuery места на слот комнаты; учитываются только pending и confirmed
func sumCommittedQuery(roomID int64, date time.Time, t types.TimeString) squirrel.SelectBuilder {
	return psqlbuilder.Select("COALESCE(SUM(party_size), 0)").
		From(table).
		Where(squirrel.Eq{
			"room_id":          roomID,
			"reservation_date": date,
			"reservation_time": t,
			"status":           statusStrings(domain.CapacityStatuses),
		})
}

// committedByTimeQuery места по времени слота за дату, по комнате или по всем комнатам
func committedByTimeQuery(date time.Time, roomID *int64) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select("reservation_time", "COALESCE(SUM(party_size), 0)").
		From(table).
		Where(squirrel.Eq{
			"reservation_date": date,
			"status":           statusStrings(domain.CapacityStatuses),
		})

	if roomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *roomID})
	}

	return selectBuilder.GroupBy("reservation_time")
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
