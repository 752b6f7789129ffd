package reservation

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type execCall struct {
	query string
	args  []interface{}
}

// recordingTx фиксирует Exec-запросы; Query-методы в тестах не используются
type recordingTx struct {
	calls        []execCall
	rowsAffected int64
	err          error
}

type fakeResult struct{ rows int64 }

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

func (t *recordingTx) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	t.calls = append(t.calls, execCall{query: query, args: args})
	if t.err != nil {
		return nil, t.err
	}
	return fakeResult{rows: t.rowsAffected}, nil
}

func (t *recordingTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func (t *recordingTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *recordingTx) Commit() error   { return nil }
func (t *recordingTx) Rollback() error { return nil }

func TestRepository_LockSlot(t *testing.T) {
	repo := NewRepository(&recordingTx{})
	key := domain.SlotKey{RoomID: 7, Date: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), Time: "20:30"}

	t.Run("requires transaction", func(t *testing.T) {
		err := repo.LockSlot(context.Background(), key)
		assert.ErrorIs(t, err, ErrTransaction)
	})

	t.Run("locks slot key inside transaction", func(t *testing.T) {
		tx := &recordingTx{}
		ctx := dbmetrics.WithTx(context.Background(), tx)

		require.NoError(t, repo.LockSlot(ctx, key))
		require.Len(t, tx.calls, 1)
		assert.Contains(t, tx.calls[0].query, "pg_advisory_xact_lock")
		assert.Equal(t, []interface{}{"room:7:2026-12-31:20:30"}, tx.calls[0].args)
	})

	t.Run("driver error keeps cause", func(t *testing.T) {
		cause := errors.New("canceling statement due to lock timeout")
		ctx := dbmetrics.WithTx(context.Background(), &recordingTx{err: cause})

		err := repo.LockSlot(ctx, key)
		assert.ErrorIs(t, err, ErrExecQuery)
		assert.ErrorIs(t, err, cause)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	t.Run("updates status", func(t *testing.T) {
		db := &recordingTx{rowsAffected: 1}
		repo := NewRepository(db)

		require.NoError(t, repo.UpdateStatus(context.Background(), 42, domain.StatusConfirmed))
		require.Len(t, db.calls, 1)
		assert.Contains(t, db.calls[0].query, "UPDATE reservations SET status = $1")
		assert.Equal(t, []interface{}{domain.StatusConfirmed, int64(42)}, db.calls[0].args)
	})

	t.Run("not found", func(t *testing.T) {
		repo := NewRepository(&recordingTx{rowsAffected: 0})

		err := repo.UpdateStatus(context.Background(), 42, domain.StatusCancelled)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("uses ambient transaction", func(t *testing.T) {
		db := &recordingTx{rowsAffected: 1}
		tx := &recordingTx{rowsAffected: 1}
		repo := NewRepository(db)

		ctx := dbmetrics.WithTx(context.Background(), tx)
		require.NoError(t, repo.UpdateStatus(ctx, 1, domain.StatusCompleted))
		assert.Empty(t, db.calls)
		assert.Len(t, tx.calls, 1)
	})
}

func TestSumCommittedQuery(t *testing.T) {
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	query, args, err := sumCommittedQuery(3, date, "19:00").ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT COALESCE(SUM(party_size), 0) FROM reservations "+
			"WHERE reservation_date = $1 AND reservation_time = $2 AND room_id = $3 AND status IN ($4,$5)",
		query)
	assert.Equal(t, []interface{}{date, "19:00", int64(3), "pending", "confirmed"}, args)
	assertOnlyCapacityStatuses(t, args)
}

func TestCommittedByTimeQuery(t *testing.T) {
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	t.Run("single room", func(t *testing.T) {
		query, args, err := committedByTimeQuery(date, ptr.Ptr[int64](3)).ToSql()
		require.NoError(t, err)

		assert.Equal(t,
			"SELECT reservation_time, COALESCE(SUM(party_size), 0) FROM reservations "+
				"WHERE reservation_date = $1 AND status IN ($2,$3) AND room_id = $4 GROUP BY reservation_time",
			query)
		assert.Equal(t, []interface{}{date, "pending", "confirmed", int64(3)}, args)
		assertOnlyCapacityStatuses(t, args)
	})

	t.Run("all rooms", func(t *testing.T) {
		query, args, err := committedByTimeQuery(date, nil).ToSql()
		require.NoError(t, err)

		assert.NotContains(t, query, "room_id")
		assert.Contains(t, query, "status IN ($2,$3)")
		assert.Equal(t, []interface{}{date, "pending", "confirmed"}, args)
		assertOnlyCapacityStatuses(t, args)
	})
}

// waitlisted, cancelled и completed не занимают места
func assertOnlyCapacityStatuses(t *testing.T, args []interface{}) {
	t.Helper()

	var statuses []string
	for _, arg := range args {
		if s, ok := arg.(string); ok && domain.ReservationStatus(s).IsValid() {
			statuses = append(statuses, s)
		}
	}

	assert.ElementsMatch(t, []string{string(domain.StatusPending), string(domain.StatusConfirmed)}, statuses)
	for _, excluded := range []domain.ReservationStatus{domain.StatusWaitlisted, domain.StatusCancelled, domain.StatusCompleted} {
		assert.NotContains(t, statuses, string(excluded))
	}
}
