package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// memoryRepo считает занятость по списку бронирований так же, как SQL запрос
type memoryRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (m *memoryRepo) SumCommittedGuests(_ context.Context, roomID int64, date time.Time, t types.TimeString) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	sum := 0
	for _, r := range m.reservations {
		if r.RoomID == nil || *r.RoomID != roomID || !r.Date.Equal(date) || !r.Time.Equal(t) {
			continue
		}
		if r.ConsumesCapacity() {
			sum += r.PartySize
		}
	}
	return sum, nil
}

func (m *memoryRepo) CommittedByTime(_ context.Context, date time.Time, roomID *int64) (map[types.TimeString]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make(map[types.TimeString]int)
	for _, r := range m.reservations {
		if !r.Date.Equal(date) || !r.ConsumesCapacity() {
			continue
		}
		if roomID != nil && (r.RoomID == nil || *r.RoomID != *roomID) {
			continue
		}
		result[r.Time] += r.PartySize
	}
	return result, nil
}

var testDate = time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

func reservation(roomID int64, t types.TimeString, party int, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		RoomID:    ptr.Ptr(roomID),
		Date:      testDate,
		Time:      t,
		PartySize: party,
		Status:    status,
	}
}

func TestLedger_CommittedGuests_CountsOnlyPendingAndConfirmed(t *testing.T) {
	repo := &memoryRepo{reservations: []*domain.Reservation{
		reservation(1, "19:00", 2, domain.StatusPending),
		reservation(1, "19:00", 3, domain.StatusConfirmed),
		reservation(1, "19:00", 4, domain.StatusWaitlisted),
		reservation(1, "19:00", 5, domain.StatusCancelled),
		reservation(1, "19:00", 6, domain.StatusCompleted),
		reservation(2, "19:00", 7, domain.StatusConfirmed),
		reservation(1, "19:30", 8, domain.StatusConfirmed),
	}}
	l := New(repo)

	committed, err := l.CommittedGuests(context.Background(), 1, testDate, "19:00")
	require.NoError(t, err)
	assert.Equal(t, 5, committed)
}

func TestLedger_HasCapacity(t *testing.T) {
	room := &domain.Room{ID: 1, Capacity: 10}
	repo := &memoryRepo{reservations: []*domain.Reservation{
		reservation(1, "19:00", 8, domain.StatusConfirmed),
	}}
	l := New(repo)

	tests := []struct {
		name      string
		partySize int
		fits      bool
	}{
		{name: "fills exactly", partySize: 2, fits: true},
		{name: "one over", partySize: 3, fits: false},
		{name: "single guest", partySize: 1, fits: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check, err := l.HasCapacity(context.Background(), room, testDate, "19:00", tt.partySize)
			require.NoError(t, err)
			assert.Equal(t, 8, check.Committed)
			assert.Equal(t, 10, check.Capacity)
			assert.Equal(t, 2, check.Remaining())
			assert.Equal(t, tt.fits, check.Fits)
		})
	}
}

func TestLedger_CancellingFreesCapacity(t *testing.T) {
	room := &domain.Room{ID: 1, Capacity: 10}
	big := reservation(1, "19:00", 10, domain.StatusConfirmed)
	l := New(&memoryRepo{reservations: []*domain.Reservation{big}})

	check, err := l.HasCapacity(context.Background(), room, testDate, "19:00", 1)
	require.NoError(t, err)
	assert.False(t, check.Fits)

	big.Status = domain.StatusCancelled

	check, err = l.HasCapacity(context.Background(), room, testDate, "19:00", 10)
	require.NoError(t, err)
	assert.True(t, check.Fits)
}

func TestLedger_CommittedByTime(t *testing.T) {
	repo := &memoryRepo{reservations: []*domain.Reservation{
		reservation(1, "19:00", 2, domain.StatusPending),
		reservation(2, "19:00", 3, domain.StatusConfirmed),
		reservation(1, "20:00", 4, domain.StatusWaitlisted),
	}}
	l := New(repo)

	all, err := l.CommittedByTime(context.Background(), testDate, nil)
	require.NoError(t, err)
	assert.Equal(t, map[types.TimeString]int{"19:00": 5}, all)

	room1, err := l.CommittedByTime(context.Background(), testDate, ptr.Ptr(int64(1)))
	require.NoError(t, err)
	assert.Equal(t, map[types.TimeString]int{"19:00": 2}, room1)
}

func TestLedger_RepositoryError(t *testing.T) {
	dbErr := errors.New("connection reset")
	l := New(&memoryRepo{err: dbErr})

	_, err := l.HasCapacity(context.Background(), &domain.Room{ID: 1, Capacity: 4}, testDate, "19:00", 2)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, dbErr)

	_, err = l.CommittedByTime(context.Background(), testDate, nil)
	assert.ErrorIs(t, err, ErrInternal)
}
