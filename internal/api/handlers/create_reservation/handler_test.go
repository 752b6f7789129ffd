package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *createReservation.Request
	resp *createReservation.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.got = req
	return f.resp, f.err
}

const body = `{"guestName":"Alice","guestEmail":"alice@example.com","guestPhone":"+62","date":"2026-10-20","time":"19:00","partySize":4,"roomId":1}`

func serve(t *testing.T, uc *fakeUseCase, payload string, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(payload))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	middleware.OptionalAuth(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Accepted(t *testing.T) {
	uc := &fakeUseCase{resp: &createReservation.Response{
		Outcome: createReservation.OutcomeAccepted,
		Reservation: &domain.Reservation{
			ID: 5, Date: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), Time: "19:00",
			PartySize: 4, Status: domain.StatusPending,
		},
	}}

	rec := serve(t, uc, body, "42")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp DecisionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp.Outcome)
	require.NotNil(t, resp.Reservation)
	assert.Equal(t, int64(5), resp.Reservation.ID)
	assert.Equal(t, "pending", resp.Reservation.Status)

	require.NotNil(t, uc.got.UserID)
	assert.Equal(t, int64(42), *uc.got.UserID)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), uc.got.Date)
	assert.Equal(t, 4, uc.got.PartySize)
}

func TestHandle_GuestSubmission(t *testing.T) {
	uc := &fakeUseCase{resp: &createReservation.Response{
		Outcome:     createReservation.OutcomeWaitlisted,
		Reservation: &domain.Reservation{ID: 6, Status: domain.StatusWaitlisted},
	}}

	rec := serve(t, uc, body, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, uc.got.UserID)
}

func TestHandle_WaitlistOffered(t *testing.T) {
	uc := &fakeUseCase{resp: &createReservation.Response{
		Outcome:   createReservation.OutcomeWaitlistOffered,
		Reasons:   []createReservation.FieldError{{Field: "time", Message: createReservation.ReasonSlotFull}},
		Remaining: 2,
	}}

	rec := serve(t, uc, body, "")
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp DecisionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "waitlist_offered", resp.Outcome)
	require.NotNil(t, resp.RemainingCapacity)
	assert.Equal(t, 2, *resp.RemainingCapacity)
	assert.Nil(t, resp.Reservation)
}

func TestHandle_Rejected(t *testing.T) {
	uc := &fakeUseCase{resp: &createReservation.Response{
		Outcome: createReservation.OutcomeRejected,
		Reasons: []createReservation.FieldError{{Field: "date", Message: createReservation.ReasonPastDate}},
	}}

	rec := serve(t, uc, body, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp DecisionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []ReasonResponse{{Field: "date", Message: createReservation.ReasonPastDate}}, resp.Reasons)
}

func TestHandle_BadInput(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		uc := &fakeUseCase{}
		rec := serve(t, uc, `{"partySize":`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, uc.got)
	})

	t.Run("malformed date", func(t *testing.T) {
		uc := &fakeUseCase{}
		rec := serve(t, uc, strings.Replace(body, "2026-10-20", "20/10/2026", 1), "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, uc.got)
	})
}

func TestHandle_InternalError(t *testing.T) {
	uc := &fakeUseCase{err: errors.New("db down")}

	rec := serve(t, uc, body, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
