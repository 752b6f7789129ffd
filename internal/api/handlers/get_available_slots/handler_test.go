package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func get(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	roomID := int64(3)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:   time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		RoomID: &roomID,
		Slots:  []getAvailableSlots.Slot{{StartTime: "19:00", RemainingCapacity: 4, TotalCapacity: 10}},
	}}

	rec := get(uc, "/api/v1/availability?date=2026-10-20&roomId=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-10-20", resp.Date)
	assert.Equal(t, []AvailableSlot{{StartTime: "19:00", RemainingCapacity: 4, TotalCapacity: 10}}, resp.Slots)
	require.NotNil(t, uc.got.RoomID)
	assert.Equal(t, int64(3), *uc.got.RoomID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "missing date", target: "/api/v1/availability", want: http.StatusBadRequest},
		{name: "bad date", target: "/api/v1/availability?date=tomorrow", want: http.StatusBadRequest},
		{name: "bad room", target: "/api/v1/availability?date=2026-10-20&roomId=x", want: http.StatusBadRequest},
		{name: "past date", target: "/api/v1/availability?date=2020-01-01", err: getAvailableSlots.ErrInvalidDate, want: http.StatusBadRequest},
		{name: "unknown room", target: "/api/v1/availability?date=2026-10-20&roomId=9", err: getAvailableSlots.ErrRoomNotFound, want: http.StatusNotFound},
		{name: "misconfigured", target: "/api/v1/availability?date=2026-10-20", err: getAvailableSlots.ErrConfiguration, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
