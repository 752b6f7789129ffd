package get_operating_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeProfiles struct{ profile *domain.RestaurantProfile }

func (f fakeProfiles) Get(context.Context) (*domain.RestaurantProfile, error) {
	return f.profile, nil
}

func TestHandle(t *testing.T) {
	h := NewHandler(fakeProfiles{profile: &domain.RestaurantProfile{
		OpeningTime: "18:00", ClosingTime: "20:00", SlotIntervalMinutes: 45,
	}}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/operating-slots", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp OperatingSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"18:00", "18:45", "19:30"}, resp.Slots)
}

func TestHandle_Misconfigured(t *testing.T) {
	h := NewHandler(fakeProfiles{profile: &domain.RestaurantProfile{
		OpeningTime: "20:00", ClosingTime: "18:00", SlotIntervalMinutes: 30,
	}}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/operating-slots", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
