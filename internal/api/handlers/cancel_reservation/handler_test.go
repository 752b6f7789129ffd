package cancel_reservation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	gotID   int64
	gotUser int64
	err     error
}

func (f *fakeService) Cancel(_ context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	f.gotID, f.gotUser = id, userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationResponse{ID: id, Status: "cancelled"}, nil
}

func serve(svc *fakeService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/reservations/{reservationId}/cancel",
		middleware.Auth(http.HandlerFunc(NewHandler(svc, nopLogger{}).Handle))).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, nil)
	req.Header.Set(middleware.UserIDHeader, "7")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		path string
		err  error
		want int
	}{
		{name: "ok", path: "/reservations/3/cancel", want: http.StatusOK},
		{name: "bad id", path: "/reservations/abc/cancel", want: http.StatusBadRequest},
		{name: "not found", path: "/reservations/3/cancel", err: reservations.ErrReservationNotFound, want: http.StatusNotFound},
		{name: "not owner", path: "/reservations/3/cancel", err: reservations.ErrNotOwner, want: http.StatusForbidden},
		{name: "too late", path: "/reservations/3/cancel", err: reservations.ErrCancellationNotAllowed, want: http.StatusConflict},
		{name: "internal", path: "/reservations/3/cancel", err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := serve(svc, tt.path)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, int64(3), svc.gotID)
				assert.Equal(t, int64(7), svc.gotUser)
			}
		})
	}
}
