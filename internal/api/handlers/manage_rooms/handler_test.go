package manage_rooms

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/service/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err       error
	deletedID int64
}

func (f *fakeService) CreateRoom(_ context.Context, req *models.RoomRequest) (*models.RoomResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.RoomResponse{ID: 1, Name: req.Name, Capacity: req.Capacity, CreatedAt: time.Now()}, nil
}

func (f *fakeService) UpdateRoom(_ context.Context, id int64, req *models.RoomRequest) (*models.RoomResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.RoomResponse{ID: id, Name: req.Name, Capacity: req.Capacity}, nil
}

func (f *fakeService) DeleteRoom(_ context.Context, id int64) error {
	f.deletedID = id
	return f.err
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/admin/rooms", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/admin/rooms/{roomId}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/admin/rooms/{roomId}", h.Delete).Methods(http.MethodDelete)
	return r
}

func TestHandler(t *testing.T) {
	const body = `{"name":"VIP","capacity":10}`

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{name: "create", method: http.MethodPost, path: "/admin/rooms", body: body, wantStatus: http.StatusCreated},
		{name: "create malformed", method: http.MethodPost, path: "/admin/rooms", body: `{`, wantStatus: http.StatusBadRequest},
		{
			name: "create duplicate", method: http.MethodPost, path: "/admin/rooms", body: body,
			serviceErr: fmt.Errorf("%w: VIP", catalog.ErrDuplicateName), wantStatus: http.StatusConflict,
		},
		{
			name: "create invalid capacity", method: http.MethodPost, path: "/admin/rooms", body: `{"name":"VIP","capacity":0}`,
			serviceErr: fmt.Errorf("%w: capacity", catalog.ErrInvalidInput), wantStatus: http.StatusBadRequest,
		},
		{name: "update", method: http.MethodPut, path: "/admin/rooms/3", body: body, wantStatus: http.StatusOK},
		{name: "update bad id", method: http.MethodPut, path: "/admin/rooms/abc", body: body, wantStatus: http.StatusBadRequest},
		{
			name: "update missing", method: http.MethodPut, path: "/admin/rooms/3", body: body,
			serviceErr: catalog.ErrRoomNotFound, wantStatus: http.StatusNotFound,
		},
		{name: "delete", method: http.MethodDelete, path: "/admin/rooms/3", wantStatus: http.StatusNoContent},
		{
			name: "delete storage failure", method: http.MethodDelete, path: "/admin/rooms/3",
			serviceErr: fmt.Errorf("%w: db down", catalog.ErrInternal), wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeService{err: tt.serviceErr}
			router := newRouter(NewHandler(service, nopLogger{}))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestDelete_PassesRoomID(t *testing.T) {
	service := &fakeService{}
	router := newRouter(NewHandler(service, nopLogger{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/rooms/42", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(42), service.deletedID)
	assert.Empty(t, rec.Body.String())
}
