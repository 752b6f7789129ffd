package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/42", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Contact(t *testing.T) {
	srv := newTestServer(t, http.StatusOK,
		`{"id":42,"username":"budi","full_name":"Budi Santoso","email":"budi@example.com","phone":"+62811","is_staff":true}`)
	client := NewClient(srv.URL+"/", time.Second, nopLogger{})

	contact, err := client.Contact(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, &Contact{
		UserID: 42,
		Name:   "Budi Santoso",
		Email:  "budi@example.com",
		Phone:  "+62811",
	}, contact)
}

func TestClient_Contact_NameFallsBackToUsername(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"id":42,"username":"sari","email":"sari@example.com"}`)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	contact, err := client.Contact(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "sari", contact.Name)
	assert.Empty(t, contact.Phone)
}

func TestClient_Contact_NotFound(t *testing.T) {
	srv := newTestServer(t, http.StatusNotFound, `{"code":404,"message":"not found"}`)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	_, err := client.Contact(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClient_Contact_GracefulDegradation(t *testing.T) {
	srv := newTestServer(t, http.StatusBadGateway, `{"code":502,"message":"upstream down"}`)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	_, err := client.Contact(context.Background(), 42)
	assert.ErrorIs(t, err, ErrServiceDegraded)
	assert.ErrorContains(t, err, "status 502: upstream down")
}

func TestClient_IsStaff(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    bool
		wantErr error
	}{
		{name: "staff", status: http.StatusOK, body: `{"id":42,"is_staff":true}`, want: true},
		{name: "guest", status: http.StatusOK, body: `{"id":42,"is_staff":false}`},
		{name: "unknown user", status: http.StatusNotFound, body: `{}`},
		{name: "service error", status: http.StatusInternalServerError, body: "boom", wantErr: ErrInvalidResponse},
		{name: "broken body", status: http.StatusOK, body: "{", wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body)
			client := NewClient(srv.URL, time.Second, nopLogger{})

			got, err := client.IsStaff(context.Background(), 42)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, nopLogger{})

	_, err := client.IsStaff(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInternal)
}
