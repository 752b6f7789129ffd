package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

const msgStaffOnly = "доступно только сотрудникам ресторана"

// StaffChecker источник признака сотрудника
type StaffChecker interface {
	IsStaff(ctx context.Context, userID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RequireStaff пропускает только сотрудников; ставится после Auth
func RequireStaff(staff StaffChecker, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			isStaff, err := staff.IsStaff(r.Context(), userID)
			if err != nil {
				logger.Error("RequireStaff: failed to check user=%d: %v", userID, err)
				handlers.RespondInternalError(w)
				return
			}

			if !isStaff {
				logger.Warn("RequireStaff: user=%d is not staff, %s %s", userID, r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgStaffOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
