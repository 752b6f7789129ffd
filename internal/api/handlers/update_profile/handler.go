package update_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/profile"
	"github.com/m04kA/SMC-ReservationService/internal/service/profile/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidProfile     = "некорректные данные профиля"
)

type Handler struct {
	service ProfileService
	logger  Logger
}

func NewHandler(service ProfileService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/profile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrInvalidInput):
			h.logger.Warn("PUT /admin/profile - Invalid profile: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProfile)

		default:
			h.logger.Error("PUT /admin/profile - Failed to update profile: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/profile - Profile updated successfully: hours=%s-%s, interval=%d",
		result.OpeningTime, result.ClosingTime, result.SlotIntervalMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
