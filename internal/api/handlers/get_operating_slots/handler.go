package get_operating_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule"
)

const (
	msgConfiguration = "часы работы ресторана настроены некорректно"
)

// OperatingSlotsResponse HTTP response model
type OperatingSlotsResponse struct {
	OpeningTime         string   `json:"openingTime"`
	ClosingTime         string   `json:"closingTime"`
	SlotIntervalMinutes int      `json:"slotIntervalMinutes"`
	Slots               []string `json:"slots"`
}

type Handler struct {
	profiles ProfileProvider
	logger   Logger
}

func NewHandler(profiles ProfileProvider, logger Logger) *Handler {
	return &Handler{
		profiles: profiles,
		logger:   logger,
	}
}

// Handle GET /api/v1/operating-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Get(r.Context())
	if err != nil {
		if errors.Is(err, schedule.ErrConfiguration) {
			h.logger.Error("GET /operating-slots - Restaurant hours misconfigured: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgConfiguration)
			return
		}
		h.logger.Error("GET /operating-slots - Failed to get profile: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	slots, err := schedule.OperatingSlots(profile)
	if err != nil {
		h.logger.Error("GET /operating-slots - Restaurant hours misconfigured: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgConfiguration)
		return
	}

	response := &OperatingSlotsResponse{
		OpeningTime:         profile.OpeningTime.String(),
		ClosingTime:         profile.ClosingTime.String(),
		SlotIntervalMinutes: profile.SlotIntervalMinutes,
		Slots:               make([]string, len(slots)),
	}
	for i, slot := range slots {
		response.Slots[i] = slot.String()
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
