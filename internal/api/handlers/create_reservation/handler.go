package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
// 201 - принято или добавлено в лист ожидания, 409 - предложен лист ожидания, 422 - отказ
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var userID *int64
	if id, ok := middleware.GetUserID(r.Context()); ok {
		userID = &id
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to process reservation: room_id=%d, date=%s, error=%v",
				req.RoomID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	switch result.Outcome {
	case createReservation.OutcomeAccepted, createReservation.OutcomeWaitlisted:
		h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, status=%s",
			result.Reservation.ID, result.Reservation.Status)
		handlers.RespondJSON(w, http.StatusCreated, response)

	case createReservation.OutcomeWaitlistOffered:
		h.logger.Info("POST /reservations - Waitlist offered: room_id=%d, date=%s, time=%s",
			req.RoomID, req.Date, req.Time)
		handlers.RespondJSON(w, http.StatusConflict, response)

	default:
		h.logger.Info("POST /reservations - Reservation rejected: room_id=%d, reasons=%d",
			req.RoomID, len(result.Reasons))
		handlers.RespondJSON(w, http.StatusUnprocessableEntity, response)
	}
}
