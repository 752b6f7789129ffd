package manage_rooms

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRoomID      = "некорректный ID комнаты"
	msgInvalidRoom        = "некорректные данные комнаты"
	msgRoomNotFound       = "комната не найдена"
	msgDuplicateName      = "комната с таким названием уже существует"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/admin/rooms
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateRoom(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /admin/rooms", 0, err)
		return
	}

	h.logger.Info("POST /admin/rooms - Room created: id=%d, name=%s, capacity=%d", result.ID, result.Name, result.Capacity)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/admin/rooms/{roomId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.parseRoomID(w, r, "PUT /admin/rooms/{id}")
	if !ok {
		return
	}

	var req models.RoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/rooms/{id} - Invalid request body: room_id=%d, error=%v", roomID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateRoom(r.Context(), roomID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /admin/rooms/{id}", roomID, err)
		return
	}

	h.logger.Info("PUT /admin/rooms/{id} - Room updated: id=%d, capacity=%d", result.ID, result.Capacity)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/rooms/{roomId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	roomID, ok := h.parseRoomID(w, r, "DELETE /admin/rooms/{id}")
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(r.Context(), roomID); err != nil {
		h.respondServiceError(w, "DELETE /admin/rooms/{id}", roomID, err)
		return
	}

	h.logger.Info("DELETE /admin/rooms/{id} - Room deleted: id=%d", roomID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) parseRoomID(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	roomID, err := strconv.ParseInt(mux.Vars(r)["roomId"], 10, 64)
	if err != nil || roomID <= 0 {
		h.logger.Warn("%s - Invalid room ID: %v", op, mux.Vars(r)["roomId"])
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return 0, false
	}
	return roomID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, roomID int64, err error) {
	switch {
	case errors.Is(err, catalog.ErrRoomNotFound):
		h.logger.Warn("%s - Room not found: room_id=%d", op, roomID)
		handlers.RespondNotFound(w, msgRoomNotFound)

	case errors.Is(err, catalog.ErrDuplicateName):
		h.logger.Warn("%s - Duplicate room name: %v", op, err)
		handlers.RespondConflict(w, msgDuplicateName)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid room: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRoom)

	default:
		h.logger.Error("%s - Failed: room_id=%d, error=%v", op, roomID, err)
		handlers.RespondInternalError(w)
	}
}
