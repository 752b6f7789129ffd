package manage_food_packages

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
	msgInvalidPackageID   = "некорректный ID пакета питания"
	msgInvalidPackage     = "некорректные данные пакета питания"
	msgPackageNotFound    = "пакет питания не найден"
	msgDuplicateName      = "пакет питания с таким названием уже существует"
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

// Create POST /api/v1/admin/food-packages
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.FoodPackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/food-packages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateFoodPackage(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /admin/food-packages", 0, err)
		return
	}

	h.logger.Info("POST /admin/food-packages - Food package created: id=%d, name=%s", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/admin/food-packages/{packageId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	packageID, ok := h.parsePackageID(w, r, "PUT /admin/food-packages/{id}")
	if !ok {
		return
	}

	var req models.FoodPackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/food-packages/{id} - Invalid request body: package_id=%d, error=%v", packageID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateFoodPackage(r.Context(), packageID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /admin/food-packages/{id}", packageID, err)
		return
	}

	h.logger.Info("PUT /admin/food-packages/{id} - Food package updated: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/food-packages/{packageId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	packageID, ok := h.parsePackageID(w, r, "DELETE /admin/food-packages/{id}")
	if !ok {
		return
	}

	if err := h.service.DeleteFoodPackage(r.Context(), packageID); err != nil {
		h.respondServiceError(w, "DELETE /admin/food-packages/{id}", packageID, err)
		return
	}

	h.logger.Info("DELETE /admin/food-packages/{id} - Food package deleted: id=%d", packageID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) parsePackageID(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	packageID, err := strconv.ParseInt(mux.Vars(r)["packageId"], 10, 64)
	if err != nil || packageID <= 0 {
		h.logger.Warn("%s - Invalid package ID: %v", op, mux.Vars(r)["packageId"])
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return 0, false
	}
	return packageID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, packageID int64, err error) {
	switch {
	case errors.Is(err, catalog.ErrFoodPackageNotFound):
		h.logger.Warn("%s - Food package not found: package_id=%d", op, packageID)
		handlers.RespondNotFound(w, msgPackageNotFound)

	case errors.Is(err, catalog.ErrDuplicateName):
		h.logger.Warn("%s - Duplicate food package name: %v", op, err)
		handlers.RespondConflict(w, msgDuplicateName)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid food package: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidPackage)

	default:
		h.logger.Error("%s - Failed: package_id=%d, error=%v", op, packageID, err)
		handlers.RespondInternalError(w)
	}
}
