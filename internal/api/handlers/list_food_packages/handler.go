package list_food_packages

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
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

// Handle GET /api/v1/food-packages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListFoodPackages(r.Context())
	if err != nil {
		h.logger.Error("GET /food-packages - Failed to list food packages: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
