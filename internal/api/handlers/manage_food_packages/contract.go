package manage_food_packages

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

type CatalogService interface {
	CreateFoodPackage(ctx context.Context, req *models.FoodPackageRequest) (*models.FoodPackageResponse, error)
	UpdateFoodPackage(ctx context.Context, id int64, req *models.FoodPackageRequest) (*models.FoodPackageResponse, error)
	DeleteFoodPackage(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
