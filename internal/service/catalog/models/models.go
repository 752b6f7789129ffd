package models

import (
	"math"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// RoomRequest запрос на создание или обновление комнаты
type RoomRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Capacity    int     `json:"capacity" validate:"gt=0,lte=1000"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// ToDomain конвертирует запрос в domain модель
func (r *RoomRequest) ToDomain(id int64) *domain.Room {
	return &domain.Room{
		ID:          id,
		Name:        r.Name,
		Capacity:    r.Capacity,
		Description: r.Description,
	}
}

// FoodPackageRequest запрос на создание или обновление пакета питания
type FoodPackageRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=1000"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// ToDomain конвертирует запрос в domain модель (цена округляется до копеек)
func (r *FoodPackageRequest) ToDomain(id int64) *domain.FoodPackage {
	return &domain.FoodPackage{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Price:       math.Round(r.Price*100) / 100,
	}
}

// Response модели

// RoomResponse ответ с данными комнаты
type RoomResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RoomListResponse ответ со списком комнат
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// FoodPackageResponse ответ с данными пакета питания
type FoodPackageResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FoodPackageListResponse ответ со списком пакетов питания
type FoodPackageListResponse struct {
	FoodPackages []FoodPackageResponse `json:"foodPackages"`
}

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}
	return &RoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Capacity:    r.Capacity,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FromDomainRoomList конвертирует список комнат в DTO
func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	resp := &RoomListResponse{Rooms: make([]RoomResponse, 0, len(rooms))}
	for _, room := range rooms {
		if r := FromDomainRoom(room); r != nil {
			resp.Rooms = append(resp.Rooms, *r)
		}
	}
	return resp
}

// FromDomainFoodPackage конвертирует domain модель в DTO
func FromDomainFoodPackage(p *domain.FoodPackage) *FoodPackageResponse {
	if p == nil {
		return nil
	}
	return &FoodPackageResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromDomainFoodPackageList конвертирует список пакетов в DTO
func FromDomainFoodPackageList(packages []*domain.FoodPackage) *FoodPackageListResponse {
	resp := &FoodPackageListResponse{FoodPackages: make([]FoodPackageResponse, 0, len(packages))}
	for _, pkg := range packages {
		if p := FromDomainFoodPackage(pkg); p != nil {
			resp.FoodPackages = append(resp.FoodPackages, *p)
		}
	}
	return resp
}
