package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UpdateProfileRequest запрос на обновление профиля ресторана (полная замена)
type UpdateProfileRequest struct {
	Name                    string  `json:"name" validate:"required,max=100"`
	Address                 string  `json:"address" validate:"max=255"`
	PhoneNumber             string  `json:"phoneNumber" validate:"max=20"`
	Description             *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	OpeningTime             string  `json:"openingTime" validate:"required"`
	ClosingTime             string  `json:"closingTime" validate:"required"`
	SlotIntervalMinutes     int     `json:"slotIntervalMinutes" validate:"gt=0,lte=1440"`
	DefaultMaxGuestsPerSlot int     `json:"defaultMaxGuestsPerSlot" validate:"gt=0"`
}

// ProfileResponse ответ с профилем ресторана
type ProfileResponse struct {
	Name                    string    `json:"name"`
	Address                 string    `json:"address"`
	PhoneNumber             string    `json:"phoneNumber"`
	Description             *string   `json:"description,omitempty"`
	OpeningTime             string    `json:"openingTime"`
	ClosingTime             string    `json:"closingTime"`
	SlotIntervalMinutes     int       `json:"slotIntervalMinutes"`
	DefaultMaxGuestsPerSlot int       `json:"defaultMaxGuestsPerSlot"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// FromDomainProfile конвертирует domain модель в DTO
func FromDomainProfile(p *domain.RestaurantProfile) *ProfileResponse {
	if p == nil {
		return nil
	}

	return &ProfileResponse{
		Name:                    p.Name,
		Address:                 p.Address,
		PhoneNumber:             p.PhoneNumber,
		Description:             p.Description,
		OpeningTime:             p.OpeningTime.String(),
		ClosingTime:             p.ClosingTime.String(),
		SlotIntervalMinutes:     p.SlotIntervalMinutes,
		DefaultMaxGuestsPerSlot: p.DefaultMaxGuestsPerSlot,
		UpdatedAt:               p.UpdatedAt,
	}
}
