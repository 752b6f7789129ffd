package create_reservation

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	GuestName       string  `json:"guestName"`
	GuestEmail      string  `json:"guestEmail"`
	GuestPhone      string  `json:"guestPhone"`
	Date            string  `json:"date"` // "2025-10-15"
	Time            string  `json:"time"` // "19:00"
	PartySize       int     `json:"partySize"`
	RoomID          int64   `json:"roomId"`
	FoodPackageID   *int64  `json:"foodPackageId,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
	JoinWaitlist    bool    `json:"joinWaitlist"`
}

// ReasonResponse причина отказа по полю
type ReasonResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DecisionResponse HTTP response model
type DecisionResponse struct {
	Outcome           string                      `json:"outcome"`
	Reservation       *models.ReservationResponse `json:"reservation,omitempty"`
	Reasons           []ReasonResponse            `json:"reasons,omitempty"`
	RemainingCapacity *int                        `json:"remainingCapacity,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Пустая дата передается как нулевая: use case вернет ошибку поля
func (r *CreateReservationRequest) ToUseCaseRequest(userID *int64) (*createReservation.Request, error) {
	var date time.Time
	if raw := strings.TrimSpace(r.Date); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	return &createReservation.Request{
		UserID:          userID,
		GuestName:       r.GuestName,
		GuestEmail:      r.GuestEmail,
		GuestPhone:      r.GuestPhone,
		Date:            date,
		Time:            types.TimeString(strings.TrimSpace(r.Time)),
		PartySize:       r.PartySize,
		RoomID:          r.RoomID,
		FoodPackageID:   r.FoodPackageID,
		SpecialRequests: r.SpecialRequests,
		JoinWaitlist:    r.JoinWaitlist,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *DecisionResponse {
	out := &DecisionResponse{
		Outcome:     string(resp.Outcome),
		Reservation: models.FromDomainReservation(resp.Reservation),
	}

	for _, reason := range resp.Reasons {
		out.Reasons = append(out.Reasons, ReasonResponse{Field: reason.Field, Message: reason.Message})
	}

	if resp.Outcome == createReservation.OutcomeWaitlistOffered {
		remaining := resp.Remaining
		out.RemainingCapacity = &remaining
	}

	return out
}
