package create_reservation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/userservice"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
	"github.com/m04kA/SMC-ReservationService/pkg/validation"
)

// prefillFromContact дополняет пустые контактные поля данными аккаунта
func prefillFromContact(req *Request, contact *userservice.Contact) {
	if contact == nil {
		return
	}
	if strings.TrimSpace(req.GuestName) == "" {
		req.GuestName = contact.Name
	}
	if strings.TrimSpace(req.GuestEmail) == "" {
		req.GuestEmail = contact.Email
	}
	if strings.TrimSpace(req.GuestPhone) == "" {
		req.GuestPhone = contact.Phone
	}
}

// validateFields собирает все ошибки полей сразу, до структурных проверок
// Время приводится к виду HH:MM
func validateFields(req *Request) []FieldError {
	var errs []FieldError

	if req.RoomID <= 0 {
		errs = append(errs, FieldError{Field: "room_id", Message: ReasonRequired})
	}

	if req.Date.IsZero() {
		errs = append(errs, FieldError{Field: "date", Message: ReasonRequired})
	}

	if req.Time.IsZero() {
		errs = append(errs, FieldError{Field: "time", Message: ReasonRequired})
	} else if canonical, err := types.ParseClock(req.Time.String()); err != nil {
		errs = append(errs, FieldError{Field: "time", Message: ReasonInvalidTime})
	} else {
		req.Time = canonical
	}

	errs = appendText(errs, "guest_name", req.GuestName, domain.MaxNameLength)
	errs = appendText(errs, "guest_phone", req.GuestPhone, domain.MaxPhoneLength)

	email := strings.TrimSpace(req.GuestEmail)
	switch {
	case email == "":
		errs = append(errs, FieldError{Field: "guest_email", Message: ReasonRequired})
	case !validation.IsEmail(email):
		errs = append(errs, FieldError{Field: "guest_email", Message: ReasonInvalidEmail})
	}

	if req.SpecialRequests != nil && utf8.RuneCountInString(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		errs = append(errs, FieldError{Field: "special_requests", Message: ReasonTooLong})
	}

	return errs
}

func appendText(errs []FieldError, field, value string, maxLen int) []FieldError {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return append(errs, FieldError{Field: field, Message: ReasonRequired})
	case utf8.RuneCountInString(value) > maxLen:
		return append(errs, FieldError{Field: field, Message: ReasonTooLong})
	}
	return errs
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня в часовом поясе ресторана
func isDateInPast(date, now time.Time, loc *time.Location) bool {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(today)
}
