package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrNotOwner возвращается, когда пользователь не владелец бронирования и не сотрудник
	ErrNotOwner = errors.New("reservation belongs to another user")

	// ErrCancellationNotAllowed возвращается, когда самостоятельная отмена уже невозможна
	ErrCancellationNotAllowed = errors.New("reservation can no longer be cancelled")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNoCapacity возвращается, когда для подтверждения из листа ожидания нет мест
	ErrNoCapacity = errors.New("not enough capacity to confirm reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
