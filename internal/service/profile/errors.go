package profile

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных профиля
	ErrInvalidInput = errors.New("invalid profile data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
