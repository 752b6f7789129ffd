package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при запросе, который нельзя разобрать
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
