package catalog

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room not found")

	// ErrFoodPackageNotFound возвращается, когда пакет питания не найден
	ErrFoodPackageNotFound = errors.New("food package not found")

	// ErrDuplicateName возвращается, когда название уже занято
	ErrDuplicateName = errors.New("name already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
