package availability

import "errors"

var (
	// ErrCache возвращается при ошибках Redis
	ErrCache = errors.New("availability.cache: redis error")

	// ErrDecode возвращается, когда закешированное значение не читается
	ErrDecode = errors.New("availability.cache: failed to decode cached slots")
)
