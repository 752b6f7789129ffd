package schedule

import "errors"

var (
	// ErrConfiguration возвращается при некорректных часах работы или интервале слотов
	ErrConfiguration = errors.New("schedule: invalid operating hours configuration")
)
