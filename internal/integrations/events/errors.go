package events

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("events: failed to connect to broker")

	// ErrPublish возвращается, когда не удалось опубликовать событие
	ErrPublish = errors.New("events: failed to publish event")

	// ErrNotConnected возвращается, пока паблишер переподключается к брокеру
	ErrNotConnected = errors.New("events: broker connection is down")
)
