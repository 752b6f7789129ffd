package ledger

import "errors"

var (
	// ErrInternal возвращается при ошибках чтения данных
	ErrInternal = errors.New("ledger: internal error")
)
