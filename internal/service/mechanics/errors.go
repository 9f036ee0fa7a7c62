package mechanics

import "errors"

var (
	// ErrMechanicNotFound возвращается, когда механик не найден
	ErrMechanicNotFound = errors.New("mechanic not found")

	// ErrInvalidDate возвращается при нечитаемой дате проверки доступности
	ErrInvalidDate = errors.New("invalid check date")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
