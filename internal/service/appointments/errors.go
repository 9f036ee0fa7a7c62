package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись на ремонт не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidStatus возвращается при недопустимом значении фильтра статуса
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
