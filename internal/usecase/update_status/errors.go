package update_status

import (
	"errors"
	"fmt"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись на ремонт не найдена
	ErrAppointmentNotFound = errors.New("update_status: appointment not found")

	// ErrInvalidStatus возвращается при недопустимом значении статуса
	ErrInvalidStatus = errors.New("update_status: invalid status")

	// ErrMechanicNotFound возвращается, когда связанный механик не найден
	ErrMechanicNotFound = errors.New("update_status: associated mechanic not found")

	// ErrNoCapacity возвращается, когда реактивация заблокирована отсутствием
	// свободных слотов; статус записи при этом не меняется
	ErrNoCapacity = errors.New("update_status: no available slots for reactivation")

	// ErrReassignmentNotSupported возвращается при попытке сменить механика
	// через обновление статуса — для этого предусмотрен отдельный поток
	ErrReassignmentNotSupported = errors.New("update_status: mechanic reassignment is not supported by this operation")

	// ErrStorage возвращается, когда транзакция обновления не зафиксировалась
	ErrStorage = errors.New("update_status: storage error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_status: internal error")
)

// NoCapacityError отказ реактивации со структурированным контекстом
type NoCapacityError struct {
	MechanicName   string
	AvailableSlots int
	TotalSlots     int
}

func (e *NoCapacityError) Error() string {
	return fmt.Sprintf("cannot reactivate appointment: mechanic %s has no available slots (%d/%d)",
		e.MechanicName, e.AvailableSlots, e.TotalSlots)
}

// Unwrap позволяет errors.Is(err, ErrNoCapacity)
func (e *NoCapacityError) Unwrap() error {
	return ErrNoCapacity
}
