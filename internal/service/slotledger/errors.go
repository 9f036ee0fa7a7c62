package slotledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCapacity возвращается, когда операция требует занять слот,
	// а у механика не осталось свободных
	ErrNoCapacity = errors.New("slotledger: no available slots")

	// ErrAppointmentNotFound возвращается, когда запись на ремонт не найдена
	ErrAppointmentNotFound = errors.New("slotledger: appointment not found")

	// ErrMechanicNotFound возвращается, когда механик не найден
	ErrMechanicNotFound = errors.New("slotledger: mechanic not found")

	// ErrStorage возвращается, когда транзакция не смогла зафиксироваться.
	// Никаких частичных эффектов: оба документа остаются нетронутыми.
	ErrStorage = errors.New("slotledger: storage error")
)

// NoCapacityError отказ по вместимости со структурированным контекстом
// для вызывающей стороны (имя механика и счётчики)
type NoCapacityError struct {
	MechanicID     int64
	MechanicName   string
	AvailableSlots int
	TotalSlots     int
}

func (e *NoCapacityError) Error() string {
	return fmt.Sprintf("mechanic %s has no available slots (%d/%d)",
		e.MechanicName, e.AvailableSlots, e.TotalSlots)
}

// Unwrap позволяет errors.Is(err, ErrNoCapacity)
func (e *NoCapacityError) Unwrap() error {
	return ErrNoCapacity
}
