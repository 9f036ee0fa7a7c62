package create_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при отсутствующих или некорректных полях запроса
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrMechanicNotFound возвращается, когда механик не найден
	ErrMechanicNotFound = errors.New("create_appointment: mechanic not found")

	// ErrInvalidDate возвращается при нечитаемой дате или дате в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDuplicateBooking возвращается, когда у клиента уже есть активная
	// запись на эту дату
	ErrDuplicateBooking = errors.New("create_appointment: duplicate booking")

	// ErrFullyBooked возвращается, когда у механика не осталось слотов
	ErrFullyBooked = errors.New("create_appointment: mechanic is fully booked")

	// ErrStorage возвращается, когда транзакция бронирования не зафиксировалась
	ErrStorage = errors.New("create_appointment: storage error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// DuplicateBookingError конфликт бронирования с контекстом существующей записи.
// Это бизнес-отказ, не системный сбой: вызывающая сторона объясняет его
// клиенту по этим полям.
type DuplicateBookingError struct {
	ClientName string
	MechanicID int64
	Date       time.Time
}

func (e *DuplicateBookingError) Error() string {
	return fmt.Sprintf("client already has an appointment on %s (client=%s, mechanic=%d)",
		e.Date.Format(domain.DateFormat), e.ClientName, e.MechanicID)
}

// Unwrap позволяет errors.Is(err, ErrDuplicateBooking)
func (e *DuplicateBookingError) Unwrap() error {
	return ErrDuplicateBooking
}

// FullyBookedError отказ по вместимости с именем механика и счётчиками
type FullyBookedError struct {
	MechanicName   string
	AvailableSlots int
	TotalSlots     int
}

func (e *FullyBookedError) Error() string {
	return fmt.Sprintf("mechanic %s is fully booked (%d/%d slots available)",
		e.MechanicName, e.AvailableSlots, e.TotalSlots)
}

// Unwrap позволяет errors.Is(err, ErrFullyBooked)
func (e *FullyBookedError) Unwrap() error {
	return ErrFullyBooked
}
