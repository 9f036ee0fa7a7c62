package domain

import "time"

// AppointmentStatus represents the status of a repair appointment
type AppointmentStatus string

const (
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusPending    AppointmentStatus = "pending"
	StatusInProgress AppointmentStatus = "in-progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"

	// StatusNone is the synthetic baseline status of an appointment that does
	// not exist yet. It is inactive, so creating an appointment is the
	// transition none -> confirmed and consumes a slot like any reactivation.
	StatusNone AppointmentStatus = "none"
)

// Appointment represents a repair appointment in the system
type Appointment struct {
	ID         int64
	MechanicID int64

	// Client and car payload, opaque to the slot accounting
	ClientName    string
	ClientPhone   string
	ClientAddress string
	CarLicense    string
	CarEngine     string
	Notes         *string

	// AppointmentDate is a calendar date, time-of-day carries no meaning
	AppointmentDate time.Time
	Status          AppointmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the status currently occupies a slot
func (s AppointmentStatus) IsActive() bool {
	return s == StatusConfirmed || s == StatusPending || s == StatusInProgress
}

// IsValid returns true if the status is one of the five storable values.
// StatusNone is a computation baseline and is never valid as stored data.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive returns true if the appointment currently holds a capacity unit
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// AppointmentsFilter фильтр для выборки записей на ремонт
type AppointmentsFilter struct {
	MechanicID *int64             // Фильтр по механику (опционально)
	Status     *AppointmentStatus // Фильтр по статусу (опционально)
	Date       *time.Time         // Фильтр по календарной дате (опционально)
}
