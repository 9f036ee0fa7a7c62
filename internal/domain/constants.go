package domain

// Default capacity values
const (
	DefaultTotalSlots = 4
)

// Business validation constants
const (
	MaxClientNameLength    = 100
	MaxClientPhoneLength   = 20
	MaxClientAddressLength = 300
	MaxCarLicenseLength    = 20
	MaxCarEngineLength     = 50
	MaxNotesLength         = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, удерживающих слот
// Используется для фильтрации при проверке дублей и подсчёте занятых слотов
var ActiveStatuses = []AppointmentStatus{
	StatusConfirmed,
	StatusPending,
	StatusInProgress,
}

// InactiveStatuses список статусов, не удерживающих слот
var InactiveStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}

// ValidStatuses полный список допустимых хранимых статусов
var ValidStatuses = []AppointmentStatus{
	StatusConfirmed,
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}
