package update_status

import (
	"context"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на ремонт
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// MechanicRepository интерфейс репозитория механиков
type MechanicRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Mechanic, error)
}

// SlotLedger интерфейс slot ledger — атомарный статусный переход.
// Исходный статус ledger перечитывает сам внутри транзакции.
type SlotLedger interface {
	ApplyTransition(ctx context.Context, appointmentID int64, to domain.AppointmentStatus, mechanicID int64) (*domain.SlotUpdate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
