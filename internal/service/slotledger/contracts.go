package slotledger

import (
	"context"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на ремонт.
// GetByID внутри транзакции обязан блокировать строку записи (FOR UPDATE).
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// MechanicRepository интерфейс репозитория механиков.
// GetByID внутри транзакции обязан блокировать строку механика (FOR UPDATE).
type MechanicRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Mechanic, error)
	UpdateSlots(ctx context.Context, id int64, availableSlots int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
