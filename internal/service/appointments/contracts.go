package appointments

import (
	"context"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на ремонт
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
