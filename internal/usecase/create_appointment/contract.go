package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

// MechanicRepository интерфейс репозитория механиков
type MechanicRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Mechanic, error)
}

// AppointmentRepository интерфейс репозитория записей на ремонт
type AppointmentRepository interface {
	FindActiveByPhoneAndDate(ctx context.Context, phone string, date time.Time) (*domain.Appointment, error)
}

// SlotLedger интерфейс slot ledger — атомарное создание записи с занятием слота
type SlotLedger interface {
	CreateAppointment(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, *domain.SlotUpdate, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
