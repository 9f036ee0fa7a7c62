package mechanics

import (
	"context"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

// MechanicRepository интерфейс репозитория механиков
type MechanicRepository interface {
	List(ctx context.Context) ([]*domain.Mechanic, error)
	GetByID(ctx context.Context, id int64) (*domain.Mechanic, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
