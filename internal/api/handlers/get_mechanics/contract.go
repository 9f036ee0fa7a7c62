package get_mechanics

import (
	"context"

	"github.com/m04kA/SMC-GarageService/internal/service/mechanics/models"
)

type MechanicsService interface {
	List(ctx context.Context, checkDate string) (*models.MechanicListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
