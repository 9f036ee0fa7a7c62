package mechanics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GarageService/internal/domain"
	mechRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/mechanic"
	"github.com/m04kA/SMC-GarageService/internal/service/mechanics/models"
)

// Service сервис чтения механиков с производной доступностью
type Service struct {
	mechanicRepo MechanicRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса механиков
func NewService(mechanicRepo MechanicRepository, logger Logger) *Service {
	return &Service{
		mechanicRepo: mechanicRepo,
		logger:       logger,
	}
}

// List получает всех механиков по имени в алфавитном порядке.
// checkDate — дата, на которую запрошена доступность; пустая строка
// означает сегодня. Счётчики слотов берутся из хранимого состояния,
// производные поля (bookedSlots, isAvailable) вычисляются на лету.
func (s *Service) List(ctx context.Context, checkDate string) (*models.MechanicListResponse, error) {
	date, err := s.resolveCheckDate(checkDate)
	if err != nil {
		s.logger.Warn("List: invalid check date %q", checkDate)
		return nil, err
	}

	s.logger.Info("List: fetching mechanics for date=%s", date.Format(domain.DateFormat))

	mechanics, err := s.mechanicRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d mechanics", len(mechanics))
	return models.FromDomainMechanicList(mechanics, date), nil
}

// GetByID получает механика по ID с производной доступностью на сегодня
func (s *Service) GetByID(ctx context.Context, id int64) (*models.MechanicResponse, error) {
	s.logger.Info("GetByID: fetching mechanic id=%d", id)

	mech, err := s.mechanicRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mechRepo.ErrMechanicNotFound) {
			s.logger.Warn("GetByID: mechanic id=%d not found", id)
			return nil, ErrMechanicNotFound
		}
		s.logger.Error("GetByID: repository error for mechanic id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainMechanic(mech, time.Now()), nil
}

// resolveCheckDate парсит дату запроса, пустое значение означает сегодня
func (s *Service) resolveCheckDate(checkDate string) (time.Time, error) {
	if checkDate == "" {
		return time.Now(), nil
	}

	date, err := time.Parse(domain.DateFormat, checkDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not in YYYY-MM-DD format", ErrInvalidDate, checkDate)
	}

	return date, nil
}
