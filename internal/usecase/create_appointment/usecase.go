package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GarageService/internal/domain"
	apptRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/appointment"
	mechRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/mechanic"
	"github.com/m04kA/SMC-GarageService/internal/service/slotledger"
)

// UseCase use case бронирования записи на ремонт (booking workflow)
type UseCase struct {
	appointmentRepo AppointmentRepository
	mechanicRepo    MechanicRepository
	ledger          SlotLedger
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	mechanicRepo MechanicRepository,
	ledger SlotLedger,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		mechanicRepo:    mechanicRepo,
		ledger:          ledger,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute проводит валидацию запроса и создает запись через slot ledger.
// Порядок проверок фиксирован, первая неудачная выигрывает:
// поля -> механик -> дата -> дубль -> вместимость.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: mechanic=%d, phone=%s, date=%s",
		req.MechanicID, req.ClientPhone, req.AppointmentDate)

	// 1. Валидация обязательных полей
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Механик должен существовать
	mech, err := uc.mechanicRepo.GetByID(ctx, req.MechanicID)
	if err != nil {
		if errors.Is(err, mechRepo.ErrMechanicNotFound) {
			uc.logger.Warn("CreateAppointment: mechanic id=%d not found", req.MechanicID)
			return nil, ErrMechanicNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get mechanic id=%d: %v", req.MechanicID, err)
		return nil, fmt.Errorf("%w: failed to get mechanic: %v", ErrInternal, err)
	}

	// 3. Дата читаема и не в прошлом ("сегодня" допустимо)
	date, err := parseAppointmentDate(req.AppointmentDate, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 4. У клиента нет активной записи на эту дату (по телефону)
	phone := sanitizeText(req.ClientPhone)
	existing, err := uc.appointmentRepo.FindActiveByPhoneAndDate(ctx, phone, date)
	if err != nil && !errors.Is(err, apptRepo.ErrAppointmentNotFound) {
		uc.logger.Error("CreateAppointment: duplicate check failed for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrInternal, err)
	}
	if existing != nil {
		uc.logger.Warn("CreateAppointment: duplicate booking for phone=%s on %s (existing appointment=%d)",
			phone, date.Format(domain.DateFormat), existing.ID)
		return nil, &DuplicateBookingError{
			ClientName: existing.ClientName,
			MechanicID: existing.MechanicID,
			Date:       existing.AppointmentDate,
		}
	}

	// 5. Вместимость проверяет и списывает ledger — одной сериализуемой
	// транзакцией, никакого read-then-write вне её
	appt := &domain.Appointment{
		MechanicID:      req.MechanicID,
		ClientName:      sanitizeText(req.ClientName),
		ClientPhone:     phone,
		ClientAddress:   sanitizeText(req.ClientAddress),
		CarLicense:      normalizeCode(req.CarLicense),
		CarEngine:       normalizeCode(req.CarEngine),
		AppointmentDate: date,
	}
	if req.Notes != nil {
		notes := sanitizeText(*req.Notes)
		appt.Notes = &notes
	}

	created, slotUpdate, err := uc.ledger.CreateAppointment(ctx, appt)
	if err != nil {
		var noCap *slotledger.NoCapacityError
		switch {
		case errors.As(err, &noCap):
			uc.logger.Warn("CreateAppointment: mechanic %s fully booked (%d/%d)",
				noCap.MechanicName, noCap.AvailableSlots, noCap.TotalSlots)
			return nil, &FullyBookedError{
				MechanicName:   noCap.MechanicName,
				AvailableSlots: noCap.AvailableSlots,
				TotalSlots:     noCap.TotalSlots,
			}
		case errors.Is(err, slotledger.ErrMechanicNotFound):
			// Механик исчез между шагом 2 и транзакцией
			uc.logger.Warn("CreateAppointment: mechanic id=%d vanished before commit", req.MechanicID)
			return nil, ErrMechanicNotFound
		default:
			uc.logger.Error("CreateAppointment: ledger transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}

	uc.logger.Info("CreateAppointment: appointment=%d created for mechanic=%s, slots %d -> %d",
		created.ID, mech.Name, slotUpdate.PreviousSlots, slotUpdate.NewSlots)

	return &Response{
		ID:              created.ID,
		MechanicID:      created.MechanicID,
		MechanicName:    mech.Name,
		ClientName:      created.ClientName,
		ClientPhone:     created.ClientPhone,
		ClientAddress:   created.ClientAddress,
		CarLicense:      created.CarLicense,
		CarEngine:       created.CarEngine,
		Notes:           created.Notes,
		AppointmentDate: created.AppointmentDate,
		Status:          string(created.Status),
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
		SlotUpdate: SlotUpdateInfo{
			MechanicID:             slotUpdate.MechanicID,
			MechanicName:           slotUpdate.MechanicName,
			PreviousAvailableSlots: slotUpdate.PreviousSlots,
			CurrentAvailableSlots:  slotUpdate.NewSlots,
			TotalSlots:             slotUpdate.TotalSlots,
			SlotChange:             slotUpdate.Delta,
		},
	}, nil
}
