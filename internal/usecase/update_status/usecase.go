package update_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GarageService/internal/domain"
	apptRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/appointment"
	mechRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/mechanic"
	"github.com/m04kA/SMC-GarageService/internal/service/slotledger"
)

// UseCase use case смены статуса записи на ремонт
type UseCase struct {
	appointmentRepo AppointmentRepository
	mechanicRepo    MechanicRepository
	ledger          SlotLedger
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
		logger:          logger,
	}
}

// Execute валидирует запрос и делегирует переход slot ledger'у.
// Сам статусный переход и изменение счётчика слотов применяются ledger'ом
// как одна атомарная операция.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateStatus: appointment=%d, new status=%s", req.AppointmentID, req.Status)

	if req.AppointmentID <= 0 {
		uc.logger.Warn("UpdateStatus: non-positive appointment id=%d", req.AppointmentID)
		return nil, ErrAppointmentNotFound
	}

	// Запись должна существовать
	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateStatus: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateStatus: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// Статус должен быть одним из пяти допустимых значений
	newStatus := domain.AppointmentStatus(req.Status)
	if !newStatus.IsValid() {
		uc.logger.Warn("UpdateStatus: invalid status %q for appointment id=%d", req.Status, req.AppointmentID)
		return nil, fmt.Errorf("%w: %q is not one of %v", ErrInvalidStatus, req.Status, domain.ValidStatuses)
	}

	// Переназначение механика через этот поток не поддерживается
	if req.MechanicID != nil && *req.MechanicID != appt.MechanicID {
		uc.logger.Warn("UpdateStatus: reassignment attempt on appointment id=%d (mechanic %d -> %d)",
			appt.ID, appt.MechanicID, *req.MechanicID)
		return nil, ErrReassignmentNotSupported
	}

	// Связанный механик должен существовать
	if _, err := uc.mechanicRepo.GetByID(ctx, appt.MechanicID); err != nil {
		if errors.Is(err, mechRepo.ErrMechanicNotFound) {
			uc.logger.Warn("UpdateStatus: mechanic id=%d of appointment id=%d not found", appt.MechanicID, appt.ID)
			return nil, ErrMechanicNotFound
		}
		uc.logger.Error("UpdateStatus: failed to get mechanic id=%d: %v", appt.MechanicID, err)
		return nil, fmt.Errorf("%w: failed to get mechanic: %v", ErrInternal, err)
	}

	slotUpdate, err := uc.ledger.ApplyTransition(ctx, appt.ID, newStatus, appt.MechanicID)
	if err != nil {
		var noCap *slotledger.NoCapacityError
		switch {
		case errors.As(err, &noCap):
			uc.logger.Warn("UpdateStatus: reactivation of appointment id=%d blocked, mechanic %s has no slots (%d/%d)",
				appt.ID, noCap.MechanicName, noCap.AvailableSlots, noCap.TotalSlots)
			return nil, &NoCapacityError{
				MechanicName:   noCap.MechanicName,
				AvailableSlots: noCap.AvailableSlots,
				TotalSlots:     noCap.TotalSlots,
			}
		case errors.Is(err, slotledger.ErrAppointmentNotFound):
			uc.logger.Warn("UpdateStatus: appointment id=%d vanished before commit", appt.ID)
			return nil, ErrAppointmentNotFound
		case errors.Is(err, slotledger.ErrMechanicNotFound):
			uc.logger.Warn("UpdateStatus: mechanic id=%d vanished before commit", appt.MechanicID)
			return nil, ErrMechanicNotFound
		default:
			uc.logger.Error("UpdateStatus: ledger transaction failed for appointment id=%d: %v", appt.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}

	resp := &Response{
		AppointmentID:  appt.ID,
		PreviousStatus: string(appt.Status),
		NewStatus:      string(newStatus),
		UpdatedAt:      time.Now(),
	}

	if slotUpdate != nil {
		resp.SlotUpdate = &SlotUpdateInfo{
			MechanicID:             slotUpdate.MechanicID,
			MechanicName:           slotUpdate.MechanicName,
			PreviousAvailableSlots: slotUpdate.PreviousSlots,
			CurrentAvailableSlots:  slotUpdate.NewSlots,
			TotalSlots:             slotUpdate.TotalSlots,
			SlotChange:             slotUpdate.Delta,
			Reason:                 fmt.Sprintf("%s -> %s", appt.Status, newStatus),
		}
	}

	uc.logger.Info("UpdateStatus: appointment=%d updated %s -> %s", appt.ID, appt.Status, newStatus)
	return resp, nil
}
