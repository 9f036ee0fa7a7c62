// Package slotledger — единственный владелец счётчика available_slots.
// Любое изменение счётчика происходит в одной сериализуемой транзакции
// вместе с записью статуса: либо фиксируются обе записи, либо ни одна.
//
// Создание записи проходит через тот же механизм как переход
// none -> confirmed, поэтому проверка вместимости и декремент всегда идут
// одним и тем же путём блокировки, что для бронирования, что для реактивации.
package slotledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GarageService/internal/domain"
	apptRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/appointment"
	mechRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/mechanic"
)

// Service slot ledger: атомарная связка статусных переходов и счётчиков слотов
type Service struct {
	appointmentRepo AppointmentRepository
	mechanicRepo    MechanicRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр slot ledger
func NewService(
	appointmentRepo AppointmentRepository,
	mechanicRepo MechanicRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		mechanicRepo:    mechanicRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// ApplyTransition применяет статусный переход существующей записи и
// соответствующее изменение счётчика слотов механика как одну атомарную
// операцию. Возвращает SlotUpdate, только если изменение вместимости
// действительно произошло (delta != 0).
//
// Исходный статус перечитывается внутри транзакции под блокировкой строки:
// дельта считается от фактически сохранённого статуса, а не от снимка
// вызывающей стороны, поэтому два конкурирующих перехода одной записи не
// могут освободить или занять один слот дважды.
//
// delta = +1: активный -> неактивный (слот освобождается)
// delta = -1: неактивный -> активный (слот занимается; при отсутствии
// свободных слотов операция отклоняется, статус записи не меняется)
// delta =  0: переход внутри одной категории, меняется только статус
func (s *Service) ApplyTransition(
	ctx context.Context,
	appointmentID int64,
	to domain.AppointmentStatus,
	mechanicID int64,
) (*domain.SlotUpdate, error) {
	s.logger.Info("ApplyTransition: appointment=%d -> %s, mechanic=%d", appointmentID, to, mechanicID)

	var update *domain.SlotUpdate

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Блокируем строку механика до любых проверок — конкурирующие
		// операции на одном механике сериализуются здесь
		mech, err := s.mechanicRepo.GetByID(txCtx, mechanicID)
		if err != nil {
			if errors.Is(err, mechRepo.ErrMechanicNotFound) {
				return ErrMechanicNotFound
			}
			return fmt.Errorf("%w: get mechanic id=%d: %v", ErrStorage, mechanicID, err)
		}

		stored, err := s.appointmentRepo.GetByID(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: get appointment id=%d: %v", ErrStorage, appointmentID, err)
		}

		delta := domain.SlotDelta(stored.Status, to)

		if delta < 0 && mech.IsFullyBooked() {
			return &NoCapacityError{
				MechanicID:     mech.ID,
				MechanicName:   mech.Name,
				AvailableSlots: mech.AvailableSlots,
				TotalSlots:     mech.TotalSlots,
			}
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, appointmentID, to); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: update appointment id=%d status: %v", ErrStorage, appointmentID, err)
		}

		if delta == 0 {
			return nil
		}

		newSlots, err := s.writeSlots(txCtx, mech, delta)
		if err != nil {
			return err
		}

		update = &domain.SlotUpdate{
			MechanicID:    mech.ID,
			MechanicName:  mech.Name,
			PreviousSlots: mech.AvailableSlots,
			NewSlots:      newSlots,
			TotalSlots:    mech.TotalSlots,
			Delta:         delta,
		}
		return nil
	})

	if err != nil {
		return nil, s.classify(err)
	}

	if update != nil {
		s.logger.Info("ApplyTransition: appointment=%d committed, mechanic=%d slots %d -> %d",
			appointmentID, mechanicID, update.PreviousSlots, update.NewSlots)
	}

	return update, nil
}

// CreateAppointment создает запись на ремонт и занимает один слот механика
// в одной атомарной операции — путь создания из booking workflow.
// Запись всегда создается в статусе confirmed.
func (s *Service) CreateAppointment(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, *domain.SlotUpdate, error) {
	appt.Status = domain.StatusConfirmed
	delta := domain.SlotDelta(domain.StatusNone, appt.Status)

	s.logger.Info("CreateAppointment: mechanic=%d, client=%s, date=%s",
		appt.MechanicID, appt.ClientName, appt.AppointmentDate.Format(domain.DateFormat))

	var (
		created *domain.Appointment
		update  *domain.SlotUpdate
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		mech, err := s.mechanicRepo.GetByID(txCtx, appt.MechanicID)
		if err != nil {
			if errors.Is(err, mechRepo.ErrMechanicNotFound) {
				return ErrMechanicNotFound
			}
			return fmt.Errorf("%w: get mechanic id=%d: %v", ErrStorage, appt.MechanicID, err)
		}

		if mech.IsFullyBooked() {
			return &NoCapacityError{
				MechanicID:     mech.ID,
				MechanicName:   mech.Name,
				AvailableSlots: mech.AvailableSlots,
				TotalSlots:     mech.TotalSlots,
			}
		}

		created, err = s.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			return fmt.Errorf("%w: create appointment: %v", ErrStorage, err)
		}

		newSlots, err := s.writeSlots(txCtx, mech, delta)
		if err != nil {
			return err
		}

		update = &domain.SlotUpdate{
			MechanicID:    mech.ID,
			MechanicName:  mech.Name,
			PreviousSlots: mech.AvailableSlots,
			NewSlots:      newSlots,
			TotalSlots:    mech.TotalSlots,
			Delta:         delta,
		}
		return nil
	})

	if err != nil {
		return nil, nil, s.classify(err)
	}

	s.logger.Info("CreateAppointment: appointment=%d committed, mechanic=%d slots %d -> %d",
		created.ID, update.MechanicID, update.PreviousSlots, update.NewSlots)

	return created, update, nil
}

// writeSlots вычисляет и записывает новое значение счётчика.
// Clamp — последняя линия защиты: при корректном учёте он никогда не
// срабатывает, поэтому его срабатывание логируется как нарушение инварианта.
func (s *Service) writeSlots(txCtx context.Context, mech *domain.Mechanic, delta int) (int, error) {
	newSlots, clamped := domain.ClampSlots(mech.AvailableSlots+delta, mech.TotalSlots)
	if clamped {
		s.logger.Warn("writeSlots: slot clamp engaged for mechanic=%d: computed=%d, stored=%d, total=%d — accounting invariant violated upstream",
			mech.ID, mech.AvailableSlots+delta, newSlots, mech.TotalSlots)
	}

	if err := s.mechanicRepo.UpdateSlots(txCtx, mech.ID, newSlots); err != nil {
		return 0, fmt.Errorf("%w: update mechanic id=%d slots: %v", ErrStorage, mech.ID, err)
	}

	return newSlots, nil
}

// classify приводит ошибку транзакции к ошибкам ledger'а. Бизнес-отказы и
// already-классифицированные ошибки проходят как есть; всё остальное
// (включая сбой фиксации) — StorageError, без повторов.
func (s *Service) classify(err error) error {
	switch {
	case errors.Is(err, ErrNoCapacity),
		errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, ErrMechanicNotFound),
		errors.Is(err, ErrStorage):
		return err
	default:
		return fmt.Errorf("%w: transaction failed: %v", ErrStorage, err)
	}
}
