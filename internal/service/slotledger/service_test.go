package slotledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GarageService/internal/domain"
	apptRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/appointment"
	mechRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/mechanic"
)

// memStore общее in-memory состояние фейковых репозиториев.
// Сами методы репозиториев не синхронизируются: весь конкурентный доступ
// идёт через fakeTxManager, который сериализует транзакции мьютексом,
// как это делает блокировка строки механика в PostgreSQL.
type memStore struct {
	mu           sync.Mutex
	mechanics    map[int64]*domain.Mechanic
	appointments map[int64]*domain.Appointment
	nextID       int64

	failUpdateSlots bool
}

func newMemStore() *memStore {
	return &memStore{
		mechanics:    make(map[int64]*domain.Mechanic),
		appointments: make(map[int64]*domain.Appointment),
	}
}

func (s *memStore) addMechanic(id int64, name string, available, total int) {
	s.mechanics[id] = &domain.Mechanic{
		ID:             id,
		Name:           name,
		AvailableSlots: available,
		TotalSlots:     total,
	}
}

func (s *memStore) addAppointment(id, mechanicID int64, status domain.AppointmentStatus) {
	s.appointments[id] = &domain.Appointment{
		ID:         id,
		MechanicID: mechanicID,
		Status:     status,
	}
	if id > s.nextID {
		s.nextID = id
	}
}

// activeCount считает записи, занимающие слот у механика
func (s *memStore) activeCount(mechanicID int64) int {
	n := 0
	for _, a := range s.appointments {
		if a.MechanicID == mechanicID && a.IsActive() {
			n++
		}
	}
	return n
}

func (s *memStore) snapshot() (map[int64]*domain.Mechanic, map[int64]*domain.Appointment, int64) {
	mechanics := make(map[int64]*domain.Mechanic, len(s.mechanics))
	for id, m := range s.mechanics {
		copied := *m
		mechanics[id] = &copied
	}
	appointments := make(map[int64]*domain.Appointment, len(s.appointments))
	for id, a := range s.appointments {
		copied := *a
		appointments[id] = &copied
	}
	return mechanics, appointments, s.nextID
}

type fakeMechanicRepo struct {
	store *memStore
}

func (r *fakeMechanicRepo) GetByID(_ context.Context, id int64) (*domain.Mechanic, error) {
	m, ok := r.store.mechanics[id]
	if !ok {
		return nil, mechRepo.ErrMechanicNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMechanicRepo) UpdateSlots(_ context.Context, id int64, availableSlots int) error {
	if r.store.failUpdateSlots {
		return errors.New("disk on fire")
	}
	m, ok := r.store.mechanics[id]
	if !ok {
		return mechRepo.ErrMechanicNotFound
	}
	m.AvailableSlots = availableSlots
	return nil
}

type fakeAppointmentRepo struct {
	store *memStore
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.store.nextID++
	created := *appt
	created.ID = r.store.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.store.appointments[created.ID] = &created

	result := created
	return &result, nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := r.store.appointments[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	a, ok := r.store.appointments[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

// fakeTxManager сериализует транзакции мьютексом и откатывает состояние
// по снапшоту при ошибке — атомарность в миниатюре
type fakeTxManager struct {
	store *memStore
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	mechanics, appointments, nextID := m.store.snapshot()

	if err := fn(ctx); err != nil {
		m.store.mechanics = mechanics
		m.store.appointments = appointments
		m.store.nextID = nextID
		return err
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestLedger(store *memStore) *Service {
	return NewService(
		&fakeAppointmentRepo{store: store},
		&fakeMechanicRepo{store: store},
		&fakeTxManager{store: store},
		nopLogger{},
	)
}

// ожидаемая связь счётчика и активных записей
func assertInvariant(t *testing.T, store *memStore, mechanicID int64) {
	t.Helper()
	m := store.mechanics[mechanicID]
	assert.Equal(t, m.TotalSlots-m.AvailableSlots, store.activeCount(mechanicID),
		"booked slots must equal count of active appointments")
}

func TestCreateAppointment_ConsumesSlot(t *testing.T) {
	store := newMemStore()
	store.addMechanic(1, "John Smith", 4, 4)
	ledger := newTestLedger(store)

	created, update, err := ledger.CreateAppointment(context.Background(), &domain.Appointment{
		MechanicID:      1,
		ClientName:      "Alice",
		ClientPhone:     "+15550001111",
		AppointmentDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, created.Status)
	assert.NotZero(t, created.ID)

	require.NotNil(t, update)
	assert.Equal(t, 4, update.PreviousSlots)
	assert.Equal(t, 3, update.NewSlots)
	assert.Equal(t, -1, update.Delta)
	assert.True(t, update.Consumed())

	assert.Equal(t, 3, store.mechanics[1].AvailableSlots)
	assertInvariant(t, store, 1)
}

func TestCreateAppointment_FullyBooked(t *testing.T) {
	store := newMemStore()
	store.addMechanic(1, "John Smith", 0, 4)
	ledger := newTestLedger(store)

	_, _, err := ledger.CreateAppointment(context.Background(), &domain.Appointment{MechanicID: 1})
	require.Error(t, err)

	var noCap *NoCapacityError
	require.ErrorAs(t, err, &noCap)
	assert.Equal(t, "John Smith", noCap.MechanicName)
	assert.Equal(t, 0, noCap.AvailableSlots)
	assert.Equal(t, 4, noCap.TotalSlots)
	assert.ErrorIs(t, err, ErrNoCapacity)

	// Никаких частичных эффектов
	assert.Empty(t, store.appointments)
	assert.Equal(t, 0, store.mechanics[1].AvailableSlots)
}

func TestCreateAppointment_MechanicMissing(t *testing.T) {
	store := newMemStore()
	ledger := newTestLedger(store)

	_, _, err := ledger.CreateAppointment(context.Background(), &domain.Appointment{MechanicID: 42})
	assert.ErrorIs(t, err, ErrMechanicNotFound)
	assert.Empty(t, store.appointments)
}

func TestApplyTransition_FreesSlot(t *testing.T) {
	store := newMemStore()
	store.addMechanic(1, "Mike Johnson", 3, 4)
	store.addAppointment(10, 1, domain.StatusConfirmed)
	ledger := newTestLedger(store)

	update, err := ledger.ApplyTransition(context.Background(), 10, domain.StatusCompleted, 1)
	require.NoError(t, err)

	require.NotNil(t, update)
	assert.Equal(t, +1, update.Delta)
	assert.Equal(t, 3, update.PreviousSlots)
	assert.Equal(t, 4, update.NewSlots)
	assert.True(t, update.Freed())

	assert.Equal(t, domain.StatusCompleted, store.appointments[10].Status)
	assert.Equal(t, 4, store.mechanics[1].AvailableSlots)
	assertInvariant(t, store, 1)
}

func TestApplyTransition_SameCategoryKeepsSlots(t *testing.T) {
	store := newMemStore()
	store.addMechanic(1, "Mike Johnson", 3, 4)
	store.addAppointment(10, 1, domain.StatusConfirmed)
	ledger := newTestLedger(store)

	update, err := ledger.ApplyTransition(context.Background(), 10, domain.StatusInProgress, 1)
	require.NoError(t, err)

	// Переход внутри активной категории не трогает счётчик
	assert.Nil(t, update)
	assert.Equal(t, domain.StatusInProgress, store.appointments[10].Status)
	assert.Equal(t, 3, store.mechanics[1].AvailableSlots)
	assertInvariant(t, store, 1)
}

func TestApplyTransition_ReactivationConsumesSlot(t *testing.T) {
	store := newMemStore()
	store.addMechanic(1, "David Wilson", 2, 4)
	store.addAppointment(10, 1, domain.StatusCancelled)
	store.addAppointment(11, 1, domain.StatusConfirmed)
	store.addAppointment(12, 1, domain.StatusPending)
	ledger := newTestLedger(store)

	update, err := ledger.ApplyTransition(context.Background(), 10, domain.StatusConfirmed, 1)
	require.NoError(t, err)

	require.NotNil(t, update)
	assert.Equal(t, -1, update.Delta)
	assert.Equal(t, 1, store.mechanics[1].AvailableSlots)
	assert.Equal(t, domain.StatusConfirmed, store.appointments[10].Status)
	assertInvariant(t, store, 1)
}

func TestApplyTransition_ReactivationBlockedWhenFull(t *testing.T) {
	store := newMemStore()
	store.addMechanic(1, "David Wilson", 0, 4)
	store.addAppointment(10, 1, domain.StatusCancelled)
	ledger := newTestLedger(store)

	_, err := ledger.ApplyTransition(context.Background(), 10, domain.StatusConfirmed, 1)
	require.Error(t, err)

	var noCap *NoCapacityError
	require.ErrorAs(t, err, &noCap)
	assert.Equal(t, "David Wilson", noCap.MechanicName)

	// Статус записи не изменился
	assert.Equal(t, domain.StatusCancelled, store.appointments[10].Status)
	assert.Equal(t, 0, store.mechanics[1].AvailableSlots)
}

func TestApplyTransition_RepeatedCompletionFreesSlotOnce(t *testing.T) {
	store := newMemStore()
	store.addMechanic(1, "Mike Johnson", 2, 4)
	store.addAppointment(10, 1, domain.StatusConfirmed)
	store.addAppointment(11, 1, domain.StatusConfirmed)
	ledger := newTestLedger(store)
	ctx := context.Background()

	// Два одинаковых перехода одной записи: оба вызывающих прочитали
	// confirmed до транзакции, но дельта считается от сохранённого статуса
	first, err := ledger.ApplyTransition(ctx, 10, domain.StatusCompleted, 1)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, +1, first.Delta)

	second, err := ledger.ApplyTransition(ctx, 10, domain.StatusCompleted, 1)
	require.NoError(t, err)
	assert.Nil(t, second)

	// Запись 11 всё ещё активна, её слот не освобождён чужим переходом
	assert.Equal(t, 3, store.mechanics[1].AvailableSlots)
	assertInvariant(t, store, 1)
}

func TestApplyTransition_AppointmentMissing(t *testing.T) {
	store := newMemStore()
	store.addMechanic(1, "David Wilson", 2, 4)
	ledger := newTestLedger(store)

	_, err := ledger.ApplyTransition(context.Background(), 99, domain.StatusCompleted, 1)
	require.ErrorIs(t, err, ErrAppointmentNotFound)

	// Откат: счётчик не тронут
	assert.Equal(t, 2, store.mechanics[1].AvailableSlots)
}

func TestApplyTransition_RollbackOnSlotWriteFailure(t *testing.T) {
	store := newMemStore()
	store.addMechanic(1, "James Davis", 3, 4)
	store.addAppointment(10, 1, domain.StatusConfirmed)
	store.failUpdateSlots = true
	ledger := newTestLedger(store)

	_, err := ledger.ApplyTransition(context.Background(), 10, domain.StatusCompleted, 1)
	require.ErrorIs(t, err, ErrStorage)

	// Статусный переход откатился вместе со сбоем записи счётчика:
	// либо фиксируются обе записи, либо ни одна
	assert.Equal(t, domain.StatusConfirmed, store.appointments[10].Status)
	assert.Equal(t, 3, store.mechanics[1].AvailableSlots)
	assertInvariant(t, store, 1)
}

func TestCreateAppointment_ConcurrentBookingsNoOverdraft(t *testing.T) {
	store := newMemStore()
	store.addMechanic(1, "John Smith", 4, 4)
	ledger := newTestLedger(store)

	const attempts = 10
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := ledger.CreateAppointment(context.Background(), &domain.Appointment{MechanicID: 1})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, rejected := 0, 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrNoCapacity)
			rejected++
		}
	}

	assert.Equal(t, 4, succeeded)
	assert.Equal(t, attempts-4, rejected)
	assert.Equal(t, 0, store.mechanics[1].AvailableSlots)
	assert.Len(t, store.appointments, 4)
	assertInvariant(t, store, 1)
}

func TestLedger_FullLifecycle(t *testing.T) {
	store := newMemStore()
	store.addMechanic(1, "John Smith", 4, 4)
	ledger := newTestLedger(store)
	ctx := context.Background()

	// Занимаем все четыре слота
	ids := make([]int64, 0, 4)
	for i := 0; i < 4; i++ {
		created, _, err := ledger.CreateAppointment(ctx, &domain.Appointment{MechanicID: 1})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}
	assert.Equal(t, 0, store.mechanics[1].AvailableSlots)
	assertInvariant(t, store, 1)

	// Пятое бронирование отклоняется
	_, _, err := ledger.CreateAppointment(ctx, &domain.Appointment{MechanicID: 1})
	assert.ErrorIs(t, err, ErrNoCapacity)

	// Завершение освобождает слот
	_, err = ledger.ApplyTransition(ctx, ids[0], domain.StatusCompleted, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, store.mechanics[1].AvailableSlots)
	assertInvariant(t, store, 1)

	// Освободившийся слот можно занять снова
	_, _, err = ledger.CreateAppointment(ctx, &domain.Appointment{MechanicID: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, store.mechanics[1].AvailableSlots)

	// Отмена возвращает слот
	_, err = ledger.ApplyTransition(ctx, ids[1], domain.StatusCancelled, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, store.mechanics[1].AvailableSlots)
	assertInvariant(t, store, 1)

	// Завершённую запись нельзя "перезавершить" со сдвигом счётчика
	_, err = ledger.ApplyTransition(ctx, ids[0], domain.StatusCancelled, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, store.mechanics[1].AvailableSlots)
	assertInvariant(t, store, 1)
}
