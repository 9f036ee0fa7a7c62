package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GarageService/internal/domain"
	apptRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/appointment"
	mechRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/mechanic"
	"github.com/m04kA/SMC-GarageService/internal/service/slotledger"
)

type fakeMechanicRepo struct {
	mechanics map[int64]*domain.Mechanic
}

func (r *fakeMechanicRepo) GetByID(_ context.Context, id int64) (*domain.Mechanic, error) {
	m, ok := r.mechanics[id]
	if !ok {
		return nil, mechRepo.ErrMechanicNotFound
	}
	return m, nil
}

type fakeAppointmentRepo struct {
	existing *domain.Appointment
}

func (r *fakeAppointmentRepo) FindActiveByPhoneAndDate(_ context.Context, _ string, _ time.Time) (*domain.Appointment, error) {
	if r.existing == nil {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return r.existing, nil
}

type fakeLedger struct {
	err      error
	lastAppt *domain.Appointment
}

func (l *fakeLedger) CreateAppointment(_ context.Context, appt *domain.Appointment) (*domain.Appointment, *domain.SlotUpdate, error) {
	if l.err != nil {
		return nil, nil, l.err
	}

	l.lastAppt = appt

	created := *appt
	created.ID = 1
	created.Status = domain.StatusConfirmed
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt

	return &created, &domain.SlotUpdate{
		MechanicID:    appt.MechanicID,
		MechanicName:  "John Smith",
		PreviousSlots: 4,
		NewSlots:      3,
		TotalSlots:    4,
		Delta:         -1,
	}, nil
}

type fixedTime struct {
	now time.Time
}

func (p *fixedTime) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		ClientName:      "Alice Brown",
		ClientPhone:     "+15550001111",
		ClientAddress:   "12 Main St",
		CarLicense:      "abc-123",
		CarEngine:       "eng-777",
		AppointmentDate: "2026-09-10",
		MechanicID:      1,
	}
}

func newTestUseCase(mechanics *fakeMechanicRepo, appointments *fakeAppointmentRepo, ledger *fakeLedger) *UseCase {
	uc := NewUseCase(appointments, mechanics, ledger, nopLogger{})
	uc.timeProvider = &fixedTime{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func defaultMechanics() *fakeMechanicRepo {
	return &fakeMechanicRepo{mechanics: map[int64]*domain.Mechanic{
		1: {ID: 1, Name: "John Smith", AvailableSlots: 4, TotalSlots: 4},
	}}
}

func TestExecute_Success(t *testing.T) {
	ledger := &fakeLedger{}
	uc := newTestUseCase(defaultMechanics(), &fakeAppointmentRepo{}, ledger)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "John Smith", resp.MechanicName)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 4, resp.SlotUpdate.PreviousAvailableSlots)
	assert.Equal(t, 3, resp.SlotUpdate.CurrentAvailableSlots)
	assert.Equal(t, -1, resp.SlotUpdate.SlotChange)
}

func TestExecute_NormalizesPayload(t *testing.T) {
	ledger := &fakeLedger{}
	uc := newTestUseCase(defaultMechanics(), &fakeAppointmentRepo{}, ledger)

	req := validRequest()
	req.ClientName = "  Alice <script> "
	req.CarLicense = " abc-123 "
	req.CarEngine = "eng-777x"

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, ledger.lastAppt)
	assert.Equal(t, "Alice &lt;script&gt;", ledger.lastAppt.ClientName)
	assert.Equal(t, "ABC-123", ledger.lastAppt.CarLicense)
	assert.Equal(t, "ENG-777X", ledger.lastAppt.CarEngine)
}

func TestExecute_MissingFields(t *testing.T) {
	uc := newTestUseCase(defaultMechanics(), &fakeAppointmentRepo{}, &fakeLedger{})

	for _, mutate := range []func(*Request){
		func(r *Request) { r.ClientName = "" },
		func(r *Request) { r.ClientPhone = "   " },
		func(r *Request) { r.ClientAddress = "" },
		func(r *Request) { r.CarLicense = "" },
		func(r *Request) { r.CarEngine = "" },
		func(r *Request) { r.AppointmentDate = "" },
		func(r *Request) { r.MechanicID = 0 },
	} {
		req := validRequest()
		mutate(req)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestExecute_MechanicCheckedBeforeDate(t *testing.T) {
	// Запрос с несуществующим механиком И некорректной датой:
	// отказ по механику выигрывает
	uc := newTestUseCase(&fakeMechanicRepo{mechanics: map[int64]*domain.Mechanic{}}, &fakeAppointmentRepo{}, &fakeLedger{})

	req := validRequest()
	req.MechanicID = 42
	req.AppointmentDate = "not-a-date"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrMechanicNotFound)
}

func TestExecute_InvalidDate(t *testing.T) {
	uc := newTestUseCase(defaultMechanics(), &fakeAppointmentRepo{}, &fakeLedger{})

	for _, date := range []string{"15-10-2026", "2026/10/15", "garbage"} {
		req := validRequest()
		req.AppointmentDate = date

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate, "date %q must be rejected", date)
	}
}

func TestExecute_PastDateRejectedTodayAllowed(t *testing.T) {
	ledger := &fakeLedger{}
	uc := newTestUseCase(defaultMechanics(), &fakeAppointmentRepo{}, ledger)

	// Вчера — отказ
	req := validRequest()
	req.AppointmentDate = "2026-08-31"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Сегодня — допустимо
	req = validRequest()
	req.AppointmentDate = "2026-09-01"
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_DuplicateBooking(t *testing.T) {
	existing := &domain.Appointment{
		ID:              7,
		MechanicID:      2,
		ClientName:      "Alice Brown",
		ClientPhone:     "+15550001111",
		AppointmentDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:          domain.StatusConfirmed,
	}
	uc := newTestUseCase(defaultMechanics(), &fakeAppointmentRepo{existing: existing}, &fakeLedger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)

	var dup *DuplicateBookingError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Alice Brown", dup.ClientName)
	assert.Equal(t, int64(2), dup.MechanicID)
	assert.Equal(t, existing.AppointmentDate, dup.Date)
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestExecute_FullyBooked(t *testing.T) {
	ledger := &fakeLedger{err: &slotledger.NoCapacityError{
		MechanicID:     1,
		MechanicName:   "John Smith",
		AvailableSlots: 0,
		TotalSlots:     4,
	}}
	uc := newTestUseCase(defaultMechanics(), &fakeAppointmentRepo{}, ledger)

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)

	var full *FullyBookedError
	require.ErrorAs(t, err, &full)
	assert.Equal(t, "John Smith", full.MechanicName)
	assert.Equal(t, 0, full.AvailableSlots)
	assert.Equal(t, 4, full.TotalSlots)
	assert.ErrorIs(t, err, ErrFullyBooked)
}

func TestExecute_LedgerStorageFailure(t *testing.T) {
	ledger := &fakeLedger{err: slotledger.ErrStorage}
	uc := newTestUseCase(defaultMechanics(), &fakeAppointmentRepo{}, ledger)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStorage)
}
