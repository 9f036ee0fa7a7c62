package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GarageService/internal/domain"
	apptRepo "github.com/m04kA/SMC-GarageService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-GarageService/internal/service/appointments/models"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	gotFilter    domain.AppointmentsFilter
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	for _, a := range r.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

func (r *fakeAppointmentRepo) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	r.gotFilter = filter

	out := make([]*domain.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestList_ConvertsAndCounts(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 2, MechanicID: 1, ClientName: "Bob", Status: domain.StatusInProgress, AppointmentDate: date},
		{ID: 1, MechanicID: 1, ClientName: "Alice", Status: domain.StatusCancelled, AppointmentDate: date},
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Count)

	first := resp.Appointments[0]
	assert.Equal(t, int64(2), first.ID)
	assert.Equal(t, "in-progress", first.Status)
	assert.Equal(t, "In Progress", first.StatusText)
	assert.True(t, first.IsActive)
	assert.Equal(t, "2026-09-10", first.AppointmentDate)

	second := resp.Appointments[1]
	assert.Equal(t, "Cancelled", second.StatusText)
	assert.False(t, second.IsActive)
}

func TestList_StatusFilter(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 1, Status: domain.StatusConfirmed},
		{ID: 2, Status: domain.StatusCompleted},
	}}
	svc := NewService(repo, nopLogger{})

	status := "confirmed"
	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Status: &status})
	require.NoError(t, err)

	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.gotFilter.Status)
	assert.Equal(t, 1, resp.Count)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{}, nopLogger{})

	for _, status := range []string{"done", "none", ""} {
		_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Status: &status})
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q must be rejected", status)
	}
}

func TestGetByID(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 1, ClientName: "Alice", Status: domain.StatusPending},
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.ClientName)
	assert.Equal(t, "Pending", resp.StatusText)

	_, err = svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
