package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_IsActive(t *testing.T) {
	assert.True(t, StatusConfirmed.IsActive())
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusInProgress.IsActive())

	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusCancelled.IsActive())

	// Базовый статус несуществующей записи не занимает слот
	assert.False(t, StatusNone.IsActive())
}

func TestAppointmentStatus_IsValid(t *testing.T) {
	for _, s := range ValidStatuses {
		assert.True(t, s.IsValid(), "status %s must be valid", s)
	}

	assert.False(t, StatusNone.IsValid())
	assert.False(t, AppointmentStatus("unknown").IsValid())
	assert.False(t, AppointmentStatus("").IsValid())
}

func TestMechanic_SlotAccounting(t *testing.T) {
	m := &Mechanic{AvailableSlots: 1, TotalSlots: 4}
	assert.Equal(t, 3, m.BookedSlots())
	assert.True(t, m.HasCapacity())
	assert.False(t, m.IsFullyBooked())

	m.AvailableSlots = 0
	assert.Equal(t, 4, m.BookedSlots())
	assert.False(t, m.HasCapacity())
	assert.True(t, m.IsFullyBooked())
}
