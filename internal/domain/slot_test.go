package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotDelta(t *testing.T) {
	tests := []struct {
		name  string
		from  AppointmentStatus
		to    AppointmentStatus
		delta int
	}{
		{"none to confirmed consumes a slot", StatusNone, StatusConfirmed, -1},
		{"none to pending consumes a slot", StatusNone, StatusPending, -1},
		{"confirmed to completed frees a slot", StatusConfirmed, StatusCompleted, +1},
		{"confirmed to cancelled frees a slot", StatusConfirmed, StatusCancelled, +1},
		{"in-progress to completed frees a slot", StatusInProgress, StatusCompleted, +1},
		{"pending to cancelled frees a slot", StatusPending, StatusCancelled, +1},
		{"cancelled to confirmed consumes a slot", StatusCancelled, StatusConfirmed, -1},
		{"completed to in-progress consumes a slot", StatusCompleted, StatusInProgress, -1},
		{"confirmed to pending keeps the slot", StatusConfirmed, StatusPending, 0},
		{"pending to in-progress keeps the slot", StatusPending, StatusInProgress, 0},
		{"completed to cancelled stays free", StatusCompleted, StatusCancelled, 0},
		{"cancelled to completed stays free", StatusCancelled, StatusCompleted, 0},
		{"confirmed to confirmed is a no-op", StatusConfirmed, StatusConfirmed, 0},
		{"cancelled to cancelled is a no-op", StatusCancelled, StatusCancelled, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.delta, SlotDelta(tt.from, tt.to))
		})
	}
}

func TestClampSlots(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		total   int
		want    int
		clamped bool
	}{
		{"within bounds", 2, 4, 2, false},
		{"at zero", 0, 4, 0, false},
		{"at total", 4, 4, 4, false},
		{"below zero", -1, 4, 0, true},
		{"above total", 5, 4, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := ClampSlots(tt.n, tt.total)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.clamped, clamped)
		})
	}
}

func TestSlotUpdate_ConsumedFreed(t *testing.T) {
	consumed := SlotUpdate{Delta: -1}
	assert.True(t, consumed.Consumed())
	assert.False(t, consumed.Freed())

	freed := SlotUpdate{Delta: +1}
	assert.True(t, freed.Freed())
	assert.False(t, freed.Consumed())
}
