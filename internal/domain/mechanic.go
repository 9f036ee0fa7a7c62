package domain

import "time"

// Mechanic represents a mechanic with a fixed daily slot capacity.
// Static attributes (name, specialization, rates) are provisioned out-of-band
// by the seed migration; only AvailableSlots is mutated at runtime, and only
// by the slot ledger.
type Mechanic struct {
	ID             int64
	Name           string
	Email          string
	Contact        string
	Specialization string
	Experience     int
	Shift          string
	HourlyRate     float64
	Available      bool

	// AvailableSlots is the count of daily capacity units not currently held
	// by an active appointment. Invariant: 0 <= AvailableSlots <= TotalSlots.
	AvailableSlots int
	// TotalSlots is the capacity ceiling, fixed per mechanic
	TotalSlots int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookedSlots returns the number of capacity units currently held by active appointments
func (m *Mechanic) BookedSlots() int {
	return m.TotalSlots - m.AvailableSlots
}

// HasCapacity returns true if at least one slot is free
func (m *Mechanic) HasCapacity() bool {
	return m.AvailableSlots > 0
}

// IsFullyBooked returns true if no slots are free
func (m *Mechanic) IsFullyBooked() bool {
	return m.AvailableSlots <= 0
}
