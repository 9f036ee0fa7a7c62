package domain

// SlotDelta returns the capacity change implied by a status transition:
// +1 when a slot is freed (active -> inactive), -1 when a slot is consumed
// (inactive -> active), 0 when the transition stays within one category.
func SlotDelta(from, to AppointmentStatus) int {
	wasActive := from.IsActive()
	willBeActive := to.IsActive()

	switch {
	case wasActive && !willBeActive:
		return +1
	case !wasActive && willBeActive:
		return -1
	default:
		return 0
	}
}

// ClampSlots bounds a computed slot count to [0, total] and reports whether
// clamping changed the value. Under correct accounting it never does; a true
// second return value indicates an invariant violation upstream and callers
// are expected to log it.
func ClampSlots(n, total int) (int, bool) {
	switch {
	case n < 0:
		return 0, true
	case n > total:
		return total, true
	default:
		return n, false
	}
}

// SlotUpdate describes a committed capacity change on a mechanic
type SlotUpdate struct {
	MechanicID    int64
	MechanicName  string
	PreviousSlots int
	NewSlots      int
	TotalSlots    int
	Delta         int
}

// Consumed returns true if the update took a slot
func (u *SlotUpdate) Consumed() bool {
	return u.Delta < 0
}

// Freed returns true if the update released a slot
func (u *SlotUpdate) Freed() bool {
	return u.Delta > 0
}
