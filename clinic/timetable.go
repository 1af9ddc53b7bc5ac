/*
timetable.go - The slot ledger

PURPOSE:
  The Timetable is the authoritative collection of all appointment slots
  across the scheduling horizon. It is the exclusive owner of every Slot
  instance: external callers only ever see detached copies, and slot state
  is mutated solely by the Engine's transition operations.

INVARIANTS:
  - No provider double-booking: for any two slots referencing the same
    provider, start instants must differ. Enforced at insertion time.
  - Views preserve ledger insertion order (stable, not sorted by time);
    callers needing chronological order must sort.

SEE ALSO:
  - engine.go: the only mutating caller
  - report.go: read-only aggregation over All()
*/
package clinic

import (
	"sync"
)

// Timetable owns the slot collection.
type Timetable struct {
	mu    sync.RWMutex
	slots []*Slot
}

func NewTimetable() *Timetable {
	return &Timetable{}
}

// AddSlot appends a slot to the ledger. Fails with SlotConflictError when
// the provider already has a slot at the same start instant, whatever that
// slot's status.
func (t *Timetable) AddSlot(slot *Slot) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.slots {
		if s.Provider == slot.Provider && s.Start.Equal(slot.Start) {
			return &SlotConflictError{Provider: slot.Provider, Start: slot.Start}
		}
	}
	t.slots = append(t.slots, slot)
	return nil
}

// AvailableByCategory returns copies of all available slots whose treatment
// requires the given skill category, in insertion order.
func (t *Timetable) AvailableByCategory(category SkillCategory) []*Slot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []*Slot
	for _, s := range t.slots {
		if s.status == StatusAvailable && s.Category() == category {
			out = append(out, s.clone())
		}
	}
	return out
}

// AvailableByProvider returns copies of all available slots belonging to the
// given provider, in insertion order.
func (t *Timetable) AvailableByProvider(providerID ProviderID) []*Slot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []*Slot
	for _, s := range t.slots {
		if s.status == StatusAvailable && s.Provider == providerID {
			out = append(out, s.clone())
		}
	}
	return out
}

// FindByID returns a copy of the slot, or (nil, false) when absent.
func (t *Timetable) FindByID(id SlotID) (*Slot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if s := t.get(id); s != nil {
		return s.clone(), true
	}
	return nil, false
}

// All returns a full snapshot of the ledger in insertion order. The copies
// are detached: mutating them does not touch ledger state.
func (t *Timetable) All() []*Slot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Slot, len(t.slots))
	for i, s := range t.slots {
		out[i] = s.clone()
	}
	return out
}

// Len returns the number of slots in the ledger.
func (t *Timetable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.slots)
}

// get returns the live slot for Engine mutation. Callers must hold at least
// a read lock; the Engine's own mutex serializes the mutations themselves.
func (t *Timetable) get(id SlotID) *Slot {
	for _, s := range t.slots {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// live returns the live slot under the timetable's read lock.
func (t *Timetable) live(id SlotID) *Slot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.get(id)
}

// liveAvailable returns the live slot only when it is currently available
// and matches the filter the caller resolved it through.
func (t *Timetable) liveAvailableByCategory(category SkillCategory, id SlotID) *Slot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := t.get(id)
	if s == nil || s.status != StatusAvailable || s.Category() != category {
		return nil
	}
	return s
}

func (t *Timetable) liveAvailableByProvider(providerID ProviderID, id SlotID) *Slot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := t.get(id)
	if s == nil || s.status != StatusAvailable || s.Provider != providerID {
		return nil
	}
	return s
}
