/*
engine.go - Scheduling engine: the sole mutation surface for slot state

PURPOSE:
  Composes the Registry and the Timetable and implements the cross-entity
  operations: the two lookup/booking paths (by skill category, by specific
  provider), cancellation, attendance marking, the atomic-in-effect
  reschedule, and a client's upcoming-bookings view.

TEMPORAL MODEL:
  Every operation with a temporal rule receives "now" as an argument. The
  engine never reads a wall clock; the surrounding harness owns clock
  acquisition. This keeps every operation deterministic and replayable.

CONCURRENCY:
  The booking paths and reschedule are read-then-conditional-write
  sequences. A single engine-level mutex serializes all mutating
  operations so the no-double-booking invariant holds even with multiple
  callers. Reads of a slot mid-operation always observe a fully applied
  transition or none at all.

RESCHEDULE ATOMICITY:
  Reschedule validates every precondition - ownership, source status,
  target existence, target status, category match, and the no-past-booking
  rule on the target - before touching either slot. On any failure exactly
  zero slots change; on success exactly two do.

SEE ALSO:
  - slot.go: the transitions this engine drives
  - report.go: read-only views invoked independently of the engine
*/
package clinic

import (
	"sort"
	"sync"
)

// Engine is the scheduling engine. All slot state changes flow through it.
type Engine struct {
	mu        sync.Mutex
	registry  *Registry
	timetable *Timetable
}

func NewEngine(registry *Registry, timetable *Timetable) *Engine {
	return &Engine{registry: registry, timetable: timetable}
}

// Registry returns the entity registry the engine composes.
func (e *Engine) Registry() *Registry { return e.registry }

// Timetable returns the slot ledger the engine composes.
func (e *Engine) Timetable() *Timetable { return e.timetable }

// =============================================================================
// BOOKING PATHS
// =============================================================================

// BookByCategory books the slot with the given ID out of the available set
// for a skill category. Fails with NotFoundError when no available slot in
// that category has the ID.
func (e *Engine) BookByCategory(category SkillCategory, slotID SlotID, client ClientID, now TimePoint) (*Slot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot := e.timetable.liveAvailableByCategory(category, slotID)
	if slot == nil {
		return nil, &NotFoundError{Kind: "slot", ID: string(slotID),
			Hint: "not available for category " + string(category)}
	}
	if err := slot.book(client, now); err != nil {
		return nil, err
	}
	return slot.clone(), nil
}

// BookByProvider books the slot with the given ID out of a specific
// provider's available set. Fails with NotFoundError when the slot is
// absent from that set, or - defensively - when the resolved slot's
// provider does not match.
func (e *Engine) BookByProvider(providerID ProviderID, slotID SlotID, client ClientID, now TimePoint) (*Slot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot := e.timetable.liveAvailableByProvider(providerID, slotID)
	if slot == nil {
		return nil, &NotFoundError{Kind: "slot", ID: string(slotID),
			Hint: "not available for provider " + string(providerID)}
	}
	if slot.Provider != providerID {
		return nil, &NotFoundError{Kind: "slot", ID: string(slotID),
			Hint: "does not belong to provider " + string(providerID)}
	}
	if err := slot.book(client, now); err != nil {
		return nil, err
	}
	return slot.clone(), nil
}

// =============================================================================
// LIFECYCLE OPERATIONS
// =============================================================================

// Cancel cancels a booked slot on behalf of the client holding it. A slot
// booked by a different client is reported as not found for this client; a
// slot that is not booked fails the transition with ErrInvalidState.
func (e *Engine) Cancel(slotID SlotID, client ClientID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot := e.timetable.live(slotID)
	if slot == nil || (slot.client != "" && slot.client != client) {
		return &NotFoundError{Kind: "slot", ID: string(slotID),
			Hint: "not booked by client " + string(client)}
	}
	return slot.cancel()
}

// Attend marks a booked slot as attended.
func (e *Engine) Attend(slotID SlotID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot := e.timetable.live(slotID)
	if slot == nil {
		return &NotFoundError{Kind: "slot", ID: string(slotID)}
	}
	return slot.attend()
}

// Reschedule atomically moves a client's booking from one slot to another
// of the same skill category. All preconditions are validated before any
// mutation; either both slots change or neither does.
func (e *Engine) Reschedule(oldSlotID, newSlotID SlotID, client ClientID, now TimePoint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	oldSlot := e.timetable.live(oldSlotID)
	if oldSlot == nil || (oldSlot.client != "" && oldSlot.client != client) {
		return &NotFoundError{Kind: "slot", ID: string(oldSlotID),
			Hint: "not booked by client " + string(client)}
	}
	if oldSlot.status != StatusBooked {
		return &InvalidTransitionError{Slot: oldSlotID, From: oldSlot.status, Op: "reschedule"}
	}

	newSlot := e.timetable.live(newSlotID)
	if newSlot == nil {
		return &NotFoundError{Kind: "slot", ID: string(newSlotID)}
	}
	if newSlot.status != StatusAvailable {
		return &InvalidTransitionError{Slot: newSlotID, From: newSlot.status, Op: "reschedule"}
	}
	if newSlot.Category() != oldSlot.Category() {
		return &CategoryMismatchError{
			Old: oldSlotID, New: newSlotID,
			Want: oldSlot.Category(), Got: newSlot.Category(),
		}
	}
	// The target must also pass the booking transition's own checks before
	// anything mutates; a past-start target would otherwise strand the old
	// slot half-moved.
	if err := newSlot.bookable(now); err != nil {
		return err
	}

	// Mutation phase. The preconditions above guarantee these cannot fail.
	if err := oldSlot.cancel(); err != nil {
		return err
	}
	if err := oldSlot.resetForReschedule(); err != nil {
		return err
	}
	return newSlot.book(client, now)
}

// ClientAppointments returns copies of all slots booked or attended by the
// client, ascending by start instant. The sort is stable: ties keep ledger
// insertion order.
func (e *Engine) ClientAppointments(clientID ClientID) []*Slot {
	all := e.timetable.All()
	var out []*Slot
	for _, s := range all {
		if s.client == clientID && (s.status == StatusBooked || s.status == StatusAttended) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
