/*
history.go - Append-only booking event log

PURPOSE:
  Records every slot lifecycle change as an immutable event so the harness
  can answer "how did this slot end up cancelled?" without replaying a
  session. The log is an audit trail, not state: the Timetable remains the
  single source of truth for current slot status.

OWNERSHIP:
  The engine itself does not write events - the core performs no I/O and
  keeps its no-partial-state guarantee trivially. The surrounding harness
  appends an event after each successful engine call.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: no update, no delete
  2. IMMUTABLE: once written, events are never modified
  3. ORDERED: readers observe events in append order

IMPLEMENTATIONS:
  - clinic/store/memory.go: in-memory, for tests and the text demo
  - store/sqlite/sqlite.go: SQLite-backed, for the HTTP server
*/
package clinic

import "context"

// EventType tags what happened to a slot.
type EventType string

const (
	EventSlotAdded   EventType = "slot_added"
	EventBooked      EventType = "booked"
	EventCancelled   EventType = "cancelled"
	EventAttended    EventType = "attended"
	EventRescheduled EventType = "rescheduled"
)

// Event is one immutable audit record.
type Event struct {
	ID       string
	Type     EventType
	SlotID   SlotID
	ClientID ClientID  // empty for events without a client party
	At       TimePoint // the harness-supplied current time of the operation
	Details  string
}

// EventLog stores booking events. Append-only.
type EventLog interface {
	// Append adds an event. This is the only write operation.
	Append(ctx context.Context, ev Event) error

	// Events returns all events in append order.
	Events(ctx context.Context) ([]Event, error)

	// BySlot returns the events touching one slot, in append order.
	BySlot(ctx context.Context, id SlotID) ([]Event, error)

	// ByClient returns the events involving one client, in append order.
	ByClient(ctx context.Context, id ClientID) ([]Event, error)
}
