/*
slot.go - Slot lifecycle state machine

PURPOSE:
  Implements the four-state lifecycle every slot moves through:

    available ──book──▶ booked ──attend──▶ attended   (terminal)
                          │
                        cancel
                          ▼
                      cancelled                       (terminal)

  A fifth, internal-only transition (resetForReschedule) moves a booked or
  cancelled slot back to available. It exists solely so Reschedule can free
  the source slot; it is never exposed as a standalone operation.

INVARIANTS:
  - A client reference is present exactly while status is booked/attended
    (attend keeps the reference for reporting; cancel clears it)
  - Booking a slot whose start is strictly before "now" is rejected
    regardless of status (no booking into the past)
  - Illegal transitions are rejected with InvalidTransitionError and leave
    the slot untouched

SEE ALSO:
  - engine.go: the only component that invokes these transitions
*/
package clinic

// book transitions available → booked and attaches the client.
// The temporal check runs first: a past start fails even on a slot whose
// status would otherwise forbid booking.
func (s *Slot) book(client ClientID, now TimePoint) error {
	if s.Start.Before(now) {
		return &PastBookingError{Slot: s.ID, Start: s.Start, Now: now}
	}
	if s.status != StatusAvailable {
		return &InvalidTransitionError{Slot: s.ID, From: s.status, Op: "book"}
	}
	s.status = StatusBooked
	s.client = client
	return nil
}

// cancel transitions booked → cancelled and clears the client reference.
func (s *Slot) cancel() error {
	if s.status != StatusBooked {
		return &InvalidTransitionError{Slot: s.ID, From: s.status, Op: "cancel"}
	}
	s.status = StatusCancelled
	s.client = ""
	return nil
}

// attend transitions booked → attended. The client reference is kept so the
// attended visit still shows up in client and revenue views.
func (s *Slot) attend() error {
	if s.status != StatusBooked {
		return &InvalidTransitionError{Slot: s.ID, From: s.status, Op: "attend"}
	}
	s.status = StatusAttended
	return nil
}

// resetForReschedule moves a booked or cancelled slot back to available,
// clearing the client. Reschedule-only; never caller-facing.
func (s *Slot) resetForReschedule() error {
	if s.status != StatusBooked && s.status != StatusCancelled {
		return &InvalidTransitionError{Slot: s.ID, From: s.status, Op: "reset"}
	}
	s.status = StatusAvailable
	s.client = ""
	return nil
}

// bookable reports whether book would succeed right now. Used by Reschedule
// to validate every precondition before mutating anything.
func (s *Slot) bookable(now TimePoint) error {
	if s.Start.Before(now) {
		return &PastBookingError{Slot: s.ID, Start: s.Start, Now: now}
	}
	if s.status != StatusAvailable {
		return &InvalidTransitionError{Slot: s.ID, From: s.status, Op: "book"}
	}
	return nil
}
