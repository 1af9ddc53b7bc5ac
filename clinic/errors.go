/*
errors.go - Centralized error types for the scheduling engine

PURPOSE:
  All error kinds in one place for consistency and discoverability. Every
  violation is reported at the point it is detected and propagates
  unmodified to the caller; the engine performs no retries and no automatic
  recovery.

ERROR CATEGORIES:
  1. Identity errors   - duplicate or missing entities/slots
  2. Transition errors - operation not permitted from the current status
  3. Temporal errors   - no-past-booking rule violations
  4. Ledger errors     - timetable insertion conflicts

USAGE:
  Callers match with errors.Is / errors.As:

    if errors.Is(err, clinic.ErrNotFound) { ... }

    var conflict *clinic.SlotConflictError
    if errors.As(err, &conflict) { ... }

SEE ALSO:
  - slot.go: transition and temporal errors
  - timetable.go: insertion conflicts
  - engine.go: association (wrong client / wrong provider) errors
*/
package clinic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDuplicateID is returned when entity creation collides with an
	// existing identity.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrNotFound is returned when a referenced entity or slot does not
	// exist, or does not match the expected association (wrong provider,
	// wrong owning client).
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned when an operation is attempted from a
	// status that does not permit the requested transition.
	ErrInvalidState = errors.New("invalid state for transition")

	// ErrPastStart is returned when booking would violate the
	// no-past-booking rule.
	ErrPastStart = errors.New("slot start is in the past")

	// ErrCategoryMismatch is returned when a reschedule target slot's skill
	// category differs from the source slot's.
	ErrCategoryMismatch = errors.New("skill category mismatch")

	// ErrSlotConflict is returned when a timetable insertion would create a
	// duplicate provider/start pair.
	ErrSlotConflict = errors.New("provider already has a slot at that time")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// SlotConflictError reports a provider double-booking attempt at insertion.
type SlotConflictError struct {
	Provider ProviderID
	Start    TimePoint
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("provider %s already has a slot at %s", e.Provider, e.Start)
}

func (e *SlotConflictError) Unwrap() error { return ErrSlotConflict }

// InvalidTransitionError reports a rejected state machine transition.
type InvalidTransitionError struct {
	Slot SlotID
	From SlotStatus
	Op   string // "book", "cancel", "attend", "reset"
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s slot %s in status %q", e.Op, e.Slot, e.From)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidState }

// PastBookingError reports a booking attempt on a slot that already started.
type PastBookingError struct {
	Slot  SlotID
	Start TimePoint
	Now   TimePoint
}

func (e *PastBookingError) Error() string {
	return fmt.Sprintf("cannot book slot %s: starts %s, current time %s", e.Slot, e.Start, e.Now)
}

func (e *PastBookingError) Unwrap() error { return ErrPastStart }

// CategoryMismatchError reports a reschedule whose target slot requires a
// different skill category than the source.
type CategoryMismatchError struct {
	Old  SlotID
	New  SlotID
	Want SkillCategory
	Got  SkillCategory
}

func (e *CategoryMismatchError) Error() string {
	return fmt.Sprintf("cannot reschedule %s to %s: requires %s, target is %s",
		e.Old, e.New, e.Want, e.Got)
}

func (e *CategoryMismatchError) Unwrap() error { return ErrCategoryMismatch }

// NotFoundError reports a missing or mismatched reference.
type NotFoundError struct {
	Kind string // "slot", "client", "provider"
	ID   string
	Hint string // optional association detail
}

func (e *NotFoundError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s %s not found: %s", e.Kind, e.ID, e.Hint)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing or mismatched
// reference.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClientError returns true if the error is due to invalid caller input
// rather than an internal failure. Useful for HTTP status mapping.
func IsClientError(err error) bool {
	return errors.Is(err, ErrDuplicateID) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrPastStart) ||
		errors.Is(err, ErrCategoryMismatch) ||
		errors.Is(err, ErrSlotConflict)
}
