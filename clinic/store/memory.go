// Package store provides EventLog implementations.
package store

import (
	"context"
	"sync"

	"github.com/bpc/clinic-engine/clinic"
)

// =============================================================================
// MEMORY LOG - In-memory implementation (for testing/demo)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	events []clinic.Event
}

func NewMemory() *Memory {
	return &Memory{}
}

// Append adds a single event. Append-only.
func (m *Memory) Append(_ context.Context, ev clinic.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *Memory) Events(_ context.Context) ([]clinic.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]clinic.Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *Memory) BySlot(_ context.Context, id clinic.SlotID) ([]clinic.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []clinic.Event
	for _, ev := range m.events {
		if ev.SlotID == id {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *Memory) ByClient(_ context.Context, id clinic.ClientID) ([]clinic.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []clinic.Event
	for _, ev := range m.events {
		if ev.ClientID == id {
			out = append(out, ev)
		}
	}
	return out, nil
}
