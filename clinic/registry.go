/*
registry.go - Entity registry for providers and clients

PURPOSE:
  Holds the immutable identity and attributes of providers and clients and
  enforces the unique-ID invariants. The registry is one of the two owned,
  encapsulated containers the Engine composes (the other is the Timetable);
  no external component holds a mutable reference into its internals.

BEHAVIOR NOTES:
  - AddProvider silently ignores duplicates: the roster is fixed at setup
    time and re-registering an existing clinician is a no-op
  - AddClient fails with ErrDuplicateID on a colliding identity
  - RemoveClient does NOT cascade: existing bookings keep their client
    reference. Cancelling them is a caller decision, not a registry side
    effect.
  - Lookups return an explicit (value, ok) pair rather than an error, for
    use in composite validation chains

SEE ALSO:
  - engine.go: composes Registry + Timetable
*/
package clinic

import (
	"fmt"
	"sync"
)

// Registry owns the provider roster and client records.
type Registry struct {
	mu        sync.RWMutex
	providers []*Provider
	clients   []*Client
}

func NewRegistry() *Registry {
	return &Registry{}
}

// AddProvider registers a clinician. Duplicate IDs are silently ignored.
func (r *Registry) AddProvider(p *Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.providers {
		if existing.ID == p.ID {
			return
		}
	}
	r.providers = append(r.providers, p)
}

// AddClient registers a client. Fails with ErrDuplicateID when a client
// with that ID already exists.
func (r *Registry) AddClient(c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.clients {
		if existing.ID == c.ID {
			return fmt.Errorf("client %s: %w", c.ID, ErrDuplicateID)
		}
	}
	r.clients = append(r.clients, c)
	return nil
}

// RemoveClient removes the client with that ID if present; no-op if absent.
// Existing slot bookings referencing the client are left untouched.
func (r *Registry) RemoveClient(id ClientID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.clients {
		if c.ID == id {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return
		}
	}
}

// Provider looks up a clinician by ID.
func (r *Registry) Provider(id ProviderID) (*Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.providers {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Client looks up a client by ID.
func (r *Registry) Client(id ClientID) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Providers returns the roster in registration order.
func (r *Registry) Providers() []*Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Clients returns all registered clients in registration order.
func (r *Registry) Clients() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Client, len(r.clients))
	copy(out, r.clients)
	return out
}
