/*
Package clinic provides the core appointment scheduling engine for a
single-clinic practice.

PURPOSE:
  This package contains the domain types and operations for managing a
  roster of providers, a registry of clients, and a timetable of bookable
  one-hour appointment slots. The slot lifecycle state machine
  (available → booked → attended/cancelled) and the operations that drive
  it (book, cancel, attend, reschedule) live here.

KEY CONCEPTS IN THIS FILE (types.go):
  - Provider: a clinician qualified in one or more skill categories
  - Treatment: an offering tagged with the skill category it requires
  - Client: the person who may hold a booking on a slot
  - Slot: a single bookable one-hour appointment instance
  - SlotStatus: closed enumeration of the four lifecycle states

DESIGN PRINCIPLES:
  1. Determinism: the engine never reads a system clock; "now" is always
     an explicitly passed value
  2. Encapsulation: the Timetable owns all Slot instances; slot state is
     mutated only through the Engine's transition operations
  3. Type Safety: strong typing for IDs prevents mixing provider, client
     and slot identifiers
  4. Precision: treatment prices use decimal.Decimal to avoid
     floating-point errors in revenue rollups

SEE ALSO:
  - slot.go: Slot state machine transitions
  - timetable.go: Slot ownership and filtered views
  - engine.go: Cross-entity scheduling operations
  - report.go: Read-only aggregation views
*/
package clinic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ProviderID string
type ClientID string
type SlotID string

// SkillCategory is the qualification area required to perform a treatment,
// e.g. "Physiotherapy", "Osteopathy", "Rehabilitation".
type SkillCategory string

// =============================================================================
// TREATMENT - An offering tagged with its required skill category
// =============================================================================

type Treatment struct {
	Name     string
	Category SkillCategory
	Price    decimal.Decimal
}

func NewTreatment(name string, category SkillCategory) Treatment {
	return Treatment{Name: name, Category: category}
}

func NewPricedTreatment(name string, category SkillCategory, price string) Treatment {
	p, err := decimal.NewFromString(price)
	if err != nil {
		p = decimal.Zero
	}
	return Treatment{Name: name, Category: category, Price: p}
}

// =============================================================================
// PROVIDER - A clinician on the fixed roster
// =============================================================================

// Provider holds identity, contact fields, the set of skill categories the
// clinician is qualified in, and an ordered list of treatment offerings.
// Providers are created at setup time and immutable thereafter; there is no
// removal operation.
type Provider struct {
	ID      ProviderID
	Name    string
	Address string
	Phone   string

	skills    []SkillCategory
	offerings []Treatment
}

func NewProvider(id ProviderID, name, address, phone string) *Provider {
	return &Provider{ID: id, Name: name, Address: address, Phone: phone}
}

// AddSkill records a qualification. Duplicates are ignored.
func (p *Provider) AddSkill(category SkillCategory) {
	for _, s := range p.skills {
		if s == category {
			return
		}
	}
	p.skills = append(p.skills, category)
}

// HasSkill reports whether the provider holds the given qualification.
func (p *Provider) HasSkill(category SkillCategory) bool {
	for _, s := range p.skills {
		if s == category {
			return true
		}
	}
	return false
}

// AddOffering attaches a treatment offering. The offering is only accepted
// when the provider already holds the matching skill category; otherwise it
// is skipped and false is returned.
func (p *Provider) AddOffering(t Treatment) bool {
	if !p.HasSkill(t.Category) {
		return false
	}
	p.offerings = append(p.offerings, t)
	return true
}

// Skills returns a copy of the provider's qualifications.
func (p *Provider) Skills() []SkillCategory {
	out := make([]SkillCategory, len(p.skills))
	copy(out, p.skills)
	return out
}

// Offerings returns a copy of the provider's treatment offerings, in the
// order they were attached.
func (p *Provider) Offerings() []Treatment {
	out := make([]Treatment, len(p.offerings))
	copy(out, p.offerings)
	return out
}

// Offering returns the i-th treatment offering.
func (p *Provider) Offering(i int) Treatment {
	return p.offerings[i]
}

// =============================================================================
// CLIENT - The person who may hold a booking
// =============================================================================

type Client struct {
	ID      ClientID
	Name    string
	Address string
	Phone   string
}

func NewClient(id ClientID, name, address, phone string) *Client {
	return &Client{ID: id, Name: name, Address: address, Phone: phone}
}

// =============================================================================
// SLOT STATUS - Closed enumeration of lifecycle states
// =============================================================================

type SlotStatus string

const (
	StatusAvailable SlotStatus = "available"
	StatusBooked    SlotStatus = "booked"
	StatusAttended  SlotStatus = "attended"
	StatusCancelled SlotStatus = "cancelled"
)

// =============================================================================
// SLOT - A single bookable one-hour appointment instance
// =============================================================================

// Slot references exactly one provider and one treatment offering (which
// fixes the skill category for the slot's lifetime). A client reference is
// present only while the slot is booked or attended.
//
// Slots are owned by the Timetable; all state mutation goes through the
// transition methods in slot.go, invoked by the Engine.
type Slot struct {
	ID        SlotID
	Start     TimePoint
	Provider  ProviderID
	Treatment Treatment

	status SlotStatus
	client ClientID // empty unless booked/attended
}

// NewSlot creates an available slot. The end of the span is implied:
// every slot is a fixed one-hour appointment.
func NewSlot(id SlotID, start TimePoint, provider ProviderID, treatment Treatment) *Slot {
	return &Slot{
		ID:        id,
		Start:     start,
		Provider:  provider,
		Treatment: treatment,
		status:    StatusAvailable,
	}
}

// End returns the end of the slot's one-hour span.
func (s *Slot) End() TimePoint { return s.Start.AddHours(1) }

// Status returns the slot's current lifecycle state.
func (s *Slot) Status() SlotStatus { return s.status }

// Client returns the booking client's ID, or empty when unattached.
func (s *Slot) Client() ClientID { return s.client }

// Category returns the skill category fixed by the slot's treatment.
func (s *Slot) Category() SkillCategory { return s.Treatment.Category }

// clone returns a detached copy for read-only views.
func (s *Slot) clone() *Slot {
	c := *s
	return &c
}
