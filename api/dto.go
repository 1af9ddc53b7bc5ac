/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/bpc/clinic-engine/clinic"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ProviderDTO represents a provider in API responses.
type ProviderDTO struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Address   string         `json:"address,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Skills    []string       `json:"skills"`
	Offerings []TreatmentDTO `json:"offerings"`
}

// TreatmentDTO represents a treatment offering.
type TreatmentDTO struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price,omitempty"`
}

// ClientDTO represents a client in API responses.
type ClientDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// CreateClientRequest is the request to register a client.
type CreateClientRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// SlotDTO represents an appointment slot.
type SlotDTO struct {
	ID         string       `json:"id"`
	Start      string       `json:"start"`
	End        string       `json:"end"`
	ProviderID string       `json:"provider_id"`
	Treatment  TreatmentDTO `json:"treatment"`
	Status     string       `json:"status"`
	ClientID   string       `json:"client_id,omitempty"`
}

// CreateSlotRequest is the request to add a slot to the timetable. The
// treatment is referenced by name among the provider's offerings.
type CreateSlotRequest struct {
	ID         string `json:"id"`
	Start      string `json:"start"` // "2006-01-02 15:04"
	ProviderID string `json:"provider_id"`
	Treatment  string `json:"treatment"`
}

// BookByCategoryRequest books a slot out of a skill category's availability.
type BookByCategoryRequest struct {
	Category string `json:"category"`
	SlotID   string `json:"slot_id"`
	ClientID string `json:"client_id"`
}

// BookByProviderRequest books a slot out of one provider's availability.
type BookByProviderRequest struct {
	ProviderID string `json:"provider_id"`
	SlotID     string `json:"slot_id"`
	ClientID   string `json:"client_id"`
}

// CancelRequest cancels a booking on behalf of its client.
type CancelRequest struct {
	ClientID string `json:"client_id"`
}

// RescheduleRequest moves a booking between two slots.
type RescheduleRequest struct {
	OldSlotID string `json:"old_slot_id"`
	NewSlotID string `json:"new_slot_id"`
	ClientID  string `json:"client_id"`
}

// SetTimeRequest pins the harness clock to a fixed instant.
type SetTimeRequest struct {
	Now string `json:"now"` // "2006-01-02 15:04"
}

// EventDTO represents one audit log entry.
type EventDTO struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	SlotID   string `json:"slot_id"`
	ClientID string `json:"client_id,omitempty"`
	At       string `json:"at"`
	Details  string `json:"details,omitempty"`
}

// ReportDTO is the JSON rendering of the reporting view.
type ReportDTO struct {
	Schedules []ProviderScheduleDTO `json:"schedules"`
	Ranking   []AttendanceDTO       `json:"ranking"`
	Summary   StatusSummaryDTO      `json:"summary"`
}

// ProviderScheduleDTO is one provider's slice of the timetable.
type ProviderScheduleDTO struct {
	Provider ProviderDTO `json:"provider"`
	Slots    []SlotDTO   `json:"slots"`
}

// AttendanceDTO ranks one provider by attended visits.
type AttendanceDTO struct {
	ProviderID   string `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	Attended     int    `json:"attended"`
	Revenue      string `json:"revenue"`
}

// StatusSummaryDTO holds the global per-status counts.
type StatusSummaryDTO struct {
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Booked    int    `json:"booked"`
	Attended  int    `json:"attended"`
	Cancelled int    `json:"cancelled"`
	Warning   string `json:"warning,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toTreatmentDTO(t clinic.Treatment) TreatmentDTO {
	dto := TreatmentDTO{Name: t.Name, Category: string(t.Category)}
	if !t.Price.IsZero() {
		dto.Price = t.Price.StringFixed(2)
	}
	return dto
}

func toProviderDTO(p *clinic.Provider) ProviderDTO {
	skills := p.Skills()
	dto := ProviderDTO{
		ID:      string(p.ID),
		Name:    p.Name,
		Address: p.Address,
		Phone:   p.Phone,
		Skills:  make([]string, len(skills)),
	}
	for i, s := range skills {
		dto.Skills[i] = string(s)
	}
	for _, t := range p.Offerings() {
		dto.Offerings = append(dto.Offerings, toTreatmentDTO(t))
	}
	return dto
}

func toSlotDTO(s *clinic.Slot) SlotDTO {
	return SlotDTO{
		ID:         string(s.ID),
		Start:      s.Start.String(),
		End:        s.End().String(),
		ProviderID: string(s.Provider),
		Treatment:  toTreatmentDTO(s.Treatment),
		Status:     string(s.Status()),
		ClientID:   string(s.Client()),
	}
}

func toSlotDTOs(slots []*clinic.Slot) []SlotDTO {
	dtos := make([]SlotDTO, len(slots))
	for i, s := range slots {
		dtos[i] = toSlotDTO(s)
	}
	return dtos
}

func toEventDTO(ev clinic.Event) EventDTO {
	return EventDTO{
		ID:       ev.ID,
		Type:     string(ev.Type),
		SlotID:   string(ev.SlotID),
		ClientID: string(ev.ClientID),
		At:       ev.At.String(),
		Details:  ev.Details,
	}
}

func toReportDTO(rep *clinic.Report) ReportDTO {
	dto := ReportDTO{
		Summary: StatusSummaryDTO{
			Total:     rep.Summary.Total,
			Available: rep.Summary.Available,
			Booked:    rep.Summary.Booked,
			Attended:  rep.Summary.Attended,
			Cancelled: rep.Summary.Cancelled,
		},
	}
	if !rep.Summary.Consistent {
		dto.Summary.Warning = "status counts do not add up to total slots"
	}
	for _, sched := range rep.Schedules {
		dto.Schedules = append(dto.Schedules, ProviderScheduleDTO{
			Provider: toProviderDTO(sched.Provider),
			Slots:    toSlotDTOs(sched.Slots),
		})
	}
	for _, rank := range rep.Ranking {
		dto.Ranking = append(dto.Ranking, AttendanceDTO{
			ProviderID:   string(rank.Provider.ID),
			ProviderName: rank.Provider.Name,
			Attended:     rank.Attended,
			Revenue:      rank.Revenue.StringFixed(2),
		})
	}
	return dto
}
