/*
handlers.go - HTTP API handlers for the clinic scheduling engine

PURPOSE:
  Exposes the scheduling engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.
  This layer is a thin harness: it never mutates a slot directly, only
  through the engine's operations.

ENDPOINTS:
  Clients:
    GET    /api/clients                    List clients
    POST   /api/clients                    Register client
    DELETE /api/clients/{id}               Remove client
    GET    /api/clients/{id}/appointments  Upcoming bookings

  Providers:
    GET    /api/providers                  List the roster
    GET    /api/providers/{id}/slots       Available slots for a provider

  Slots:
    GET    /api/slots                      Full timetable snapshot
    GET    /api/slots/available?category=  Available slots by category
    POST   /api/slots                      Add a slot to the timetable
    POST   /api/slots/{id}/cancel          Cancel a booking
    POST   /api/slots/{id}/attend          Mark attended
    GET    /api/slots/{id}/events          Audit trail for a slot

  Bookings:
    POST   /api/bookings/category          Book by skill category
    POST   /api/bookings/provider          Book by provider
    POST   /api/bookings/reschedule        Move a booking between slots

  Misc:
    GET    /api/report                     Reporting view
    GET    /api/events                     Full audit trail
    GET    /api/time                       Current harness clock
    POST   /api/time                       Pin the clock to a fixed instant
    POST   /api/demo/load                  Seed the demo dataset

CLOCK OWNERSHIP:
  The engine never reads wall-clock time. This harness owns the clock: by
  default it passes time.Now() into temporal checks, and POST /api/time
  pins it to a fixed instant for deterministic walkthroughs.

ERROR HANDLING:
  Errors map to HTTP status by kind:
  - 400: malformed input
  - 404: missing or mismatched references (clinic.ErrNotFound)
  - 409: duplicate IDs, slot conflicts, illegal transitions, past
         bookings, category mismatches
  - 500: everything else

SEE ALSO:
  - dto.go: request/response data structures
  - demo.go: demo dataset loader
  - server.go: router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bpc/clinic-engine/clinic"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *clinic.Engine
	Events clinic.EventLog

	mu       sync.RWMutex
	fixedNow *clinic.TimePoint // pinned clock, nil = wall clock
}

// NewHandler creates a handler around an engine and an event log.
func NewHandler(engine *clinic.Engine, events clinic.EventLog) *Handler {
	return &Handler{Engine: engine, Events: events}
}

// now returns the harness clock: the pinned instant when set, otherwise the
// wall clock. The engine only ever sees the value returned here.
func (h *Handler) now() clinic.TimePoint {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.fixedNow != nil {
		return *h.fixedNow
	}
	return clinic.NewTimePointAt(time.Now())
}

func (h *Handler) setNow(tp clinic.TimePoint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fixedNow = &tp
}

// record appends an audit event. Append failures surface in the response
// details but do not undo the engine mutation, which already succeeded.
func (h *Handler) record(r *http.Request, evType clinic.EventType, slotID clinic.SlotID, clientID clinic.ClientID, details string) error {
	if h.Events == nil {
		return nil
	}
	return h.Events.Append(r.Context(), clinic.Event{
		ID:       fmt.Sprintf("ev-%d", time.Now().UnixNano()),
		Type:     evType,
		SlotID:   slotID,
		ClientID: clientID,
		At:       h.now(),
		Details:  details,
	})
}

// =============================================================================
// CLIENT HANDLERS
// =============================================================================

// ListClients returns all registered clients.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients := h.Engine.Registry().Clients()
	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = ClientDTO{ID: string(c.ID), Name: c.Name, Address: c.Address, Phone: c.Phone}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateClient registers a new client.
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	c := clinic.NewClient(clinic.ClientID(req.ID), req.Name, req.Address, req.Phone)
	if err := h.Engine.Registry().AddClient(c); err != nil {
		writeDomainError(w, "Failed to register client", err)
		return
	}

	writeJSON(w, http.StatusCreated, ClientDTO{ID: req.ID, Name: req.Name, Address: req.Address, Phone: req.Phone})
}

// DeleteClient removes a client. Existing bookings are left untouched.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := clinic.ClientID(chi.URLParam(r, "id"))
	if _, ok := h.Engine.Registry().Client(id); !ok {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}
	h.Engine.Registry().RemoveClient(id)
	w.WriteHeader(http.StatusNoContent)
}

// GetClientAppointments returns a client's booked and attended slots,
// ascending by start.
func (h *Handler) GetClientAppointments(w http.ResponseWriter, r *http.Request) {
	id := clinic.ClientID(chi.URLParam(r, "id"))
	if _, ok := h.Engine.Registry().Client(id); !ok {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toSlotDTOs(h.Engine.ClientAppointments(id)))
}

// =============================================================================
// PROVIDER HANDLERS
// =============================================================================

// ListProviders returns the roster.
func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers := h.Engine.Registry().Providers()
	dtos := make([]ProviderDTO, len(providers))
	for i, p := range providers {
		dtos[i] = toProviderDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetProviderSlots returns a provider's available slots.
func (h *Handler) GetProviderSlots(w http.ResponseWriter, r *http.Request) {
	id := clinic.ProviderID(chi.URLParam(r, "id"))
	if _, ok := h.Engine.Registry().Provider(id); !ok {
		writeError(w, http.StatusNotFound, "Provider not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toSlotDTOs(h.Engine.Timetable().AvailableByProvider(id)))
}

// =============================================================================
// SLOT HANDLERS
// =============================================================================

// ListSlots returns the full timetable snapshot.
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSlotDTOs(h.Engine.Timetable().All()))
}

// ListAvailableSlots returns available slots filtered by skill category.
func (h *Handler) ListAvailableSlots(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "category query parameter is required", nil)
		return
	}
	writeJSON(w, http.StatusOK, toSlotDTOs(h.Engine.Timetable().AvailableByCategory(clinic.SkillCategory(category))))
}

// CreateSlot adds a slot to the timetable.
func (h *Handler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := clinic.ParseTimePoint(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start format (use YYYY-MM-DD HH:MM)", err)
		return
	}

	provider, ok := h.Engine.Registry().Provider(clinic.ProviderID(req.ProviderID))
	if !ok {
		writeError(w, http.StatusNotFound, "Provider not found", nil)
		return
	}

	var treatment *clinic.Treatment
	for _, t := range provider.Offerings() {
		if t.Name == req.Treatment {
			t := t
			treatment = &t
			break
		}
	}
	if treatment == nil {
		writeError(w, http.StatusNotFound, "Provider does not offer that treatment", nil)
		return
	}

	slot := clinic.NewSlot(clinic.SlotID(req.ID), start, provider.ID, *treatment)
	if err := h.Engine.Timetable().AddSlot(slot); err != nil {
		writeDomainError(w, "Failed to add slot", err)
		return
	}
	if err := h.record(r, clinic.EventSlotAdded, slot.ID, "", req.Treatment); err != nil {
		writeError(w, http.StatusInternalServerError, "Slot added but event not recorded", err)
		return
	}

	writeJSON(w, http.StatusCreated, toSlotDTO(slot))
}

// CancelSlot cancels a booking on behalf of its client.
func (h *Handler) CancelSlot(w http.ResponseWriter, r *http.Request) {
	slotID := clinic.SlotID(chi.URLParam(r, "id"))

	var req CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	client, ok := h.Engine.Registry().Client(clinic.ClientID(req.ClientID))
	if !ok {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}

	if err := h.Engine.Cancel(slotID, client.ID); err != nil {
		writeDomainError(w, "Failed to cancel", err)
		return
	}
	if err := h.record(r, clinic.EventCancelled, slotID, client.ID, ""); err != nil {
		writeError(w, http.StatusInternalServerError, "Cancelled but event not recorded", err)
		return
	}

	slot, _ := h.Engine.Timetable().FindByID(slotID)
	writeJSON(w, http.StatusOK, toSlotDTO(slot))
}

// AttendSlot marks a booked slot as attended.
func (h *Handler) AttendSlot(w http.ResponseWriter, r *http.Request) {
	slotID := clinic.SlotID(chi.URLParam(r, "id"))

	if err := h.Engine.Attend(slotID); err != nil {
		writeDomainError(w, "Failed to mark attended", err)
		return
	}
	slot, _ := h.Engine.Timetable().FindByID(slotID)
	if err := h.record(r, clinic.EventAttended, slotID, slot.Client(), ""); err != nil {
		writeError(w, http.StatusInternalServerError, "Attended but event not recorded", err)
		return
	}

	writeJSON(w, http.StatusOK, toSlotDTO(slot))
}

// GetSlotEvents returns the audit trail for one slot.
func (h *Handler) GetSlotEvents(w http.ResponseWriter, r *http.Request) {
	slotID := clinic.SlotID(chi.URLParam(r, "id"))
	events, err := h.Events.BySlot(r.Context(), slotID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load events", err)
		return
	}
	dtos := make([]EventDTO, len(events))
	for i, ev := range events {
		dtos[i] = toEventDTO(ev)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// BOOKING HANDLERS
// =============================================================================

// BookByCategory books a slot out of a skill category's availability.
func (h *Handler) BookByCategory(w http.ResponseWriter, r *http.Request) {
	var req BookByCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	client, ok := h.Engine.Registry().Client(clinic.ClientID(req.ClientID))
	if !ok {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}

	slot, err := h.Engine.BookByCategory(clinic.SkillCategory(req.Category), clinic.SlotID(req.SlotID), client.ID, h.now())
	if err != nil {
		writeDomainError(w, "Failed to book", err)
		return
	}
	if err := h.record(r, clinic.EventBooked, slot.ID, client.ID, "by category "+req.Category); err != nil {
		writeError(w, http.StatusInternalServerError, "Booked but event not recorded", err)
		return
	}

	writeJSON(w, http.StatusOK, toSlotDTO(slot))
}

// BookByProvider books a slot out of one provider's availability.
func (h *Handler) BookByProvider(w http.ResponseWriter, r *http.Request) {
	var req BookByProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	client, ok := h.Engine.Registry().Client(clinic.ClientID(req.ClientID))
	if !ok {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}

	slot, err := h.Engine.BookByProvider(clinic.ProviderID(req.ProviderID), clinic.SlotID(req.SlotID), client.ID, h.now())
	if err != nil {
		writeDomainError(w, "Failed to book", err)
		return
	}
	if err := h.record(r, clinic.EventBooked, slot.ID, client.ID, "by provider "+req.ProviderID); err != nil {
		writeError(w, http.StatusInternalServerError, "Booked but event not recorded", err)
		return
	}

	writeJSON(w, http.StatusOK, toSlotDTO(slot))
}

// Reschedule moves a booking between two slots of the same category.
func (h *Handler) Reschedule(w http.ResponseWriter, r *http.Request) {
	var req RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	client, ok := h.Engine.Registry().Client(clinic.ClientID(req.ClientID))
	if !ok {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}

	oldID := clinic.SlotID(req.OldSlotID)
	newID := clinic.SlotID(req.NewSlotID)
	if err := h.Engine.Reschedule(oldID, newID, client.ID, h.now()); err != nil {
		writeDomainError(w, "Failed to reschedule", err)
		return
	}
	if err := h.record(r, clinic.EventRescheduled, newID, client.ID, "from "+req.OldSlotID); err != nil {
		writeError(w, http.StatusInternalServerError, "Rescheduled but event not recorded", err)
		return
	}

	newSlot, _ := h.Engine.Timetable().FindByID(newID)
	writeJSON(w, http.StatusOK, toSlotDTO(newSlot))
}

// =============================================================================
// REPORT / EVENTS / CLOCK
// =============================================================================

// GetReport returns the reporting view.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep := clinic.BuildReport(h.Engine.Registry(), h.Engine.Timetable())
	writeJSON(w, http.StatusOK, toReportDTO(rep))
}

// ListEvents returns the full audit trail.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.Events(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load events", err)
		return
	}
	dtos := make([]EventDTO, len(events))
	for i, ev := range events {
		dtos[i] = toEventDTO(ev)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetTime returns the harness clock.
func (h *Handler) GetTime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"now": h.now().String()})
}

// SetTime pins the harness clock to a fixed instant.
func (h *Handler) SetTime(w http.ResponseWriter, r *http.Request) {
	var req SetTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	tp, err := clinic.ParseTimePoint(req.Now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid now format (use YYYY-MM-DD HH:MM)", err)
		return
	}
	h.setNow(tp)
	writeJSON(w, http.StatusOK, map[string]string{"now": tp.String()})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, clinic.ErrNotFound):
		writeError(w, http.StatusNotFound, message, err)
	case clinic.IsClientError(err):
		writeError(w, http.StatusConflict, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
