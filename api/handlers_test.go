package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpc/clinic-engine/api"
	"github.com/bpc/clinic-engine/clinic"
	"github.com/bpc/clinic-engine/clinic/store"
)

// =============================================================================
// TEST SERVER
// =============================================================================

// newTestServer returns a router wired to a fresh engine, an in-memory event
// log, and the demo dataset with the clock pinned to the demo instant.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	engine := clinic.NewEngine(clinic.NewRegistry(), clinic.NewTimetable())
	router := api.NewRouter(api.NewHandler(engine, store.NewMemory()))

	rec := doRequest(t, router, http.MethodPost, "/api/demo/load", nil)
	require.Equal(t, http.StatusOK, rec.Code, "demo load failed: %s", rec.Body.String())
	return router
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// =============================================================================
// DEMO DATASET
// =============================================================================

func TestLoadDemo_SeedsAndPinsClock(t *testing.T) {
	engine := clinic.NewEngine(clinic.NewRegistry(), clinic.NewTimetable())
	router := api.NewRouter(api.NewHandler(engine, store.NewMemory()))

	rec := doRequest(t, router, http.MethodPost, "/api/demo/load", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Len(t, engine.Registry().Providers(), 4)
	assert.Len(t, engine.Registry().Clients(), 10)
	assert.Equal(t, 21, engine.Timetable().Len())

	timeRec := doRequest(t, router, http.MethodGet, "/api/time", nil)
	body := decode[map[string]string](t, timeRec)
	assert.Equal(t, api.DemoTime.String(), body["now"])
}

// =============================================================================
// CLIENTS
// =============================================================================

func TestCreateClient(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/clients", map[string]string{
		"id": "PT11", "name": "Kelly Pink", "address": "111 Rose St", "phone": "555-0211",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	client := decode[api.ClientDTO](t, rec)
	assert.Equal(t, "PT11", client.ID)
	assert.Equal(t, "Kelly Pink", client.Name)
}

func TestCreateClient_DuplicateConflicts(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/clients", map[string]string{
		"id": "PT1", "name": "Duplicate",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateClient_MissingFields(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/clients", map[string]string{"id": "PT12"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteClient(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodDelete, "/api/clients/PT10", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/clients/PT10", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// SLOTS
// =============================================================================

func TestListAvailableSlots_RequiresCategory(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodGet, "/api/slots/available", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAvailableSlots_ByCategory(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodGet, "/api/slots/available?category=Osteopathy", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	slots := decode[[]api.SlotDTO](t, rec)
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.Equal(t, "Osteopathy", s.Treatment.Category)
		assert.Equal(t, "available", s.Status)
	}
}

func TestCreateSlot(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/slots", map[string]string{
		"id": "A22", "start": "2025-04-21 09:00", "provider_id": "P1", "treatment": "Massage",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	slot := decode[api.SlotDTO](t, rec)
	assert.Equal(t, "A22", slot.ID)
	assert.Equal(t, "2025-04-21 10:00", slot.End)
	assert.Equal(t, "45.00", slot.Treatment.Price)
}

func TestCreateSlot_ProviderConflict(t *testing.T) {
	// A1 already occupies P1 at 24 Mar 09:00.
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/slots", map[string]string{
		"id": "A22", "start": "2025-03-24 09:00", "provider_id": "P1", "treatment": "Massage",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateSlot_UnknownTreatment(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/slots", map[string]string{
		"id": "A22", "start": "2025-04-21 09:00", "provider_id": "P1", "treatment": "Surgery",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// BOOKING FLOWS
// =============================================================================

func TestBookByCategory(t *testing.T) {
	// GIVEN: The demo timetable with A1 available
	// WHEN: PT1 books A1 through the Physiotherapy category
	// THEN: The response carries the booked slot attached to PT1

	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/bookings/category", map[string]string{
		"category": "Physiotherapy", "slot_id": "A1", "client_id": "PT1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	slot := decode[api.SlotDTO](t, rec)
	assert.Equal(t, "A1", slot.ID)
	assert.Equal(t, "booked", slot.Status)
	assert.Equal(t, "PT1", slot.ClientID)
}

func TestBookByCategory_AlreadyBookedNotFound(t *testing.T) {
	router := newTestServer(t)
	rec := doRequest(t, router, http.MethodPost, "/api/bookings/category", map[string]string{
		"category": "Physiotherapy", "slot_id": "A1", "client_id": "PT1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/bookings/category", map[string]string{
		"category": "Physiotherapy", "slot_id": "A1", "client_id": "PT2",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookByCategory_UnknownClient(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/bookings/category", map[string]string{
		"category": "Physiotherapy", "slot_id": "A1", "client_id": "PT99",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookByProvider(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/bookings/provider", map[string]string{
		"provider_id": "P2", "slot_id": "A3", "client_id": "PT2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	slot := decode[api.SlotDTO](t, rec)
	assert.Equal(t, "A3", slot.ID)
	assert.Equal(t, "P2", slot.ProviderID)
	assert.Equal(t, "PT2", slot.ClientID)
}

func TestCancelSlot(t *testing.T) {
	router := newTestServer(t)
	rec := doRequest(t, router, http.MethodPost, "/api/bookings/category", map[string]string{
		"category": "Physiotherapy", "slot_id": "A1", "client_id": "PT1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/slots/A1/cancel", map[string]string{"client_id": "PT1"})
	require.Equal(t, http.StatusOK, rec.Code)

	slot := decode[api.SlotDTO](t, rec)
	assert.Equal(t, "cancelled", slot.Status)
	assert.Empty(t, slot.ClientID)
}

func TestCancelSlot_WrongClient(t *testing.T) {
	router := newTestServer(t)
	rec := doRequest(t, router, http.MethodPost, "/api/bookings/category", map[string]string{
		"category": "Physiotherapy", "slot_id": "A1", "client_id": "PT1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/slots/A1/cancel", map[string]string{"client_id": "PT2"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelSlot_UnbookedConflicts(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/slots/A1/cancel", map[string]string{"client_id": "PT1"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAttendSlot(t *testing.T) {
	router := newTestServer(t)
	rec := doRequest(t, router, http.MethodPost, "/api/bookings/category", map[string]string{
		"category": "Physiotherapy", "slot_id": "A1", "client_id": "PT1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/slots/A1/attend", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	slot := decode[api.SlotDTO](t, rec)
	assert.Equal(t, "attended", slot.Status)
	assert.Equal(t, "PT1", slot.ClientID)
}

func TestReschedule(t *testing.T) {
	// GIVEN: PT1 holds A1; A6 is a free slot of the same category
	// WHEN: PT1 moves the booking to A6
	// THEN: The response carries A6 booked by PT1 and A1 is available again

	router := newTestServer(t)
	rec := doRequest(t, router, http.MethodPost, "/api/bookings/category", map[string]string{
		"category": "Physiotherapy", "slot_id": "A1", "client_id": "PT1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/bookings/reschedule", map[string]string{
		"old_slot_id": "A1", "new_slot_id": "A6", "client_id": "PT1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	slot := decode[api.SlotDTO](t, rec)
	assert.Equal(t, "A6", slot.ID)
	assert.Equal(t, "booked", slot.Status)
	assert.Equal(t, "PT1", slot.ClientID)

	avail := doRequest(t, router, http.MethodGet, "/api/slots/available?category=Physiotherapy", nil)
	require.Equal(t, http.StatusOK, avail.Code)
	var ids []string
	for _, s := range decode[[]api.SlotDTO](t, avail) {
		ids = append(ids, s.ID)
	}
	assert.NotContains(t, ids, "A6", "A6 should no longer be available")
	assert.Contains(t, ids, "A1", "A1 should be back in the available set")
}

func TestReschedule_CategoryMismatchConflicts(t *testing.T) {
	// A1 is Physiotherapy, A3 is Osteopathy.
	router := newTestServer(t)
	rec := doRequest(t, router, http.MethodPost, "/api/bookings/category", map[string]string{
		"category": "Physiotherapy", "slot_id": "A1", "client_id": "PT1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/bookings/reschedule", map[string]string{
		"old_slot_id": "A1", "new_slot_id": "A3", "client_id": "PT1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

// =============================================================================
// CLOCK
// =============================================================================

func TestSetTime_AffectsTemporalChecks(t *testing.T) {
	// GIVEN: The clock pinned past the whole demo timetable
	// WHEN: Booking any demo slot
	// THEN: The no-past-booking rule rejects it

	router := newTestServer(t)
	rec := doRequest(t, router, http.MethodPost, "/api/time", map[string]string{"now": "2025-06-01 00:00"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/bookings/category", map[string]string{
		"category": "Physiotherapy", "slot_id": "A1", "client_id": "PT1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSetTime_InvalidFormat(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/time", map[string]string{"now": "yesterday"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// AUDIT TRAIL
// =============================================================================

func TestSlotEvents_RecordLifecycle(t *testing.T) {
	router := newTestServer(t)
	rec := doRequest(t, router, http.MethodPost, "/api/bookings/category", map[string]string{
		"category": "Physiotherapy", "slot_id": "A1", "client_id": "PT1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, router, http.MethodPost, "/api/slots/A1/cancel", map[string]string{"client_id": "PT1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/slots/A1/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	events := decode[[]api.EventDTO](t, rec)
	require.Len(t, events, 2)
	assert.Equal(t, "booked", events[0].Type)
	assert.Equal(t, "cancelled", events[1].Type)
	assert.Equal(t, api.DemoTime.String(), events[0].At)
}

// =============================================================================
// REPORT
// =============================================================================

func TestGetReport(t *testing.T) {
	router := newTestServer(t)
	rec := doRequest(t, router, http.MethodPost, "/api/bookings/category", map[string]string{
		"category": "Physiotherapy", "slot_id": "A1", "client_id": "PT1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, router, http.MethodPost, "/api/slots/A1/attend", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rep := decode[api.ReportDTO](t, rec)
	assert.Equal(t, 21, rep.Summary.Total)
	assert.Equal(t, 1, rep.Summary.Attended)
	assert.Equal(t, 20, rep.Summary.Available)
	assert.Empty(t, rep.Summary.Warning)

	require.NotEmpty(t, rep.Ranking)
	assert.Equal(t, "P1", rep.Ranking[0].ProviderID)
	assert.Equal(t, 1, rep.Ranking[0].Attended)
	assert.Equal(t, "45.00", rep.Ranking[0].Revenue)

	// All four demo providers hold slots, so all four schedules render.
	assert.Len(t, rep.Schedules, 4)
}
