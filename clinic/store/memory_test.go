package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpc/clinic-engine/clinic"
	"github.com/bpc/clinic-engine/clinic/store"
)

func TestMemory_AppendAndReadBack(t *testing.T) {
	// GIVEN: Three appended events
	// WHEN: Reading the full log
	// THEN: All events come back in append order

	log := store.NewMemory()
	ctx := context.Background()
	at := clinic.NewTimePoint(2025, time.March, 23, 0)

	require.NoError(t, log.Append(ctx, clinic.Event{ID: "ev-1", Type: clinic.EventBooked, SlotID: "A1", ClientID: "PT1", At: at}))
	require.NoError(t, log.Append(ctx, clinic.Event{ID: "ev-2", Type: clinic.EventBooked, SlotID: "A2", ClientID: "PT2", At: at}))
	require.NoError(t, log.Append(ctx, clinic.Event{ID: "ev-3", Type: clinic.EventCancelled, SlotID: "A1", ClientID: "PT1", At: at}))

	events, err := log.Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "ev-1", events[0].ID)
	assert.Equal(t, "ev-2", events[1].ID)
	assert.Equal(t, "ev-3", events[2].ID)
}

func TestMemory_BySlot(t *testing.T) {
	log := store.NewMemory()
	ctx := context.Background()
	at := clinic.NewTimePoint(2025, time.March, 23, 0)

	require.NoError(t, log.Append(ctx, clinic.Event{ID: "ev-1", Type: clinic.EventBooked, SlotID: "A1", ClientID: "PT1", At: at}))
	require.NoError(t, log.Append(ctx, clinic.Event{ID: "ev-2", Type: clinic.EventBooked, SlotID: "A2", ClientID: "PT2", At: at}))
	require.NoError(t, log.Append(ctx, clinic.Event{ID: "ev-3", Type: clinic.EventCancelled, SlotID: "A1", ClientID: "PT1", At: at}))

	events, err := log.BySlot(ctx, "A1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, clinic.EventBooked, events[0].Type)
	assert.Equal(t, clinic.EventCancelled, events[1].Type)
}

func TestMemory_ByClient(t *testing.T) {
	log := store.NewMemory()
	ctx := context.Background()
	at := clinic.NewTimePoint(2025, time.March, 23, 0)

	require.NoError(t, log.Append(ctx, clinic.Event{ID: "ev-1", Type: clinic.EventBooked, SlotID: "A1", ClientID: "PT1", At: at}))
	require.NoError(t, log.Append(ctx, clinic.Event{ID: "ev-2", Type: clinic.EventAttended, SlotID: "A2", At: at}))

	events, err := log.ByClient(ctx, "PT1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev-1", events[0].ID)

	events, err = log.ByClient(ctx, "PT99")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestMemory_EventsReturnsCopy(t *testing.T) {
	log := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, clinic.Event{ID: "ev-1", Type: clinic.EventBooked, SlotID: "A1"}))

	first, err := log.Events(ctx)
	require.NoError(t, err)
	first[0].ID = "mutated"

	second, err := log.Events(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ev-1", second[0].ID)
}
