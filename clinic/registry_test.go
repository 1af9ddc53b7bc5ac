package clinic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpc/clinic-engine/clinic"
)

// =============================================================================
// PROVIDER ROSTER TESTS
// =============================================================================

func TestRegistry_AddProvider_DuplicateSilentlyIgnored(t *testing.T) {
	// GIVEN: A registered provider
	// WHEN: Registering another provider with the same ID
	// THEN: The roster keeps the original and stays at one entry

	reg := clinic.NewRegistry()
	reg.AddProvider(clinic.NewProvider("P1", "Dr. Smith", "1 Test St", "555-0000"))
	reg.AddProvider(clinic.NewProvider("P1", "Dr. Impostor", "2 Test St", "555-0001"))

	assert.Len(t, reg.Providers(), 1)
	p, ok := reg.Provider("P1")
	require.True(t, ok)
	assert.Equal(t, "Dr. Smith", p.Name)
}

func TestRegistry_ProviderLookup_NotFoundSignal(t *testing.T) {
	reg := clinic.NewRegistry()

	p, ok := reg.Provider("P999")
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestProvider_AddOffering_RequiresMatchingSkill(t *testing.T) {
	// GIVEN: A provider qualified only in Physiotherapy
	// WHEN: Attaching offerings for held and unheld categories
	// THEN: Only the matching offering is attached

	p := clinic.NewProvider("P1", "Dr. Smith", "1 Test St", "555-0000")
	p.AddSkill("Physiotherapy")

	assert.True(t, p.AddOffering(clinic.NewTreatment("Massage", "Physiotherapy")))
	assert.False(t, p.AddOffering(clinic.NewTreatment("Acupuncture", "Osteopathy")))

	require.Len(t, p.Offerings(), 1)
	assert.Equal(t, "Massage", p.Offerings()[0].Name)
}

func TestProvider_AddSkill_DuplicateIgnored(t *testing.T) {
	p := clinic.NewProvider("P1", "Dr. Smith", "1 Test St", "555-0000")
	p.AddSkill("Physiotherapy")
	p.AddSkill("Physiotherapy")

	assert.Len(t, p.Skills(), 1)
}

// =============================================================================
// CLIENT REGISTRY TESTS
// =============================================================================

func TestRegistry_AddClient_DuplicateRejected(t *testing.T) {
	// GIVEN: A registered client PT1
	// WHEN: Registering another client with the same ID
	// THEN: Registration fails with ErrDuplicateID and the original survives

	reg := clinic.NewRegistry()
	require.NoError(t, reg.AddClient(clinic.NewClient("PT1", "Alice Brown", "1 Test St", "555-0000")))

	err := reg.AddClient(clinic.NewClient("PT1", "Duplicate", "2 Test St", "555-0001"))
	assert.ErrorIs(t, err, clinic.ErrDuplicateID)

	c, ok := reg.Client("PT1")
	require.True(t, ok)
	assert.Equal(t, "Alice Brown", c.Name)
	assert.Len(t, reg.Clients(), 1)
}

func TestRegistry_RemoveClient(t *testing.T) {
	reg := clinic.NewRegistry()
	require.NoError(t, reg.AddClient(clinic.NewClient("PT1", "Alice Brown", "1 Test St", "555-0000")))

	reg.RemoveClient("PT1")
	_, ok := reg.Client("PT1")
	assert.False(t, ok)
}

func TestRegistry_RemoveClient_AbsentIsNoOp(t *testing.T) {
	reg := clinic.NewRegistry()
	require.NoError(t, reg.AddClient(clinic.NewClient("PT1", "Alice Brown", "1 Test St", "555-0000")))

	reg.RemoveClient("PT999")
	assert.Len(t, reg.Clients(), 1)
}
