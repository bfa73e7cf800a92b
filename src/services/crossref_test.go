package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
)

func TestCrossReferenceCarriers(t *testing.T) {
	known := NewCarrierIDSet([]string{"MC123456", "dot98765"})

	claimed := []models.CarrierReference{
		{CarrierName: "Alpha Freight", CarrierID: "MC123456"},
		{CarrierName: "Beta Haul", CarrierID: "mc123456"}, // case-insensitive match
		{CarrierName: "Gamma Logistics", CarrierID: "DOT98765"},
		{CarrierName: "Delta Lines", CarrierID: "MC000001"},
		{CarrierName: "Weird Format", CarrierID: "MC-123456"}, // raw string match only, no digit normalization
	}

	got := CrossReferenceCarriers(claimed, known)

	assert.Len(t, got, len(claimed))
	assert.True(t, got[0].Verified)
	assert.True(t, got[1].Verified)
	assert.True(t, got[2].Verified)
	assert.False(t, got[3].Verified)
	assert.False(t, got[4].Verified, "dashed identifier must not match via normalization")
}

func TestCrossReferenceCarriersDoesNotMutateInput(t *testing.T) {
	known := NewCarrierIDSet([]string{"MC1"})
	claimed := []models.CarrierReference{
		{CarrierName: "X", CarrierID: "MC1", Verified: false},
		{CarrierName: "Y", CarrierID: "MC2", Verified: true},
	}

	got := CrossReferenceCarriers(claimed, known)

	assert.False(t, claimed[0].Verified)
	assert.True(t, claimed[1].Verified)
	assert.True(t, got[0].Verified)
	assert.False(t, got[1].Verified, "stale verified flag must be recomputed, not kept")
}

func TestCrossReferenceCarriersIdempotent(t *testing.T) {
	known := NewCarrierIDSet([]string{"MC77", "DOT88"})
	claimed := []models.CarrierReference{
		{CarrierID: "MC77"},
		{CarrierID: "DOT99"},
	}

	once := CrossReferenceCarriers(claimed, known)
	twice := CrossReferenceCarriers(once, known)

	assert.Equal(t, once, twice)
}

func TestCrossReferenceCarriersEmptyInputs(t *testing.T) {
	assert.Empty(t, CrossReferenceCarriers(nil, NewCarrierIDSet([]string{"MC1"})))

	got := CrossReferenceCarriers([]models.CarrierReference{{CarrierID: "MC1"}}, NewCarrierIDSet(nil))
	assert.False(t, got[0].Verified)
}

func TestNewCarrierIDSetSkipsEmpty(t *testing.T) {
	set := NewCarrierIDSet([]string{"", "MC5"})

	assert.False(t, set.Contains(""))
	assert.True(t, set.Contains("mc5"))
}
