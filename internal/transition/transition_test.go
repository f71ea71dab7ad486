package transition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCampaignGraph(t *testing.T) {
	assert.True(t, Campaign.Can("ACTIVE", "PAUSED"))
	assert.True(t, Campaign.Can("PAUSED", "ACTIVE"))
	assert.True(t, Campaign.Can("SUCCESS", "COMPLETED"))

	// The edit dialog used to allow this; it must be rejected now.
	assert.False(t, Campaign.Can("COMPLETED", "ACTIVE"))
	assert.False(t, Campaign.Can("CANCELLED", "ACTIVE"))
}

func TestDonationGraph(t *testing.T) {
	assert.True(t, Donation.Can("PENDING", "COMPLETED"))
	assert.True(t, Donation.Can("COMPLETED", "VERIFIED"))
	assert.True(t, Donation.Can("VERIFIED", "REFUNDED"))
	assert.True(t, Donation.Can("FAILED", "PENDING"))

	assert.False(t, Donation.Can("REFUNDED", "PENDING"))
	assert.False(t, Donation.Can("PENDING", "VERIFIED"), "verification requires completion first")
}

func TestMaterialIsOneWay(t *testing.T) {
	assert.True(t, Material.Can("PENDING", "COLLECTED"))
	assert.True(t, Material.Can("PENDING", "REJECTED"))

	for _, terminal := range []string{"COLLECTED", "REJECTED"} {
		for _, to := range []string{"PENDING", "COLLECTED", "REJECTED"} {
			assert.False(t, Material.Can(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestSelfAndUnknown(t *testing.T) {
	for _, g := range []Graph{Campaign, Donation, Material, Compliance} {
		for from := range g {
			assert.False(t, g.Can(from, from), "self-transition %s", from)
		}
	}
	assert.False(t, Campaign.Can("ACTIVE", "ARCHIVED"))
	assert.False(t, Campaign.Can("ARCHIVED", "ACTIVE"))
}

func TestNextIsACopy(t *testing.T) {
	next := Campaign.Next("ACTIVE")
	assert.NotEmpty(t, next)
	next[0] = "TAMPERED"
	assert.NotContains(t, Campaign.Next("ACTIVE"), "TAMPERED")
}

func TestForEntity(t *testing.T) {
	assert.NotNil(t, ForEntity("campaign"))
	assert.NotNil(t, ForEntity("compliance"))
	assert.Nil(t, ForEntity("receipt"))
}
