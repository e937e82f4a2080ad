package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"watchcore/params"
)

func TestShouldResetOnMarketSwitch(t *testing.T) {
	rp := params.ResetParams{ResetsOnMarketSwitch: true}
	assert.True(t, ShouldResetInventory(0, false, 1000, rp))
}

func TestShouldResetOnInactivity(t *testing.T) {
	rp := params.ResetParams{ResetsOnInactivity: true, InactivityThresholdHours: 1}
	now := int64(2 * 3.6e6)
	assert.True(t, ShouldResetInventory(0, true, now, rp))
}

func TestShouldNotResetWhenRecentlyActive(t *testing.T) {
	rp := params.ResetParams{ResetsOnInactivity: true, InactivityThresholdHours: 1}
	assert.False(t, ShouldResetInventory(0, true, 1000, rp))
}
