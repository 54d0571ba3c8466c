package proforma

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExitValue(t *testing.T) {
	gross, net := ExitValue(
		decimal.NewFromInt(1_350_000), // terminal NOI
		0.07,                          // exit cap rate
		0.025,                         // selling costs
		decimal.NewFromInt(10_300_000),
	)

	// gross = 1,350,000 / 0.07
	assert.InDelta(t, 19_285_714.29, gross.InexactFloat64(), 0.01)
	// net = gross x 0.975 - 10,300,000
	assert.InDelta(t, 19_285_714.29*0.975-10_300_000, net.InexactFloat64(), 0.01)
}

func TestExitValue_NoSellingCosts(t *testing.T) {
	gross, net := ExitValue(decimal.NewFromInt(700_000), 0.07, 0, decimal.Zero)
	assert.True(t, gross.Equal(decimal.NewFromInt(10_000_000)))
	assert.True(t, net.Equal(gross))
}

func TestExitValue_UnderwaterExit(t *testing.T) {
	// Remaining debt above the net sale value yields negative proceeds,
	// which must propagate rather than being clamped.
	_, net := ExitValue(decimal.NewFromInt(500_000), 0.10, 0.03, decimal.NewFromInt(6_000_000))
	assert.True(t, net.Sign() < 0, "net = %s", net)
	assert.InDelta(t, 5_000_000*0.97-6_000_000, net.InexactFloat64(), 0.01)
}
