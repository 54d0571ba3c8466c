package proforma

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/proforma-cli/internal/model"
)

func TestSolveIRR_ThreeYearHold(t *testing.T) {
	flows := []float64{-100_000, 10_000, 10_000, 120_000}

	irr, iterations, failure := SolveIRR(flows, DefaultSolverConfig())
	require.Empty(t, failure)
	assert.Greater(t, iterations, 0)

	// Converges just under 13% for this series.
	assert.Greater(t, irr, 0.08)
	assert.Less(t, irr, 0.14)
	assert.InDelta(t, 0.1293, irr, 0.002)

	// Closed-form check: NPV at the solved rate is ~zero.
	assert.InDelta(t, 0, npv(flows, irr), 1e-3*100_000)
}

func TestSolveIRR_RoundedToBasisPoints(t *testing.T) {
	irr, _, failure := SolveIRR([]float64{-100_000, 10_000, 10_000, 120_000}, DefaultSolverConfig())
	require.Empty(t, failure)
	assert.Equal(t, math.Round(irr*1e4)/1e4, irr)
}

func TestSolveIRR_TotalLoss(t *testing.T) {
	// No distributions after year 0: total loss, not a solver failure.
	irr, _, failure := SolveIRR([]float64{-100_000, 0, 0, 0}, DefaultSolverConfig())
	require.Empty(t, failure)
	assert.InDelta(t, -1.0, irr, 1e-9)
}

func TestSolveIRR_ZeroDerivative(t *testing.T) {
	// A single-entry series has a constant NPV: the derivative is zero at
	// the first iterate and the failure must be surfaced, never defaulted.
	_, _, failure := SolveIRR([]float64{100_000}, DefaultSolverConfig())
	assert.Equal(t, model.NonConvergenceZeroDerivative, failure)
}

func TestSolveIRR_MaxIterations(t *testing.T) {
	// One iteration is never enough to land within a 1e-12 tolerance here.
	cfg := SolverConfig{Guess: 0.10, Tolerance: 1e-12, MaxIterations: 1}
	_, iterations, failure := SolveIRR([]float64{-100_000, 10_000, 10_000, 120_000}, cfg)
	assert.Equal(t, model.NonConvergenceMaxIterations, failure)
	assert.Equal(t, 1, iterations)
}

func TestSolveIRR_EvenMoneyIsZero(t *testing.T) {
	irr, _, failure := SolveIRR([]float64{-100_000, 100_000}, DefaultSolverConfig())
	require.Empty(t, failure)
	assert.InDelta(t, 0, irr, 1e-4)
}

func TestSolveIRR_Deterministic(t *testing.T) {
	flows := []float64{-250_000, 30_000, 32_000, 34_000, 310_000}
	first, _, failure := SolveIRR(flows, DefaultSolverConfig())
	require.Empty(t, failure)
	for i := 0; i < 5; i++ {
		again, _, f := SolveIRR(flows, DefaultSolverConfig())
		require.Empty(t, f)
		assert.Equal(t, first, again)
	}
}

func TestEquityMultiple(t *testing.T) {
	tests := []struct {
		name  string
		flows []float64
		want  float64
	}{
		{"double", []float64{-100_000, 50_000, 50_000, 100_000}, 2.0},
		{"total loss", []float64{-100_000, 0, 0, 0}, 0},
		{"ignores interim negatives", []float64{-100_000, -20_000, 60_000, 90_000}, 1.5},
		{"no equity outflow", []float64{0, 10_000}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EquityMultiple(tt.flows), 1e-12)
		})
	}
}

func TestCashOnCash(t *testing.T) {
	coc := CashOnCash(decimal.NewFromInt(85_000), decimal.NewFromInt(1_000_000))
	assert.InDelta(t, 0.085, coc, 1e-12)

	// Negative operating year reports a negative cash-on-cash.
	coc = CashOnCash(decimal.NewFromInt(-12_500), decimal.NewFromInt(1_000_000))
	assert.InDelta(t, -0.0125, coc, 1e-12)

	assert.Zero(t, CashOnCash(decimal.NewFromInt(10_000), decimal.Zero))
}
