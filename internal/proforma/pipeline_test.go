package proforma

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/proforma-cli/internal/model"
)

func TestEngineRun_FullPipeline(t *testing.T) {
	base := validHotelAssumptions()
	base.ExpenseLines = testExpenseLines()
	engine := NewEngine(SolverConfig{})

	out, errs := engine.Run(base)
	require.Empty(t, errs)
	require.NotNil(t, out)

	require.Len(t, out.Projections, 5)
	require.Len(t, out.CashFlows, 6)
	assert.True(t, out.LoanSchedule.Principal.Equal(decimal.NewFromInt(24_000_000)))

	require.True(t, out.Returns.Converged(), "non-convergence: %s", out.Returns.NonConvergence)
	assert.Empty(t, out.Returns.NonConvergence)
	assert.Greater(t, out.Returns.EquityMultiple, 0.0)
	assert.True(t, out.Returns.EquityInvested.Equal(decimal.NewFromInt(16_000_000)))

	// Exit value capitalizes the hold-year NOI.
	terminalNOI := out.Projections[4].NOI
	wantGross := terminalNOI.Div(decimal.NewFromFloat(0.07)).Round(2)
	assert.True(t, out.Returns.ExitGrossValue.Equal(wantGross))

	// Net proceeds subtract selling costs and the year-5 loan balance.
	wantNet := wantGross.Mul(decimal.NewFromFloat(0.975)).Round(2).Sub(out.LoanSchedule.BalanceAt(5))
	assert.True(t, out.Returns.ExitNetProceeds.Equal(wantNet))
}

func TestEngineRun_ValidationShortCircuits(t *testing.T) {
	a := validHotelAssumptions()
	a.Units = 0
	a.TotalCost = -5

	out, errs := NewEngine(SolverConfig{}).Run(a)
	assert.Nil(t, out)
	require.Len(t, errs, 2)
}

func TestEngineRun_Deterministic(t *testing.T) {
	base := validHotelAssumptions()
	base.ExpenseLines = testExpenseLines()
	engine := NewEngine(SolverConfig{})

	first, errs := engine.Run(base)
	require.Empty(t, errs)
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, errs := engine.Run(base)
		require.Empty(t, errs)
		againJSON, err := json.Marshal(again)
		require.NoError(t, err)
		assert.JSONEq(t, string(firstJSON), string(againJSON))
	}
}

func TestEngineRun_CashOnCashDefaultsToStabilizedYear(t *testing.T) {
	base := validHotelAssumptions()
	base.ExpenseLines = testExpenseLines()

	out, errs := NewEngine(SolverConfig{}).Run(base)
	require.Empty(t, errs)

	// 18-month ramp stabilizes in year 3.
	assert.Equal(t, 3, out.Returns.CashOnCashYear)
	want := CashOnCash(out.Projections[2].NetCashFlow, out.Returns.EquityInvested)
	assert.InDelta(t, want, out.Returns.CashOnCash, 1e-12)
}

func TestEngineRun_YieldOnCost(t *testing.T) {
	base := validHotelAssumptions()
	base.ExpenseLines = testExpenseLines()

	out, errs := NewEngine(SolverConfig{}).Run(base)
	require.Empty(t, errs)

	totalCost := decimal.NewFromInt(40_000_000)
	assert.InDelta(t, out.Projections[0].NOI.Div(totalCost).InexactFloat64(), out.Returns.YieldOnCostYear1, 1e-12)
	assert.InDelta(t, out.Projections[2].NOI.Div(totalCost).InexactFloat64(), out.Returns.YieldOnCostStabilized, 1e-12)
	// Ramp-up makes year 1 trail the stabilized yield.
	assert.Less(t, out.Returns.YieldOnCostYear1, out.Returns.YieldOnCostStabilized)
}

func TestEngineRun_ExternalCashFlows(t *testing.T) {
	a := model.Assumptions{
		PropertyName:      "externally projected",
		ExternalCashFlows: []float64{-100_000, 10_000, 10_000, 120_000},
		ExternalPeriods:   3,
	}

	out, errs := NewEngine(SolverConfig{}).Run(a)
	require.Empty(t, errs)
	require.NotNil(t, out)

	assert.Empty(t, out.Projections)
	require.Len(t, out.CashFlows, 4)
	require.True(t, out.Returns.Converged())
	assert.InDelta(t, 0.1293, *out.Returns.IRR, 0.002)
	assert.True(t, out.Returns.EquityInvested.Equal(decimal.NewFromInt(100_000)))
}

func TestEngineRun_NonConvergenceKeepsPartialOutput(t *testing.T) {
	base := validHotelAssumptions()
	base.ExpenseLines = testExpenseLines()
	// One iteration at an impossible tolerance cannot converge.
	engine := NewEngine(SolverConfig{Guess: 0.10, Tolerance: 1e-300, MaxIterations: 1})

	out, errs := engine.Run(base)
	require.Empty(t, errs)
	require.NotNil(t, out)

	assert.Nil(t, out.Returns.IRR)
	assert.Equal(t, model.NonConvergenceMaxIterations, out.Returns.NonConvergence)
	// Projections and cash flows survive the failed solve.
	assert.Len(t, out.Projections, 5)
	assert.Len(t, out.CashFlows, 6)

	// The nullable IRR serializes as an explicit null, never a default 0.
	data, err := json.Marshal(out.Returns)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"irr":null`)
}

func TestNewEngine_DefaultsApplied(t *testing.T) {
	e := NewEngine(SolverConfig{})
	assert.Equal(t, DefaultSolverConfig(), e.solver)

	e = NewEngine(SolverConfig{Guess: 0.05})
	assert.Equal(t, 0.05, e.solver.Guess)
	assert.Equal(t, 1000, e.solver.MaxIterations)
}
