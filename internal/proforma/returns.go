package proforma

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/proforma-cli/internal/model"
)

// SolverConfig tunes the Newton-Raphson IRR solve. The defaults match the
// documented convention: 10% initial guess, absolute NPV tolerance of 1e-4
// currency units, 1000 iterations.
type SolverConfig struct {
	Guess         float64 `yaml:"guess" mapstructure:"guess"`
	Tolerance     float64 `yaml:"tolerance" mapstructure:"tolerance"`
	MaxIterations int     `yaml:"max_iterations" mapstructure:"max_iterations"`
}

// DefaultSolverConfig returns the standard solver parameters.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{Guess: 0.10, Tolerance: 1e-4, MaxIterations: 1000}
}

// npv evaluates f(r) = sum CF_t / (1+r)^t.
func npv(flows []float64, r float64) float64 {
	var sum float64
	for t, cf := range flows {
		sum += cf / math.Pow(1+r, float64(t))
	}
	return sum
}

// npvDerivative evaluates f'(r) = sum -t*CF_t / (1+r)^(t+1).
func npvDerivative(flows []float64, r float64) float64 {
	var sum float64
	for t, cf := range flows {
		if t == 0 {
			continue
		}
		sum -= float64(t) * cf / math.Pow(1+r, float64(t+1))
	}
	return sum
}

// SolveIRR finds the discount rate at which the NPV of the series is zero,
// via Newton-Raphson iteration. A converged rate is rounded to 4 decimal
// places (basis-point reporting precision).
//
// Non-convergence is a result, not an error: the reason (zero derivative at
// an iterate, or iteration budget exhausted) is returned explicitly and the
// rate is never silently defaulted.
func SolveIRR(flows []float64, cfg SolverConfig) (irr float64, iterations int, failure model.NonConvergence) {
	// A series with no distributions after the initial outflow has no NPV
	// root at all; report it as a total loss, not a solver failure.
	if len(flows) > 1 && flows[0] < 0 && allZeroAfter(flows, 0) {
		return -1, 0, ""
	}

	r := cfg.Guess
	for i := 1; i <= cfg.MaxIterations; i++ {
		f := npv(flows, r)
		if math.Abs(f) < cfg.Tolerance {
			return math.Round(r*1e4) / 1e4, i, ""
		}
		d := npvDerivative(flows, r)
		if d == 0 {
			return 0, i, model.NonConvergenceZeroDerivative
		}
		r -= f / d
	}
	return 0, cfg.MaxIterations, model.NonConvergenceMaxIterations
}

func allZeroAfter(flows []float64, idx int) bool {
	for _, cf := range flows[idx+1:] {
		if cf != 0 {
			return false
		}
	}
	return true
}

// EquityMultiple is the sum of all positive cash flows over the absolute
// initial equity outflow. Zero when there is no initial outflow.
func EquityMultiple(flows []float64) float64 {
	if len(flows) == 0 || flows[0] >= 0 {
		return 0
	}
	var distributions float64
	for _, cf := range flows {
		if cf > 0 {
			distributions += cf
		}
	}
	return distributions / math.Abs(flows[0])
}

// CashOnCash is the designated year's net cash flow over the equity
// invested.
func CashOnCash(netCashFlow, equityInvested decimal.Decimal) float64 {
	if equityInvested.Sign() <= 0 {
		return 0
	}
	return netCashFlow.Div(equityInvested).InexactFloat64()
}
