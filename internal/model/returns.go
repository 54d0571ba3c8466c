package model

import "github.com/shopspring/decimal"

// NonConvergence identifies why the IRR solver failed to converge. Both modes
// are valid result states, never silently replaced with a default rate.
type NonConvergence string

const (
	// NonConvergenceZeroDerivative: the NPV derivative vanished at an
	// iterate and Newton-Raphson cannot continue.
	NonConvergenceZeroDerivative NonConvergence = "zero_derivative"
	// NonConvergenceMaxIterations: the iteration budget ran out before the
	// NPV tolerance was met.
	NonConvergenceMaxIterations NonConvergence = "max_iterations"
)

// ReturnsResult holds the solved return metrics for one pipeline run.
// IRR is nil exactly when NonConvergence is set.
type ReturnsResult struct {
	IRR            *float64       `json:"irr"`
	NonConvergence NonConvergence `json:"non_convergence,omitempty"`
	Iterations     int            `json:"iterations,omitempty"`

	EquityMultiple float64 `json:"equity_multiple"`
	CashOnCash     float64 `json:"cash_on_cash"`
	CashOnCashYear int     `json:"cash_on_cash_year"`

	YieldOnCostYear1      float64 `json:"yield_on_cost_year1"`
	YieldOnCostStabilized float64 `json:"yield_on_cost_stabilized"`

	EquityInvested  decimal.Decimal `json:"equity_invested"`
	ExitGrossValue  decimal.Decimal `json:"exit_gross_value"`
	ExitNetProceeds decimal.Decimal `json:"exit_net_proceeds"`
}

// Converged reports whether the IRR solve succeeded.
func (r ReturnsResult) Converged() bool { return r.IRR != nil }

// RunOutput is the JSON-serializable result of one full pipeline run.
// Projections and loan schedule are present even when the IRR solve did not
// converge, so partial output remains available.
type RunOutput struct {
	Projections  []YearlyProjection `json:"projections"`
	LoanSchedule LoanSchedule       `json:"loan_schedule"`
	CashFlows    CashFlowSeries     `json:"cash_flows"`
	Returns      ReturnsResult      `json:"returns"`
	Sensitivity  *SensitivityResult `json:"sensitivity,omitempty"`
}
