// Package model defines the data types exchanged between pipeline stages:
// assumptions in, projections, loan schedule, cash flows and returns out.
// Monetary amounts are decimals; rates and ratios are plain float64.
package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields serialize as JSON numbers, not strings. The API
	// contract promises numbers-as-numbers to downstream consumers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ExpenseBasis selects how an expense line is computed each year.
type ExpenseBasis string

const (
	// ExpenseBasisRevenueRatio computes the line as a fixed ratio of a
	// correlated revenue line (or of total revenue when no ref is given).
	ExpenseBasisRevenueRatio ExpenseBasis = "revenue_ratio"
	// ExpenseBasisPerUnit computes the line as an annual per-unit amount
	// compounded at the expense growth rate.
	ExpenseBasisPerUnit ExpenseBasis = "per_unit"
)

// RevenueLine configures one revenue line item.
type RevenueLine struct {
	Name string `json:"name"`
	// PerUnitNight lines are rate x occupied unit-nights; otherwise Amount
	// is a flat annual fee.
	PerUnitNight bool    `json:"per_unit_night"`
	Amount       float64 `json:"amount"`
	// Growth overrides the global revenue growth rate when set.
	Growth *float64 `json:"growth,omitempty"`
	// Ramped lines scale with the utilization ramp; fixed-fee lines do not.
	Ramped bool `json:"ramped"`
}

// ExpenseLine configures one operating expense line item.
type ExpenseLine struct {
	Name  string       `json:"name"`
	Basis ExpenseBasis `json:"basis"`
	// Ratio of the referenced revenue line, for revenue_ratio lines.
	Ratio float64 `json:"ratio,omitempty"`
	// RevenueRef names the revenue line the ratio applies to. Empty means
	// total revenue.
	RevenueRef string `json:"revenue_ref,omitempty"`
	// PerUnit is the year-1 annual amount per unit, for per_unit lines.
	PerUnit float64 `json:"per_unit,omitempty"`
}

// Assumptions holds all model inputs for one pipeline run. It is treated as
// an immutable value: stages read it, none mutate it. A run is a pure
// function of its Assumptions.
type Assumptions struct {
	PropertyName string `json:"property_name,omitempty"`

	// Property and operations.
	Units               int     `json:"units"`
	StartingRate        float64 `json:"starting_rate"`
	RevenueGrowth       float64 `json:"revenue_growth"`
	ExpenseGrowth       float64 `json:"expense_growth"`
	StabilizedOccupancy float64 `json:"stabilized_occupancy"`
	RampMonths          int     `json:"ramp_months"`

	// Line items. When empty, a single ramped per-unit-night line at
	// StartingRate is assumed for revenue and no expense lines.
	RevenueLines []RevenueLine `json:"revenue_lines,omitempty"`
	ExpenseLines []ExpenseLine `json:"expense_lines,omitempty"`

	// Capitalization.
	TotalCost    float64 `json:"total_cost"`
	LoanToCost   float64 `json:"loan_to_cost"`
	InterestRate float64 `json:"interest_rate"`
	AmortYears   int     `json:"amortization_years"`

	// Hold and exit.
	HoldYears        int     `json:"hold_years"`
	ExitCapRate      float64 `json:"exit_cap_rate"`
	SellingCostRatio float64 `json:"selling_cost_ratio"`
	ReserveRatio     float64 `json:"reserve_ratio"`

	// CashOnCashYear designates the reporting year for cash-on-cash.
	// Zero means the first fully stabilized year (capped at hold).
	CashOnCashYear int `json:"cash_on_cash_year,omitempty"`

	// ExternalCashFlows supports IRR-only invocations: a signed series
	// indexed 0..ExternalPeriods supplied by an outside projection. When
	// present the projection stages are skipped entirely.
	ExternalCashFlows []float64 `json:"external_cash_flows,omitempty"`
	ExternalPeriods   int       `json:"external_periods,omitempty"`
}

// ExternalOnly reports whether this run solves returns on an externally
// supplied cash-flow series instead of projecting one.
func (a Assumptions) ExternalOnly() bool {
	return len(a.ExternalCashFlows) > 0
}

// LoanPrincipal returns loan-to-cost times total cost as a decimal amount.
func (a Assumptions) LoanPrincipal() decimal.Decimal {
	return decimal.NewFromFloat(a.TotalCost).Mul(decimal.NewFromFloat(a.LoanToCost)).Round(2)
}

// EquityInvested returns total cost minus loan principal.
func (a Assumptions) EquityInvested() decimal.Decimal {
	return decimal.NewFromFloat(a.TotalCost).Sub(a.LoanPrincipal())
}
