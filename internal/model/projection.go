package model

import "github.com/shopspring/decimal"

// YearlyProjection is one projection year (1-based, no gaps). The projection
// stage fills the revenue and expense side; the cash-flow aggregation stage
// fills debt service, reserve and net cash flow. After aggregation the record
// is never mutated.
type YearlyProjection struct {
	Year       int     `json:"year"`
	RampFactor float64 `json:"ramp_factor"`

	Revenue       map[string]decimal.Decimal `json:"revenue"`
	Expenses      map[string]decimal.Decimal `json:"expenses"`
	TotalRevenue  decimal.Decimal            `json:"total_revenue"`
	TotalExpenses decimal.Decimal            `json:"total_expenses"`

	// NOI excludes debt service and capital reserves by definition.
	NOI decimal.Decimal `json:"noi"`

	DebtService decimal.Decimal `json:"debt_service"`
	Reserve     decimal.Decimal `json:"reserve"`
	NetCashFlow decimal.Decimal `json:"net_cash_flow"`

	// DSCR is NOI over annual debt service; zero when there is no loan.
	DSCR float64 `json:"dscr,omitempty"`
}

// LoanYear is one year of the amortization schedule.
type LoanYear struct {
	Year             int             `json:"year"`
	BeginningBalance decimal.Decimal `json:"beginning_balance"`
	Interest         decimal.Decimal `json:"interest"`
	Principal        decimal.Decimal `json:"principal"`
	EndingBalance    decimal.Decimal `json:"ending_balance"`
}

// LoanSchedule is derived once from the assumptions at year 0 and never
// mutated afterward.
type LoanSchedule struct {
	Principal     decimal.Decimal `json:"principal"`
	AnnualRate    float64         `json:"annual_rate"`
	AnnualPayment decimal.Decimal `json:"annual_payment"`
	Years         []LoanYear      `json:"years"`
}

// BalanceAt returns the loan balance at the end of the given year. Year 0 is
// the full principal; years past the schedule end are zero.
func (s LoanSchedule) BalanceAt(year int) decimal.Decimal {
	if year <= 0 {
		return s.Principal
	}
	if year > len(s.Years) {
		return decimal.Zero
	}
	return s.Years[year-1].EndingBalance
}

// DebtServiceAt returns the annual debt service for the given year, zero once
// the loan has amortized.
func (s LoanSchedule) DebtServiceAt(year int) decimal.Decimal {
	if year <= 0 || year > len(s.Years) {
		return decimal.Zero
	}
	y := s.Years[year-1]
	return y.Interest.Add(y.Principal)
}

// CashFlowSeries is the signed series indexed 0..N. Index 0 is the negative
// initial equity outflow; index N additionally carries exit net proceeds.
type CashFlowSeries []decimal.Decimal

// Floats converts the series for the float64 IRR domain.
func (c CashFlowSeries) Floats() []float64 {
	out := make([]float64, len(c))
	for i, d := range c {
		out[i] = d.InexactFloat64()
	}
	return out
}
