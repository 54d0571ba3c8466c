// Package proforma implements the assumption-to-returns pipeline: ramp-up
// curve, revenue and expense projection, debt amortization, cash-flow
// aggregation, IRR solving and exit valuation. The pipeline is pure: no I/O,
// no shared state, deterministic for a given set of assumptions.
package proforma

import (
	"fmt"

	"github.com/ledgerline/proforma-cli/internal/model"
)

// Validated wraps assumptions that passed validation. Pipeline stages accept
// only this type, so an unvalidated Assumptions value cannot reach the math.
type Validated struct {
	model.Assumptions
}

// Validate checks structural and numeric validity of the assumptions and
// returns every violation found, never just the first. It is pure and
// performs no I/O.
func Validate(a model.Assumptions) (Validated, model.ValidationErrors) {
	var errs model.ValidationErrors

	add := func(field string, code model.ValidationCode, format string, args ...any) {
		errs = append(errs, model.ValidationError{
			Field:   field,
			Code:    code,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if a.ExternalOnly() {
		// IRR-only invocation: the series must match the stated period
		// count exactly, never silently truncated or padded.
		if a.ExternalPeriods < 1 {
			add("external_periods", model.ValidationNotPositive, "period count must be at least 1, got %d", a.ExternalPeriods)
		}
		if got, want := len(a.ExternalCashFlows), a.ExternalPeriods+1; a.ExternalPeriods >= 1 && got != want {
			add("external_cash_flows", model.ValidationLengthMismatch,
				"series has %d entries, want %d (years 0..%d)", got, want, a.ExternalPeriods)
		}
		if len(errs) > 0 {
			return Validated{}, errs
		}
		return Validated{Assumptions: a}, nil
	}

	if a.Units <= 0 {
		add("units", model.ValidationNotPositive, "unit count must be positive, got %d", a.Units)
	}
	if a.StartingRate <= 0 {
		add("starting_rate", model.ValidationNotPositive, "starting rate must be positive, got %g", a.StartingRate)
	}
	if a.TotalCost <= 0 {
		add("total_cost", model.ValidationNotPositive, "total cost must be positive, got %g", a.TotalCost)
	}
	if a.StabilizedOccupancy <= 0 || a.StabilizedOccupancy > 1 {
		add("stabilized_occupancy", model.ValidationOutOfRange, "stabilized occupancy must be in (0,1], got %g", a.StabilizedOccupancy)
	}
	if a.RampMonths < 0 {
		add("ramp_months", model.ValidationOutOfRange, "ramp months cannot be negative, got %d", a.RampMonths)
	}
	if a.RevenueGrowth < -1 || a.RevenueGrowth > 1 {
		add("revenue_growth", model.ValidationOutOfRange, "revenue growth must be in [-1,1], got %g", a.RevenueGrowth)
	}
	if a.ExpenseGrowth < -1 || a.ExpenseGrowth > 1 {
		add("expense_growth", model.ValidationOutOfRange, "expense growth must be in [-1,1], got %g", a.ExpenseGrowth)
	}
	if a.LoanToCost < 0 || a.LoanToCost > 1 {
		add("loan_to_cost", model.ValidationOutOfRange, "loan-to-cost must be in [0,1], got %g", a.LoanToCost)
	}
	if a.InterestRate < 0 || a.InterestRate > 1 {
		add("interest_rate", model.ValidationOutOfRange, "interest rate must be in [0,1], got %g", a.InterestRate)
	}
	if a.LoanToCost > 0 && a.AmortYears < 1 {
		add("amortization_years", model.ValidationNotPositive, "amortization term must be a positive integer when leveraged, got %d", a.AmortYears)
	}
	if a.HoldYears < 1 {
		add("hold_years", model.ValidationNotPositive, "hold period must be at least 1 year, got %d", a.HoldYears)
	}
	if a.ExitCapRate <= 0 || a.ExitCapRate > 1 {
		add("exit_cap_rate", model.ValidationOutOfRange, "exit cap rate must be in (0,1], got %g", a.ExitCapRate)
	}
	if a.SellingCostRatio < 0 || a.SellingCostRatio >= 1 {
		add("selling_cost_ratio", model.ValidationOutOfRange, "selling cost ratio must be in [0,1), got %g", a.SellingCostRatio)
	}
	if a.ReserveRatio < 0 || a.ReserveRatio >= 1 {
		add("reserve_ratio", model.ValidationOutOfRange, "reserve ratio must be in [0,1), got %g", a.ReserveRatio)
	}
	if a.CashOnCashYear < 0 || (a.HoldYears >= 1 && a.CashOnCashYear > a.HoldYears) {
		add("cash_on_cash_year", model.ValidationOutOfRange, "cash-on-cash year must be within the hold period, got %d", a.CashOnCashYear)
	}

	names := make(map[string]bool, len(a.RevenueLines))
	for i, line := range a.RevenueLines {
		field := fmt.Sprintf("revenue_lines[%d]", i)
		if line.Name == "" {
			add(field+".name", model.ValidationMissingField, "revenue line needs a name")
		}
		if line.Amount < 0 {
			add(field+".amount", model.ValidationOutOfRange, "revenue line amount cannot be negative, got %g", line.Amount)
		}
		if line.Growth != nil && (*line.Growth < -1 || *line.Growth > 1) {
			add(field+".growth", model.ValidationOutOfRange, "revenue line growth must be in [-1,1], got %g", *line.Growth)
		}
		names[line.Name] = true
	}
	if len(a.RevenueLines) == 0 {
		names[defaultRevenueLineName] = true
	}
	for i, line := range a.ExpenseLines {
		field := fmt.Sprintf("expense_lines[%d]", i)
		if line.Name == "" {
			add(field+".name", model.ValidationMissingField, "expense line needs a name")
		}
		switch line.Basis {
		case model.ExpenseBasisRevenueRatio:
			if line.Ratio < 0 || line.Ratio > 1 {
				add(field+".ratio", model.ValidationOutOfRange, "expense ratio must be in [0,1], got %g", line.Ratio)
			}
			if line.RevenueRef != "" && !names[line.RevenueRef] {
				add(field+".revenue_ref", model.ValidationUnknownRef, "unknown revenue line %q", line.RevenueRef)
			}
		case model.ExpenseBasisPerUnit:
			if line.PerUnit < 0 {
				add(field+".per_unit", model.ValidationOutOfRange, "per-unit amount cannot be negative, got %g", line.PerUnit)
			}
		default:
			add(field+".basis", model.ValidationOutOfRange, "basis must be %q or %q, got %q",
				model.ExpenseBasisRevenueRatio, model.ExpenseBasisPerUnit, line.Basis)
		}
	}

	if len(errs) > 0 {
		return Validated{}, errs
	}
	return Validated{Assumptions: a}, nil
}
