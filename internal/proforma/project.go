package proforma

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerline/proforma-cli/internal/model"
)

const (
	daysPerYear            = 365
	defaultRevenueLineName = "rooms"
)

// growthFactor returns (1+rate)^exponent as a decimal, exact for the integer
// exponents used in multi-year compounding.
func growthFactor(rate float64, exponent int) decimal.Decimal {
	if exponent <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(1 + rate).Pow(decimal.NewFromInt(int64(exponent)))
}

// revenueLines returns the configured revenue lines, or the single default
// ramped per-unit-night line at the starting rate.
func revenueLines(a Validated) []model.RevenueLine {
	if len(a.RevenueLines) > 0 {
		return a.RevenueLines
	}
	return []model.RevenueLine{{
		Name:         defaultRevenueLineName,
		PerUnitNight: true,
		Amount:       a.StartingRate,
		Ramped:       true,
	}}
}

// Project produces the per-year projections for years 1..HoldYears. Only the
// revenue side, the expense side and NOI are filled here; debt service and
// reserves are deliberately left to the cash-flow aggregation stage so NOI
// never includes financing or capex.
func Project(a Validated) []model.YearlyProjection {
	lines := revenueLines(a)
	projections := make([]model.YearlyProjection, 0, a.HoldYears)

	for year := 1; year <= a.HoldYears; year++ {
		factor := RampFactor(year, a.StabilizedOccupancy, a.RampMonths)
		p := model.YearlyProjection{
			Year:       year,
			RampFactor: factor,
			Revenue:    make(map[string]decimal.Decimal, len(lines)),
			Expenses:   make(map[string]decimal.Decimal, len(a.ExpenseLines)),
		}

		for _, line := range lines {
			p.Revenue[line.Name] = revenueForYear(a, line, year, factor)
			p.TotalRevenue = p.TotalRevenue.Add(p.Revenue[line.Name])
		}
		for _, line := range a.ExpenseLines {
			p.Expenses[line.Name] = expenseForYear(a, line, year, p)
			p.TotalExpenses = p.TotalExpenses.Add(p.Expenses[line.Name])
		}
		p.NOI = p.TotalRevenue.Sub(p.TotalExpenses)

		projections = append(projections, p)
	}
	return projections
}

// revenueForYear computes one revenue line: base x (1+g)^(y-1) x volume(y).
// Utilization-dependent lines take their volume from the ramp factor;
// fixed-fee lines are unramped.
func revenueForYear(a Validated, line model.RevenueLine, year int, rampFactor float64) decimal.Decimal {
	growth := a.RevenueGrowth
	if line.Growth != nil {
		growth = *line.Growth
	}
	amount := decimal.NewFromFloat(line.Amount).Mul(growthFactor(growth, year-1))

	if line.PerUnitNight {
		utilization := a.StabilizedOccupancy
		if line.Ramped {
			utilization = rampFactor
		}
		nights := decimal.NewFromInt(int64(a.Units) * daysPerYear).Mul(decimal.NewFromFloat(utilization))
		return amount.Mul(nights).Round(2)
	}

	if line.Ramped {
		// Flat annual fee that still scales with utilization relative to
		// stabilization (e.g. ancillary spend tied to occupancy).
		amount = amount.Mul(decimal.NewFromFloat(rampFactor / a.StabilizedOccupancy))
	}
	return amount.Round(2)
}

// expenseForYear computes one expense line, either as a ratio of the
// correlated revenue line or as a per-unit annual amount compounded at the
// expense growth rate.
func expenseForYear(a Validated, line model.ExpenseLine, year int, p model.YearlyProjection) decimal.Decimal {
	switch line.Basis {
	case model.ExpenseBasisRevenueRatio:
		base := p.TotalRevenue
		if line.RevenueRef != "" {
			base = p.Revenue[line.RevenueRef]
		}
		return base.Mul(decimal.NewFromFloat(line.Ratio)).Round(2)
	case model.ExpenseBasisPerUnit:
		return decimal.NewFromFloat(line.PerUnit).
			Mul(decimal.NewFromInt(int64(a.Units))).
			Mul(growthFactor(a.ExpenseGrowth, year-1)).
			Round(2)
	}
	// Unreachable after validation; an unknown basis contributes nothing.
	return decimal.Zero
}
