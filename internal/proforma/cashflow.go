package proforma

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerline/proforma-cli/internal/model"
)

// Aggregate combines NOI, debt service and reserve set-asides into the
// signed cash-flow series and fills the financing columns of each projection
// year. Year 0 is the negative equity investment (total cost minus loan
// principal); exitNetProceeds is added at the final year.
//
// A negative net cash flow in any year is a valid, reportable scenario and
// propagates unchanged into the series.
func Aggregate(a Validated, projections []model.YearlyProjection, schedule model.LoanSchedule, exitNetProceeds decimal.Decimal) model.CashFlowSeries {
	reserveRatio := decimal.NewFromFloat(a.ReserveRatio)

	series := make(model.CashFlowSeries, 0, len(projections)+1)
	series = append(series, a.EquityInvested().Neg())

	for i := range projections {
		p := &projections[i]
		p.DebtService = schedule.DebtServiceAt(p.Year)
		p.Reserve = p.TotalRevenue.Mul(reserveRatio).Round(2)
		p.NetCashFlow = p.NOI.Sub(p.DebtService).Sub(p.Reserve)
		if p.DebtService.Sign() > 0 {
			p.DSCR = p.NOI.Div(p.DebtService).InexactFloat64()
		}

		flow := p.NetCashFlow
		if p.Year == len(projections) {
			flow = flow.Add(exitNetProceeds)
		}
		series = append(series, flow)
	}
	return series
}
