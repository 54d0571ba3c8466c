package report

import (
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v2"

	"github.com/ledgerline/proforma-cli/internal/model"
)

// Workbook builds an xlsx workbook from run output with three sheets:
// the yearly pro forma, the loan schedule and the return metrics.
func Workbook(property string, out *model.RunOutput) (*xlsx.File, error) {
	if out == nil {
		return nil, eris.New("report: nil run output")
	}

	f := xlsx.NewFile()

	if err := addProFormaSheet(f, out.Projections); err != nil {
		return nil, err
	}
	if err := addLoanSheet(f, out.LoanSchedule); err != nil {
		return nil, err
	}
	if err := addReturnsSheet(f, property, out.Returns); err != nil {
		return nil, err
	}

	return f, nil
}

// WriteWorkbook renders the workbook and saves it to path.
func WriteWorkbook(path, property string, out *model.RunOutput) error {
	f, err := Workbook(property, out)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save workbook %s", path)
	}
	return nil
}

func addProFormaSheet(f *xlsx.File, projections []model.YearlyProjection) error {
	sheet, err := f.AddSheet("Pro Forma")
	if err != nil {
		return eris.Wrap(err, "report: add pro forma sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Year", "Ramp Factor", "Revenue", "Expenses", "NOI", "Debt Service", "Reserve", "Net Cash Flow", "DSCR"} {
		header.AddCell().SetString(h)
	}

	for _, p := range projections {
		row := sheet.AddRow()
		row.AddCell().SetInt(p.Year)
		row.AddCell().SetFloat(p.RampFactor)
		setAmount(row, p.TotalRevenue)
		setAmount(row, p.TotalExpenses)
		setAmount(row, p.NOI)
		setAmount(row, p.DebtService)
		setAmount(row, p.Reserve)
		setAmount(row, p.NetCashFlow)
		row.AddCell().SetFloat(p.DSCR)
	}
	return nil
}

func addLoanSheet(f *xlsx.File, schedule model.LoanSchedule) error {
	sheet, err := f.AddSheet("Loan Schedule")
	if err != nil {
		return eris.Wrap(err, "report: add loan sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Year", "Beginning Balance", "Interest", "Principal", "Ending Balance"} {
		header.AddCell().SetString(h)
	}

	for _, y := range schedule.Years {
		row := sheet.AddRow()
		row.AddCell().SetInt(y.Year)
		setAmount(row, y.BeginningBalance)
		setAmount(row, y.Interest)
		setAmount(row, y.Principal)
		setAmount(row, y.EndingBalance)
	}
	return nil
}

func addReturnsSheet(f *xlsx.File, property string, r model.ReturnsResult) error {
	sheet, err := f.AddSheet("Returns")
	if err != nil {
		return eris.Wrap(err, "report: add returns sheet")
	}

	addMetric := func(name string, set func(*xlsx.Cell)) {
		row := sheet.AddRow()
		row.AddCell().SetString(name)
		set(row.AddCell())
	}

	if property != "" {
		addMetric("Property", func(c *xlsx.Cell) { c.SetString(property) })
	}
	if r.Converged() {
		addMetric("IRR", func(c *xlsx.Cell) { c.SetFloat(*r.IRR) })
		addMetric("Solver Iterations", func(c *xlsx.Cell) { c.SetInt(r.Iterations) })
	} else {
		addMetric("IRR", func(c *xlsx.Cell) { c.SetString("non-convergent: " + string(r.NonConvergence)) })
	}
	addMetric("Equity Multiple", func(c *xlsx.Cell) { c.SetFloat(r.EquityMultiple) })
	addMetric("Cash-on-Cash", func(c *xlsx.Cell) { c.SetFloat(r.CashOnCash) })
	addMetric("Cash-on-Cash Year", func(c *xlsx.Cell) { c.SetInt(r.CashOnCashYear) })
	addMetric("Yield on Cost (Year 1)", func(c *xlsx.Cell) { c.SetFloat(r.YieldOnCostYear1) })
	addMetric("Yield on Cost (Stabilized)", func(c *xlsx.Cell) { c.SetFloat(r.YieldOnCostStabilized) })
	addMetric("Equity Invested", func(c *xlsx.Cell) { c.SetFloat(r.EquityInvested.InexactFloat64()) })
	addMetric("Exit Value (Gross)", func(c *xlsx.Cell) { c.SetFloat(r.ExitGrossValue.InexactFloat64()) })
	addMetric("Exit Net Proceeds", func(c *xlsx.Cell) { c.SetFloat(r.ExitNetProceeds.InexactFloat64()) })
	return nil
}

func setAmount(row *xlsx.Row, d decimal.Decimal) {
	row.AddCell().SetFloat(d.InexactFloat64())
}
