// Package report renders run output for humans: a text summary and an xlsx
// workbook export.
package report

import (
	"fmt"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ledgerline/proforma-cli/internal/model"
)

var printer = message.NewPrinter(language.English)

// usd formats a decimal dollar amount with currency symbol and grouping.
func usd(d decimal.Decimal) string {
	cents := d.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
	return money.New(cents, money.USD).Display()
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// Text writes a readable summary of one run: returns first, then the yearly
// pro forma and the loan schedule.
func Text(w io.Writer, property string, out *model.RunOutput) error {
	if out == nil {
		return eris.New("report: nil run output")
	}

	title := "Pro Forma"
	if property != "" {
		title = property
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", title, rule(len(title))); err != nil {
		return eris.Wrap(err, "report: write header")
	}

	writeReturns(w, out.Returns)

	if len(out.Projections) > 0 {
		fmt.Fprintf(w, "\nYearly Pro Forma\n")
		fmt.Fprintf(w, "%-5s %16s %16s %16s %16s %16s %8s\n",
			"Year", "Revenue", "Expenses", "NOI", "Debt Service", "Net Cash Flow", "DSCR")
		for _, p := range out.Projections {
			dscr := "-"
			if p.DSCR != 0 {
				dscr = fmt.Sprintf("%.2fx", p.DSCR)
			}
			fmt.Fprintf(w, "%-5d %16s %16s %16s %16s %16s %8s\n",
				p.Year, usd(p.TotalRevenue), usd(p.TotalExpenses), usd(p.NOI),
				usd(p.DebtService), usd(p.NetCashFlow), dscr)
		}
	}

	if len(out.LoanSchedule.Years) > 0 {
		fmt.Fprintf(w, "\nLoan Schedule (%s at %s, annual payment %s)\n",
			usd(out.LoanSchedule.Principal), pct(out.LoanSchedule.AnnualRate),
			usd(out.LoanSchedule.AnnualPayment))
		fmt.Fprintf(w, "%-5s %16s %16s %16s %16s\n",
			"Year", "Beginning", "Interest", "Principal", "Ending")
		for _, y := range out.LoanSchedule.Years {
			fmt.Fprintf(w, "%-5d %16s %16s %16s %16s\n",
				y.Year, usd(y.BeginningBalance), usd(y.Interest), usd(y.Principal), usd(y.EndingBalance))
		}
	}

	if len(out.CashFlows) > 0 {
		fmt.Fprintf(w, "\nCash Flows\n")
		for i, cf := range out.CashFlows {
			fmt.Fprintf(w, "  t=%-3d %16s\n", i, usd(cf))
		}
	}

	return nil
}

func writeReturns(w io.Writer, r model.ReturnsResult) {
	fmt.Fprintf(w, "Returns\n")
	if r.Converged() {
		fmt.Fprintf(w, "  IRR                      %s (%d iterations)\n", pct(*r.IRR), r.Iterations)
	} else {
		fmt.Fprintf(w, "  IRR                      did not converge (%s)\n", r.NonConvergence)
	}
	fmt.Fprintf(w, "  Equity Multiple          %.2fx\n", r.EquityMultiple)
	if r.CashOnCashYear > 0 {
		fmt.Fprintf(w, "  Cash-on-Cash (year %d)    %s\n", r.CashOnCashYear, pct(r.CashOnCash))
	}
	if !r.EquityInvested.IsZero() {
		fmt.Fprintf(w, "  Equity Invested          %s\n", usd(r.EquityInvested))
	}
	if r.YieldOnCostStabilized != 0 {
		fmt.Fprintf(w, "  Yield on Cost (year 1)   %s\n", pct(r.YieldOnCostYear1))
		fmt.Fprintf(w, "  Yield on Cost (stab.)    %s\n", pct(r.YieldOnCostStabilized))
	}
	if !r.ExitNetProceeds.IsZero() {
		fmt.Fprintf(w, "  Exit Value (gross)       %s\n", usd(r.ExitGrossValue))
		fmt.Fprintf(w, "  Exit Net Proceeds        %s\n", usd(r.ExitNetProceeds))
	}
}

func rule(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '='
	}
	return string(b)
}

// Summary returns a one-line run summary for log and list output.
func Summary(r model.ReturnsResult) string {
	if !r.Converged() {
		return printer.Sprintf("IRR: non-convergent (%s), equity multiple %.2fx", r.NonConvergence, r.EquityMultiple)
	}
	return printer.Sprintf("IRR %.2f%%, equity multiple %.2fx, cash-on-cash %.2f%% (year %d)",
		*r.IRR*100, r.EquityMultiple, r.CashOnCash*100, r.CashOnCashYear)
}
