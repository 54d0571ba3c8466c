package proforma

import (
	"github.com/shopspring/decimal"
)

// ExitValue computes the terminal sale: gross value capitalizes the terminal
// NOI at the exit cap rate, and net proceeds subtract selling costs and the
// remaining loan balance (read from the schedule at the hold year, never
// recomputed).
//
// A zero cap rate is rejected by Validate before this stage; reaching it
// here is a contract violation and panics in the decimal division.
func ExitValue(terminalNOI decimal.Decimal, exitCapRate, sellingCostRatio float64, remainingLoanBalance decimal.Decimal) (gross, net decimal.Decimal) {
	gross = terminalNOI.Div(decimal.NewFromFloat(exitCapRate)).Round(2)
	net = gross.
		Mul(decimal.NewFromFloat(1 - sellingCostRatio)).
		Round(2).
		Sub(remainingLoanBalance)
	return gross, net
}
