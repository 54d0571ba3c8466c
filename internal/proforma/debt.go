package proforma

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/proforma-cli/internal/model"
)

// Amortize computes the level annual payment and the year-by-year schedule
// for an ordinary-annuity loan.
//
// payment = P * r / (1 - (1+r)^-n), with the explicit r = 0 branch paying
// P/n (the naive formula divides by zero there). A non-positive principal is
// a valid zero-leverage configuration and yields an all-zero schedule rather
// than an error.
func Amortize(principal decimal.Decimal, annualRate float64, amortYears int) model.LoanSchedule {
	if principal.Sign() <= 0 || amortYears <= 0 {
		return model.LoanSchedule{
			Principal:     decimal.Zero,
			AnnualRate:    annualRate,
			AnnualPayment: decimal.Zero,
		}
	}

	var payment decimal.Decimal
	if annualRate == 0 {
		payment = principal.Div(decimal.NewFromInt(int64(amortYears))).Round(2)
	} else {
		factor := annualRate / (1 - math.Pow(1+annualRate, -float64(amortYears)))
		payment = principal.Mul(decimal.NewFromFloat(factor)).Round(2)
	}

	rate := decimal.NewFromFloat(annualRate)
	schedule := model.LoanSchedule{
		Principal:     principal,
		AnnualRate:    annualRate,
		AnnualPayment: payment,
		Years:         make([]model.LoanYear, 0, amortYears),
	}

	balance := principal
	for year := 1; year <= amortYears; year++ {
		interest := balance.Mul(rate).Round(2)
		principalPart := payment.Sub(interest)
		// Floor the ending balance at zero so payment rounding never
		// leaves a negative balance in the final years.
		if principalPart.GreaterThan(balance) {
			principalPart = balance
		}
		ending := balance.Sub(principalPart)

		schedule.Years = append(schedule.Years, model.LoanYear{
			Year:             year,
			BeginningBalance: balance,
			Interest:         interest,
			Principal:        principalPart,
			EndingBalance:    ending,
		})
		balance = ending
		if balance.IsZero() {
			break
		}
	}
	return schedule
}
