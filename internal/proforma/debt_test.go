package proforma

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmortize_ZeroRate(t *testing.T) {
	// r = 0 must pay exactly P/n; the naive annuity formula divides by zero.
	s := Amortize(decimal.NewFromInt(120_000), 0, 10)

	assert.True(t, s.AnnualPayment.Equal(decimal.NewFromInt(12_000)), "payment = %s", s.AnnualPayment)
	require.Len(t, s.Years, 10)
	for _, y := range s.Years {
		assert.True(t, y.Interest.IsZero())
		assert.True(t, y.Principal.Equal(decimal.NewFromInt(12_000)))
	}
	assert.True(t, s.Years[9].EndingBalance.IsZero())
}

func TestAmortize_PrincipalSumClosesLoan(t *testing.T) {
	principal := decimal.NewFromInt(10_000_000)
	s := Amortize(principal, 0.065, 25)

	// payment = P * r / (1 - (1+r)^-n)
	wantPayment := 10_000_000 * 0.065 / (1 - math.Pow(1.065, -25))
	assert.InDelta(t, wantPayment, s.AnnualPayment.InexactFloat64(), 0.01)

	var principalSum decimal.Decimal
	for _, y := range s.Years {
		principalSum = principalSum.Add(y.Principal)
		// interest = beginning balance * r
		wantInterest := y.BeginningBalance.Mul(decimal.NewFromFloat(0.065)).Round(2)
		assert.True(t, y.Interest.Equal(wantInterest), "year %d interest", y.Year)
	}
	assert.InDelta(t, 10_000_000, principalSum.InexactFloat64(), 1.0, "amortization closes the loan")
	assert.True(t, s.Years[len(s.Years)-1].EndingBalance.IsZero() ||
		s.Years[len(s.Years)-1].EndingBalance.LessThan(decimal.NewFromInt(1)))
}

func TestAmortize_BalanceNeverNegative(t *testing.T) {
	s := Amortize(decimal.NewFromInt(500_000), 0.08, 15)
	for _, y := range s.Years {
		assert.GreaterOrEqual(t, y.EndingBalance.Sign(), 0, "year %d", y.Year)
	}
}

func TestAmortize_ZeroPrincipal(t *testing.T) {
	// Zero leverage is a valid configuration, not an error.
	for _, p := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		s := Amortize(p, 0.07, 30)
		assert.True(t, s.AnnualPayment.IsZero())
		assert.Empty(t, s.Years)
		assert.True(t, s.BalanceAt(10).IsZero())
		assert.True(t, s.DebtServiceAt(5).IsZero())
	}
}

func TestLoanSchedule_BalanceAt(t *testing.T) {
	principal := decimal.NewFromInt(1_000_000)
	s := Amortize(principal, 0.05, 20)

	assert.True(t, s.BalanceAt(0).Equal(principal))
	assert.True(t, s.BalanceAt(1).LessThan(principal))
	// Past the amortization term the loan is retired.
	assert.True(t, s.BalanceAt(40).IsZero())

	// Balances strictly decrease year over year.
	for y := 2; y <= 20; y++ {
		assert.True(t, s.BalanceAt(y).LessThan(s.BalanceAt(y-1)), "year %d", y)
	}
}

func TestLoanSchedule_DebtServiceConstant(t *testing.T) {
	s := Amortize(decimal.NewFromInt(2_000_000), 0.06, 25)
	for y := 1; y <= 25; y++ {
		ds := s.DebtServiceAt(y)
		assert.True(t, ds.Sub(s.AnnualPayment).Abs().LessThanOrEqual(decimal.NewFromFloat(0.02)),
			"year %d debt service %s vs payment %s", y, ds, s.AnnualPayment)
	}
}
