package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerline/proforma-cli/internal/model"
	"github.com/ledgerline/proforma-cli/internal/proforma"
)

var (
	amortizePrincipal float64
	amortizeRate      float64
	amortizeYears     int
	amortizeJSON      bool
)

var amortizeCmd = &cobra.Command{
	Use:   "amortize",
	Short: "Print a standalone annual amortization schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		if amortizePrincipal < 0 {
			return eris.New("principal must not be negative")
		}
		if amortizeYears <= 0 {
			return eris.New("years must be positive")
		}

		schedule := proforma.Amortize(decimal.NewFromFloat(amortizePrincipal), amortizeRate, amortizeYears)

		if amortizeJSON {
			return printJSON(schedule)
		}
		formatSchedule(os.Stdout, schedule)
		return nil
	},
}

func formatSchedule(w io.Writer, s model.LoanSchedule) {
	fmt.Fprintf(w, "Principal %s at %.3f%%, annual payment %s\n\n",
		s.Principal.StringFixed(2), s.AnnualRate*100, s.AnnualPayment.StringFixed(2))
	fmt.Fprintf(w, "%-5s %16s %16s %16s %16s\n", "YEAR", "BEGINNING", "INTEREST", "PRINCIPAL", "ENDING")
	for _, y := range s.Years {
		fmt.Fprintf(w, "%-5d %16s %16s %16s %16s\n",
			y.Year,
			y.BeginningBalance.StringFixed(2),
			y.Interest.StringFixed(2),
			y.Principal.StringFixed(2),
			y.EndingBalance.StringFixed(2),
		)
	}
}

func init() {
	amortizeCmd.Flags().Float64Var(&amortizePrincipal, "principal", 0, "loan principal (required)")
	amortizeCmd.Flags().Float64Var(&amortizeRate, "rate", 0, "annual interest rate, e.g. 0.065")
	amortizeCmd.Flags().IntVar(&amortizeYears, "years", 0, "amortization term in years (required)")
	_ = amortizeCmd.MarkFlagRequired("principal")
	_ = amortizeCmd.MarkFlagRequired("years")
	rootCmd.AddCommand(amortizeCmd)
}
