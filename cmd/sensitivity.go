package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline/proforma-cli/internal/proforma"
	"github.com/ledgerline/proforma-cli/internal/sensitivity"
)

var (
	sensFile     string
	sensScenario string
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Run a sensitivity grid over perturbed assumptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAssumptions(sensFile)
		if err != nil {
			return err
		}
		sf, err := sensitivity.LoadScenario(sensScenario)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Sensitivity.TimeoutSecs)*time.Second)
		defer cancel()

		runner := sensitivity.NewRunner(proforma.NewEngine(cfg.Solver), cfg.Sensitivity.Concurrency)
		result := runner.RunGrid(ctx, a, sf.Grid())

		return printJSON(result)
	},
}

func init() {
	sensitivityCmd.Flags().StringVarP(&sensFile, "file", "f", "", "assumptions JSON file (required)")
	sensitivityCmd.Flags().StringVarP(&sensScenario, "scenario", "s", "", "scenario YAML file (required)")
	_ = sensitivityCmd.MarkFlagRequired("file")
	_ = sensitivityCmd.MarkFlagRequired("scenario")
	rootCmd.AddCommand(sensitivityCmd)
}
