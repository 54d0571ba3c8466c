package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledgerline/proforma-cli/internal/model"
	"github.com/ledgerline/proforma-cli/internal/proforma"
	"github.com/ledgerline/proforma-cli/internal/report"
	"github.com/ledgerline/proforma-cli/internal/sensitivity"
)

var (
	runFile     string
	runScenario string
	runText     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pro forma pipeline on an assumptions file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := loadAssumptions(runFile)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		run, err := st.CreateRun(ctx, a)
		if err != nil {
			return err
		}
		if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
			return err
		}

		engine := proforma.NewEngine(cfg.Solver)
		out, verrs := engine.Run(a)
		if len(verrs) > 0 {
			if err := st.FailRun(ctx, run.ID, verrs.Error()); err != nil {
				zap.L().Warn("run: record failure", zap.Error(err))
			}
			printValidationErrors(verrs)
			return eris.New("assumptions failed validation")
		}

		if runScenario != "" {
			sf, err := sensitivity.LoadScenario(runScenario)
			if err != nil {
				return err
			}
			gridCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Sensitivity.TimeoutSecs)*time.Second)
			defer cancel()
			runner := sensitivity.NewRunner(engine, cfg.Sensitivity.Concurrency)
			out.Sensitivity = runner.RunGrid(gridCtx, a, sf.Grid())
		}

		if err := st.UpdateRunResult(ctx, run.ID, out); err != nil {
			return err
		}
		zap.L().Info("run: complete",
			zap.String("run_id", run.ID),
			zap.String("summary", report.Summary(out.Returns)),
		)

		if runText {
			return report.Text(os.Stdout, a.PropertyName, out)
		}
		return printJSON(out)
	},
}

func printValidationErrors(errs model.ValidationErrors) {
	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	_ = enc.Encode(errs)
}

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "assumptions JSON file (required)")
	runCmd.Flags().StringVar(&runScenario, "sensitivity", "", "scenario YAML to run a sensitivity grid alongside")
	runCmd.Flags().BoolVar(&runText, "text", false, "print a readable report instead of JSON")
	_ = runCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(runCmd)
}
