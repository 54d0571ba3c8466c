package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledgerline/proforma-cli/internal/proforma"
	"github.com/ledgerline/proforma-cli/internal/report"
)

var (
	exportFile string
	exportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run the pipeline and export the model to an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAssumptions(exportFile)
		if err != nil {
			return err
		}

		out, verrs := proforma.NewEngine(cfg.Solver).Run(a)
		if len(verrs) > 0 {
			printValidationErrors(verrs)
			return eris.New("assumptions failed validation")
		}

		if err := report.WriteWorkbook(exportOut, a.PropertyName, out); err != nil {
			return err
		}
		zap.L().Info("export: workbook written",
			zap.String("path", exportOut),
			zap.String("summary", report.Summary(out.Returns)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "assumptions JSON file (required)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "model.xlsx", "output workbook path")
	_ = exportCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(exportCmd)
}
