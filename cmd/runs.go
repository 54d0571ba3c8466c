package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerline/proforma-cli/internal/model"
	"github.com/ledgerline/proforma-cli/internal/report"
	"github.com/ledgerline/proforma-cli/internal/store"
)

var (
	runsStatus   string
	runsProperty string
	runsLimit    int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded pipeline runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Status:   model.RunStatus(runsStatus),
			Property: runsProperty,
			Limit:    runsLimit,
		})
		if err != nil {
			return err
		}

		formatRuns(os.Stdout, runs)
		return nil
	},
}

func formatRuns(w io.Writer, runs []model.Run) {
	fmt.Fprintf(w, "%-36s  %-24s  %-9s  %-17s  %s\n", "ID", "PROPERTY", "STATUS", "CREATED", "RESULT")
	for _, r := range runs {
		result := "-"
		switch {
		case r.Result != nil:
			result = report.Summary(r.Result.Returns)
		case r.Error != "":
			result = r.Error
		}
		fmt.Fprintf(w, "%-36s  %-24s  %-9s  %-17s  %s\n",
			r.ID, r.Property, r.Status, r.CreatedAt.Format("2006-01-02 15:04"), result)
	}
}

func init() {
	runsCmd.Flags().StringVar(&runsStatus, "status", "", "filter by status (queued|running|complete|failed)")
	runsCmd.Flags().StringVar(&runsProperty, "property", "", "filter by property name")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 50, "maximum rows")
	rootCmd.AddCommand(runsCmd)
}
