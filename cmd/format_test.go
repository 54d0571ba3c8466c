package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline/proforma-cli/internal/model"
	"github.com/ledgerline/proforma-cli/internal/proforma"
)

func TestFormatRuns_Empty(t *testing.T) {
	var buf bytes.Buffer
	formatRuns(&buf, nil)

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "PROPERTY")
	assert.Contains(t, output, "STATUS")
}

func TestFormatRuns_Entries(t *testing.T) {
	irr := 0.12
	created := time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC)

	runs := []model.Run{
		{
			ID:        "0b6f9a5e-1111-4f6e-9a92-000000000001",
			Property:  "Harbor Inn",
			Status:    model.RunStatusComplete,
			CreatedAt: created,
			Result: &model.RunOutput{
				Returns: model.ReturnsResult{IRR: &irr, EquityMultiple: 1.9, CashOnCash: 0.05, CashOnCashYear: 3},
			},
		},
		{
			ID:        "0b6f9a5e-1111-4f6e-9a92-000000000002",
			Property:  "Summit Lodge",
			Status:    model.RunStatusFailed,
			CreatedAt: created,
			Error:     "stabilized_occupancy: value 1.3 outside [0, 1] (out_of_range)",
		},
	}

	var buf bytes.Buffer
	formatRuns(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "Harbor Inn")
	assert.Contains(t, output, "complete")
	assert.Contains(t, output, "2026-03-10 09:15")
	assert.Contains(t, output, "IRR 12.00%")
	assert.Contains(t, output, "Summit Lodge")
	assert.Contains(t, output, "out_of_range")
}

func TestFormatSchedule(t *testing.T) {
	schedule := proforma.Amortize(decimal.NewFromInt(1_000_000), 0.05, 10)

	var buf bytes.Buffer
	formatSchedule(&buf, schedule)

	output := buf.String()
	assert.Contains(t, output, "Principal 1000000.00 at 5.000%")
	assert.Contains(t, output, "YEAR")
	assert.Contains(t, output, "ENDING")
	// Final balance amortizes to zero.
	assert.Contains(t, output, "0.00")
}
