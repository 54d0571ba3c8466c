package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/ledgerline/proforma-cli/internal/model"
)

// loadAssumptions reads and decodes an assumptions file, reporting every
// missing required field in one message.
func loadAssumptions(path string) (model.Assumptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Assumptions{}, eris.Wrapf(err, "read assumptions %s", path)
	}

	a, errs := model.DecodeAssumptions(data)
	if len(errs) > 0 {
		return model.Assumptions{}, eris.Wrap(errs, "decode assumptions")
	}
	return a, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode output")
}
