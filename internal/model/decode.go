package model

import (
	"encoding/json"
	"fmt"
)

// requiredFields must be present in a full-pipeline assumptions object.
var requiredFields = []string{
	"units",
	"starting_rate",
	"stabilized_occupancy",
	"total_cost",
	"hold_years",
	"exit_cap_rate",
}

// requiredExternalFields must be present for an IRR-only invocation.
var requiredExternalFields = []string{
	"external_cash_flows",
	"external_periods",
}

// DecodeAssumptions parses the JSON assumptions object. Unknown fields are
// ignored; each missing required field is reported as its own
// missing_field error so the caller sees every gap in one pass.
func DecodeAssumptions(data []byte) (Assumptions, ValidationErrors) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Assumptions{}, ValidationErrors{{
			Field:   "",
			Code:    ValidationOutOfRange,
			Message: fmt.Sprintf("invalid JSON: %v", err),
		}}
	}

	required := requiredFields
	if _, ok := raw["external_cash_flows"]; ok {
		required = requiredExternalFields
	}

	var errs ValidationErrors
	for _, f := range required {
		if _, ok := raw[f]; !ok {
			errs = append(errs, ValidationError{
				Field:   f,
				Code:    ValidationMissingField,
				Message: "required field is missing",
			})
		}
	}
	if len(errs) > 0 {
		return Assumptions{}, errs
	}

	var a Assumptions
	if err := json.Unmarshal(data, &a); err != nil {
		return Assumptions{}, ValidationErrors{{
			Field:   "",
			Code:    ValidationOutOfRange,
			Message: fmt.Sprintf("decode assumptions: %v", err),
		}}
	}
	return a, nil
}
