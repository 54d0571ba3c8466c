package model

// SensitivityCell is the outcome of one grid cell: the field overrides
// applied to the base assumptions and either a returns result or the error
// that stopped that cell. A failed cell never aborts the rest of the grid.
type SensitivityCell struct {
	Overrides map[string]float64 `json:"overrides"`
	Returns   *ReturnsResult     `json:"returns,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// SensitivityResult maps perturbation keys (e.g. "exit_cap_rate=0.065,
// starting_rate=225") to the full returns result for that combination.
type SensitivityResult struct {
	Cells map[string]SensitivityCell `json:"cells"`
	// Partial is set when a caller timeout interrupted the grid; the cells
	// already computed are still returned.
	Partial bool `json:"partial,omitempty"`
}
