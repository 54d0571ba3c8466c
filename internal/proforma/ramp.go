package proforma

// RampFactor converts the stabilized occupancy and a ramp-up period into the
// utilization multiplier for one projection year.
//
// The year-1 factor is stabilized * 12/(12 + rampMonths/12). This non-linear
// form is the documented underwriting convention and is reproduced exactly;
// it is not a fraction-of-months linear ramp. Later ramp years apply the same
// form to the ramp months remaining at the start of the year, and every year
// beyond ceil(rampMonths/12) is fully stabilized.
//
// rampMonths = 0 returns the stabilized rate for all years. Non-positive
// stabilized rates are rejected upstream by Validate, not here.
func RampFactor(year int, stabilizedRate float64, rampMonths int) float64 {
	if rampMonths <= 0 || year < 1 {
		return stabilizedRate
	}
	remaining := rampMonths - (year-1)*12
	if remaining <= 0 {
		return stabilizedRate
	}
	return stabilizedRate * 12 / (12 + float64(remaining)/12)
}

// StabilizationYear returns the first projection year at full stabilization.
func StabilizationYear(rampMonths int) int {
	if rampMonths <= 0 {
		return 1
	}
	return (rampMonths+11)/12 + 1
}
