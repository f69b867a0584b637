package entities

// Vehicle is the resolved identity used by the brand/year heuristics and
// the calibration-type lookup. Brand is normalized lowercase.
type Vehicle struct {
	VIN       string `json:"vin,omitempty"`
	Brand     string `json:"brand,omitempty"`
	ModelYear int    `json:"model_year,omitempty"`
	// Description is free text supplied by the caller ("2021 Honda CR-V EX").
	Description string `json:"description,omitempty"`
}

// HasIdentity reports whether enough identity exists to run brand/year
// equipment heuristics.
func (v Vehicle) HasIdentity() bool {
	return v.Brand != "" && v.ModelYear > 0
}
