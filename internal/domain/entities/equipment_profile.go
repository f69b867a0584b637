package entities

// EvidenceSources records which evidence channels contributed to a profile.
type EvidenceSources struct {
	HasVIN             bool `json:"has_vin"`
	HasSecondaryReport bool `json:"has_secondary_report"`
	HasEstimateNotes   bool `json:"has_estimate_notes"`
	HasBrandYearData   bool `json:"has_brand_year_data"`
}

// EquipmentProfile is the confidence-tiered view of which ADAS systems the
// vehicle carries. Tiers are disjoint; confirmed outranks likely outranks
// possible, and membership never demotes once confirmed.
type EquipmentProfile struct {
	Confirmed []string        `json:"confirmed"`
	Likely    []string        `json:"likely"`
	Possible  []string        `json:"possible"`
	Sources   EvidenceSources `json:"sources"`
}

// AllTags returns the flattened evidence tag list across every tier,
// confirmed first. This is what the trigger resolver gates against.
func (p *EquipmentProfile) AllTags() []string {
	tags := make([]string, 0, len(p.Confirmed)+len(p.Likely)+len(p.Possible))
	tags = append(tags, p.Confirmed...)
	tags = append(tags, p.Likely...)
	tags = append(tags, p.Possible...)
	return tags
}

// Tier reports which tier a tag currently sits in: "confirmed", "likely",
// "possible" or "" when absent. Comparison is exact on normalized tags;
// alias-equivalence matching belongs to the caller.
func (p *EquipmentProfile) Tier(tag string) string {
	for _, t := range p.Confirmed {
		if t == tag {
			return "confirmed"
		}
	}
	for _, t := range p.Likely {
		if t == tag {
			return "likely"
		}
	}
	for _, t := range p.Possible {
		if t == tag {
			return "possible"
		}
	}
	return ""
}
