package services

import (
	"github.com/recalibr/recalibr/backend/internal/domain/entities"
	"github.com/recalibr/recalibr/backend/internal/domain/providers"
	"github.com/recalibr/recalibr/backend/pkg/utils"
)

// likelyAfterYears is how far past a feature's introduction year the model
// year must be before brand/year evidence alone counts as "likely" rather
// than "possible" (features usually start as optional equipment).
const likelyAfterYears = 3

// EquipmentService merges the evidence channels into the three-tier
// equipment profile. Trust order: secondary report and explicit estimate
// mentions (confirmed) over brand/year heuristics (likely or possible).
// The VIN never asserts equipment itself; it only feeds brand and year.
type EquipmentService struct {
	refData    providers.ReferenceDataProvider
	normalizer *utils.SystemNormalizer
}

// NewEquipmentService creates a new equipment profile builder.
func NewEquipmentService(refData providers.ReferenceDataProvider, normalizer *utils.SystemNormalizer) *EquipmentService {
	return &EquipmentService{refData: refData, normalizer: normalizer}
}

// Build produces the equipment profile for one scrub. Tiers come out
// disjoint and monotonic: once a system lands in confirmed it never also
// appears lower, and tier ties resolve toward the higher tier.
func (s *EquipmentService) Build(vehicle entities.Vehicle, estimateText, secondaryReportText string) *entities.EquipmentProfile {
	profile := &entities.EquipmentProfile{
		Confirmed: []string{},
		Likely:    []string{},
		Possible:  []string{},
		Sources: entities.EvidenceSources{
			HasVIN:             vehicle.VIN != "",
			HasSecondaryReport: secondaryReportText != "",
			HasEstimateNotes:   estimateText != "",
		},
	}

	member := make(map[string]string) // canonical tag → tier

	// Highest trust first: the independent calibration report, then
	// features the estimate itself names.
	for _, system := range s.normalizer.SystemsInText(secondaryReportText) {
		addTier(profile, member, string(system), "confirmed")
	}
	for _, system := range s.normalizer.SystemsInText(estimateText) {
		addTier(profile, member, string(system), "confirmed")
	}

	// Also honor the free-text vehicle description ("2022 Accord w/ BSM").
	for _, system := range s.normalizer.SystemsInText(vehicle.Description) {
		addTier(profile, member, string(system), "confirmed")
	}

	if vehicle.HasIdentity() {
		intro, found := s.refData.IntroYears(vehicle.Brand)
		if !found {
			// Unknown brand: fall back to the industry-default table
			// rather than asserting nothing.
			intro = s.refData.DefaultIntroYears()
		}
		profile.Sources.HasBrandYearData = len(intro) > 0
		for tag, introYear := range intro {
			switch {
			case vehicle.ModelYear >= introYear+likelyAfterYears:
				addTier(profile, member, tag, "likely")
			case vehicle.ModelYear >= introYear:
				addTier(profile, member, tag, "possible")
			}
			// Model years before introduction carry no membership at all.
		}
	}

	return profile
}

var tierRank = map[string]int{"confirmed": 3, "likely": 2, "possible": 1}

// addTier inserts a tag into a tier, enforcing disjointness: an existing
// equal-or-higher membership wins; a lower one is promoted.
func addTier(p *entities.EquipmentProfile, member map[string]string, tag, tier string) {
	tag = utils.NormalizeTag(tag)
	if tag == "" {
		return
	}
	current, exists := member[tag]
	if exists {
		if tierRank[current] >= tierRank[tier] {
			return
		}
		removeTag(p, tag, current)
	}
	member[tag] = tier
	switch tier {
	case "confirmed":
		p.Confirmed = append(p.Confirmed, tag)
	case "likely":
		p.Likely = append(p.Likely, tag)
	case "possible":
		p.Possible = append(p.Possible, tag)
	}
}

func removeTag(p *entities.EquipmentProfile, tag, tier string) {
	remove := func(list []string) []string {
		for i, t := range list {
			if t == tag {
				return append(list[:i], list[i+1:]...)
			}
		}
		return list
	}
	switch tier {
	case "confirmed":
		p.Confirmed = remove(p.Confirmed)
	case "likely":
		p.Likely = remove(p.Likely)
	case "possible":
		p.Possible = remove(p.Possible)
	}
}
