package providers

import (
	"github.com/recalibr/recalibr/backend/internal/domain/entities"
)

// BrandIntroYears maps an equipment tag to the model year a brand first
// shipped that feature. The industry-default table uses the same shape.
type BrandIntroYears map[string]int

// ReferenceDataProvider supplies the read-only OEM-derived tables the
// engine consults: trigger rules, system alias equivalence sets, feature
// introduction years and brand-specific calibration types. Implementations
// load once at startup; everything returned must be treated as immutable.
type ReferenceDataProvider interface {
	// TriggersFor returns every trigger rule keyed by the repair category.
	TriggersFor(category entities.RepairCategory) []entities.CalibrationTrigger

	// AllTriggers returns the full rule table for auditing surfaces.
	AllTriggers() []entities.CalibrationTrigger

	// AliasSets returns canonical system name → known aliases. Lookups
	// normalize both sides before set membership testing.
	AliasSets() map[entities.CalibrationSystem][]string

	// IntroYears returns the introduction-year table for a normalized
	// brand and whether the brand was present; callers fall back to
	// DefaultIntroYears when it was not.
	IntroYears(brand string) (BrandIntroYears, bool)

	// DefaultIntroYears returns the industry-default introduction table.
	DefaultIntroYears() BrandIntroYears

	// CalibrationTypeFor resolves the (brand, system) procedure override;
	// ok is false when no entry exists and the caller defaults to static.
	CalibrationTypeFor(brand string, system entities.CalibrationSystem) (entities.CalibrationType, bool)
}
