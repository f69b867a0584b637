package refdata

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/recalibr/recalibr/backend/internal/domain/entities"
	"github.com/recalibr/recalibr/backend/internal/domain/providers"
	apperrors "github.com/recalibr/recalibr/backend/pkg/errors"
)

// Paths names the JSON reference tables the provider loads.
type Paths struct {
	Triggers          string
	SystemAliases     string
	IntroductionYears string
	CalibrationTypes  string
}

type introYearsFile struct {
	Brands  map[string]providers.BrandIntroYears `json:"brands"`
	Default providers.BrandIntroYears            `json:"default"`
}

// FileProvider implements ReferenceDataProvider from JSON files loaded once
// at construction. Everything it returns is read-only for the process
// lifetime, so it is safe to share across concurrent scrubs.
type FileProvider struct {
	triggers           []entities.CalibrationTrigger
	triggersByCategory map[entities.RepairCategory][]entities.CalibrationTrigger
	aliasSets          map[entities.CalibrationSystem][]string
	introYears         map[string]providers.BrandIntroYears
	defaultIntroYears  providers.BrandIntroYears
	calibrationTypes   map[string]map[entities.CalibrationSystem]entities.CalibrationType
}

// NewFileProvider loads all reference tables from the given paths.
func NewFileProvider(paths Paths) (*FileProvider, error) {
	p := &FileProvider{
		triggersByCategory: make(map[entities.RepairCategory][]entities.CalibrationTrigger),
	}

	var triggers []entities.CalibrationTrigger
	if err := readJSON(paths.Triggers, &triggers); err != nil {
		return nil, apperrors.NewInternalError("failed to load trigger table", err)
	}
	for i, t := range triggers {
		if !t.System.IsValid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("trigger %d names unknown system %q", i, t.System))
		}
	}
	p.triggers = triggers
	for _, t := range triggers {
		p.triggersByCategory[t.RepairCategory] = append(p.triggersByCategory[t.RepairCategory], t)
	}

	if err := readJSON(paths.SystemAliases, &p.aliasSets); err != nil {
		return nil, apperrors.NewInternalError("failed to load alias table", err)
	}

	var intro introYearsFile
	if err := readJSON(paths.IntroductionYears, &intro); err != nil {
		return nil, apperrors.NewInternalError("failed to load introduction-year table", err)
	}
	p.introYears = make(map[string]providers.BrandIntroYears, len(intro.Brands))
	for brand, years := range intro.Brands {
		p.introYears[normalizeBrand(brand)] = years
	}
	p.defaultIntroYears = intro.Default

	var rawTypes map[string]map[entities.CalibrationSystem]entities.CalibrationType
	if err := readJSON(paths.CalibrationTypes, &rawTypes); err != nil {
		return nil, apperrors.NewInternalError("failed to load calibration-type table", err)
	}
	p.calibrationTypes = make(map[string]map[entities.CalibrationSystem]entities.CalibrationType, len(rawTypes))
	for brand, overrides := range rawTypes {
		p.calibrationTypes[normalizeBrand(brand)] = overrides
	}

	return p, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func normalizeBrand(brand string) string {
	return strings.ToLower(strings.TrimSpace(brand))
}

// AllTriggers returns the full rule table in file order.
func (p *FileProvider) AllTriggers() []entities.CalibrationTrigger {
	return p.triggers
}

// TriggersFor returns every trigger rule for a repair category.
func (p *FileProvider) TriggersFor(category entities.RepairCategory) []entities.CalibrationTrigger {
	return p.triggersByCategory[category]
}

// AliasSets returns the canonical system → aliases table.
func (p *FileProvider) AliasSets() map[entities.CalibrationSystem][]string {
	return p.aliasSets
}

// IntroYears returns the introduction-year table for a brand.
func (p *FileProvider) IntroYears(brand string) (providers.BrandIntroYears, bool) {
	years, ok := p.introYears[normalizeBrand(brand)]
	return years, ok
}

// DefaultIntroYears returns the industry-default introduction-year table.
func (p *FileProvider) DefaultIntroYears() providers.BrandIntroYears {
	return p.defaultIntroYears
}

// CalibrationTypeFor resolves the (brand, system) procedure override.
func (p *FileProvider) CalibrationTypeFor(brand string, system entities.CalibrationSystem) (entities.CalibrationType, bool) {
	overrides, ok := p.calibrationTypes[normalizeBrand(brand)]
	if !ok {
		return "", false
	}
	t, ok := overrides[system]
	return t, ok
}
