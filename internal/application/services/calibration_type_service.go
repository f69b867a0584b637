package services

import (
	"github.com/recalibr/recalibr/backend/internal/domain/entities"
	"github.com/recalibr/recalibr/backend/internal/domain/providers"
)

// CalibrationTypeService resolves the procedure type for a (brand, system)
// pair. The same ADAS system calibrates differently across manufacturers,
// so this is a data lookup with a Static default, never an inference.
type CalibrationTypeService struct {
	refData providers.ReferenceDataProvider
}

// NewCalibrationTypeService creates a new calibration type resolver.
func NewCalibrationTypeService(refData providers.ReferenceDataProvider) *CalibrationTypeService {
	return &CalibrationTypeService{refData: refData}
}

// Resolve returns the brand-specific calibration type, defaulting to
// Static when the brand or system has no override entry.
func (s *CalibrationTypeService) Resolve(brand string, system entities.CalibrationSystem) entities.CalibrationType {
	if brand != "" {
		if t, ok := s.refData.CalibrationTypeFor(brand, system); ok {
			return t
		}
	}
	return entities.TypeStatic
}
