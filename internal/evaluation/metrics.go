package evaluation

import "github.com/recalibr/recalibr/backend/internal/domain/entities"

// SetPrecision computes the fraction of produced systems that were
// expected. Returns 1.0 when nothing was produced and nothing expected,
// 0.0 when systems were produced against an empty expectation.
func SetPrecision(expected, produced []entities.CalibrationSystem) float64 {
	if len(produced) == 0 {
		if len(expected) == 0 {
			return 1.0
		}
		return 0.0
	}

	expectedSet := make(map[entities.CalibrationSystem]struct{}, len(expected))
	for _, s := range expected {
		expectedSet[s] = struct{}{}
	}

	correct := 0
	for _, s := range produced {
		if _, ok := expectedSet[s]; ok {
			correct++
		}
	}
	return float64(correct) / float64(len(produced))
}

// SetRecall computes the fraction of expected systems that were produced.
// Returns 1.0 when nothing was expected.
func SetRecall(expected, produced []entities.CalibrationSystem) float64 {
	if len(expected) == 0 {
		return 1.0
	}

	producedSet := make(map[entities.CalibrationSystem]struct{}, len(produced))
	for _, s := range produced {
		producedSet[s] = struct{}{}
	}

	found := 0
	for _, s := range expected {
		if _, ok := producedSet[s]; ok {
			found++
		}
	}
	return float64(found) / float64(len(expected))
}
