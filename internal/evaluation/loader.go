package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadGoldenEstimates reads and parses a golden estimate set from a JSON file.
func LoadGoldenEstimates(path string) ([]GoldenEstimate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden estimates file: %w", err)
	}

	var estimates []GoldenEstimate
	if err := json.Unmarshal(data, &estimates); err != nil {
		return nil, fmt.Errorf("failed to parse golden estimates: %w", err)
	}

	return estimates, nil
}

var validDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// ValidateGoldenEstimates checks that all cases have required fields and valid values.
func ValidateGoldenEstimates(estimates []GoldenEstimate) error {
	seen := make(map[string]struct{}, len(estimates))

	for i, e := range estimates {
		if e.ID == "" {
			return fmt.Errorf("estimate at index %d: missing id", i)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("estimate at index %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = struct{}{}

		if e.Request.EstimateText == "" {
			return fmt.Errorf("estimate %q: missing estimate text", e.ID)
		}
		if !validDifficulties[e.Difficulty] {
			return fmt.Errorf("estimate %q: invalid difficulty %q (must be easy/medium/hard)", e.ID, e.Difficulty)
		}
		for _, s := range e.ExpectedBillable {
			if !s.IsValid() {
				return fmt.Errorf("estimate %q: unknown expected system %q", e.ID, s)
			}
		}
	}

	return nil
}
