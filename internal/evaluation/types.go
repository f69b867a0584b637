package evaluation

import (
	"time"

	"github.com/recalibr/recalibr/backend/internal/domain/entities"
)

// GoldenEstimate is one labeled regression case: a full scrub request with
// the billable outcome the rule tables are expected to produce.
type GoldenEstimate struct {
	ID               string                        `json:"id"`
	Description      string                        `json:"description"`
	Request          entities.ScrubRequest         `json:"request"`
	ExpectedBillable []entities.CalibrationSystem  `json:"expected_billable"`
	ExpectedStatus   entities.ReconciliationStatus `json:"expected_status"`
	Difficulty       string                        `json:"difficulty"` // easy, medium, hard
}

// EvalResult holds the evaluation outcome for a single golden estimate.
type EvalResult struct {
	EstimateID      string                       `json:"estimate_id"`
	Description     string                       `json:"description"`
	Difficulty      string                       `json:"difficulty"`
	Precision       float64                      `json:"precision"`
	Recall          float64                      `json:"recall"`
	StatusCorrect   bool                         `json:"status_correct"`
	BillableSystems []entities.CalibrationSystem `json:"billable_systems"`
	Latency         time.Duration                `json:"latency_ns"`
}

// EvalSummary holds aggregate metrics across all golden estimates.
type EvalSummary struct {
	TotalEstimates int                           `json:"total_estimates"`
	AvgPrecision   float64                       `json:"avg_precision"`
	AvgRecall      float64                       `json:"avg_recall"`
	StatusAccuracy float64                       `json:"status_accuracy"`
	AvgLatency     time.Duration                 `json:"avg_latency_ns"`
	ByDifficulty   map[string]*DifficultySummary `json:"by_difficulty"`
}

// DifficultySummary holds metrics grouped by case difficulty.
type DifficultySummary struct {
	Count        int     `json:"count"`
	AvgPrecision float64 `json:"avg_precision"`
	AvgRecall    float64 `json:"avg_recall"`
}
