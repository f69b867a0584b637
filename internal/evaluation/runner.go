package evaluation

import (
	"time"

	"github.com/recalibr/recalibr/backend/internal/domain/entities"
)

// Scrubber is the slice of the scrub service the runner needs.
type Scrubber interface {
	Scrub(req entities.ScrubRequest) *entities.ScrubResult
}

// Runner runs evaluation across a set of golden estimates.
type Runner struct {
	scrubService Scrubber
}

func NewRunner(svc Scrubber) *Runner {
	return &Runner{scrubService: svc}
}

func (r *Runner) Run(estimates []GoldenEstimate) *EvalSummary {
	summary := &EvalSummary{
		TotalEstimates: len(estimates),
		ByDifficulty:   make(map[string]*DifficultySummary),
	}

	statusCorrect := 0
	for _, ge := range estimates {
		start := time.Now()
		scrub := r.scrubService.Scrub(ge.Request)
		duration := time.Since(start)

		produced := make([]entities.CalibrationSystem, 0, len(scrub.Billable))
		for _, b := range scrub.Billable {
			produced = append(produced, b.System)
		}

		result := EvalResult{
			EstimateID:      ge.ID,
			Description:     ge.Description,
			Difficulty:      ge.Difficulty,
			Precision:       SetPrecision(ge.ExpectedBillable, produced),
			Recall:          SetRecall(ge.ExpectedBillable, produced),
			StatusCorrect:   scrub.Summary.Status == ge.ExpectedStatus,
			BillableSystems: produced,
			Latency:         duration,
		}
		if result.StatusCorrect {
			statusCorrect++
		}

		r.updateSummary(summary, result)
	}

	if summary.TotalEstimates > 0 {
		n := float64(summary.TotalEstimates)
		summary.AvgPrecision /= n
		summary.AvgRecall /= n
		summary.StatusAccuracy = float64(statusCorrect) / n
		summary.AvgLatency /= time.Duration(summary.TotalEstimates)
		for _, ds := range summary.ByDifficulty {
			if ds.Count > 0 {
				ds.AvgPrecision /= float64(ds.Count)
				ds.AvgRecall /= float64(ds.Count)
			}
		}
	}
	return summary
}

func (r *Runner) updateSummary(summary *EvalSummary, result EvalResult) {
	summary.AvgPrecision += result.Precision
	summary.AvgRecall += result.Recall
	summary.AvgLatency += result.Latency

	ds, ok := summary.ByDifficulty[result.Difficulty]
	if !ok {
		ds = &DifficultySummary{}
		summary.ByDifficulty[result.Difficulty] = ds
	}
	ds.Count++
	ds.AvgPrecision += result.Precision
	ds.AvgRecall += result.Recall
}
