package entities

import "time"

// ScrubRequest carries everything the engine needs for one estimate. All
// fields except EstimateText are optional; missing evidence degrades the
// result instead of failing it.
type ScrubRequest struct {
	EstimateText        string `json:"estimate_text"`
	VIN                 string `json:"vin,omitempty"`
	Brand               string `json:"brand,omitempty"`
	Year                int    `json:"year,omitempty"`
	SecondaryReportText string `json:"secondary_report_text,omitempty"`
	VehicleDescription  string `json:"vehicle_description,omitempty"`
}

// ScrubSummary is the headline block consumers read first.
type ScrubSummary struct {
	RepairOperationCount int                  `json:"repair_operation_count"`
	CandidateCount       int                  `json:"candidate_count"`
	BillableCount        int                  `json:"billable_count"`
	MatchedCount         int                  `json:"matched_count"`
	ScrubOnlyCount       int                  `json:"scrub_only_count"`
	SecondaryOnlyCount   int                  `json:"secondary_only_count"`
	TypeConflictCount    int                  `json:"type_conflict_count"`
	NeedsAttention       bool                 `json:"needs_attention"`
	Status               ReconciliationStatus `json:"status"`
}

// ScrubResult is the complete, immutable output of one engine invocation.
// GeneratedAt is metadata and excluded from any equality comparison.
type ScrubResult struct {
	Vehicle          Vehicle                `json:"vehicle"`
	Equipment        EquipmentProfile       `json:"equipment"`
	RepairOperations []RepairOperation      `json:"repair_operations"`
	Candidates       []CalibrationCandidate `json:"candidates"`
	// NotTriggered lists systems the vehicle carries that no repair line
	// touched. Informational only.
	NotTriggered   []CalibrationSystem   `json:"not_triggered"`
	Reconciliation Reconciliation        `json:"reconciliation"`
	Billable       []BillableCalibration `json:"billable"`
	Summary        ScrubSummary          `json:"summary"`
	GeneratedAt    time.Time             `json:"generated_at"`
	// Error is set only when an unexpected internal failure was recovered;
	// the rest of the result is well-typed but empty.
	Error string `json:"error,omitempty"`
}
