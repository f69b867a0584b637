package entities

// ReconciliationStatus summarizes how cleanly the triggered candidates and
// the secondary report agreed.
type ReconciliationStatus string

const (
	// StatusOK means zero discrepancies, or only secondary-only additions.
	StatusOK ReconciliationStatus = "OK"
	// StatusDiscrepancy means at least one repair-triggered candidate the
	// secondary report did not confirm; review before billing.
	StatusDiscrepancy ReconciliationStatus = "DISCREPANCY"
	// StatusNeedsReview means both sides agree a calibration is needed but
	// disagree on the procedure type, with no unconfirmed candidates.
	StatusNeedsReview ReconciliationStatus = "NEEDS_REVIEW"
)

// MatchedCalibration is a candidate confirmed by the secondary report.
type MatchedCalibration struct {
	System          CalibrationSystem `json:"system"`
	CalibrationType CalibrationType   `json:"calibration_type"`
	TriggeredBy     *RepairOperation  `json:"triggered_by,omitempty"`
	SecondaryText   string            `json:"secondary_text"`
}

// ScrubOnlyCalibration is a repair-triggered candidate the secondary
// report did not mention. Treated as a possible phantom: excluded from
// billing, surfaced for manual verification.
type ScrubOnlyCalibration struct {
	System          CalibrationSystem `json:"system"`
	CalibrationType CalibrationType   `json:"calibration_type"`
	TriggeredBy     *RepairOperation  `json:"triggered_by,omitempty"`
	Reason          string            `json:"reason"`
	Confidence      Confidence        `json:"confidence"`
}

// SecondaryOnlyCalibration is a calibration only the secondary report
// knows about. The report is the trusted source, so these are billable.
type SecondaryOnlyCalibration struct {
	RawText         string            `json:"raw_text"`
	System          CalibrationSystem `json:"system"`
	CalibrationType CalibrationType   `json:"calibration_type"`
}

// TypeConflictCalibration is a system both sides require but with
// different procedure types.
type TypeConflictCalibration struct {
	System        CalibrationSystem `json:"system"`
	ScrubType     CalibrationType   `json:"scrub_type"`
	SecondaryType CalibrationType   `json:"secondary_type"`
	TriggeredBy   *RepairOperation  `json:"triggered_by,omitempty"`
}

// SecondaryCalibration is one parsed item from the secondary report before
// reconciliation: raw text, its canonical system, and the procedure type
// if the text stated one.
type SecondaryCalibration struct {
	RawText         string            `json:"raw_text"`
	System          CalibrationSystem `json:"system"`
	CalibrationType CalibrationType   `json:"calibration_type,omitempty"`
}

// BillableCalibration is one line of the final billing recommendation.
type BillableCalibration struct {
	System          CalibrationSystem `json:"system"`
	CalibrationType CalibrationType   `json:"calibration_type"`
	Source          string            `json:"source"` // matched, secondary_only, type_conflict
	Detail          string            `json:"detail,omitempty"`
}

// Reconciliation is the full breakdown of the candidate list against the
// secondary report.
type Reconciliation struct {
	Matched       []MatchedCalibration       `json:"matched"`
	ScrubOnly     []ScrubOnlyCalibration     `json:"scrub_only"`
	SecondaryOnly []SecondaryOnlyCalibration `json:"secondary_only"`
	TypeConflicts []TypeConflictCalibration  `json:"type_conflicts"`
	Status        ReconciliationStatus       `json:"status"`
}
