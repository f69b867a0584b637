package services

import (
	"regexp"
	"strings"

	"github.com/recalibr/recalibr/backend/internal/domain/entities"
	"github.com/recalibr/recalibr/backend/pkg/utils"
)

var secondarySplit = regexp.MustCompile(`[;,\n]+`)

// calibrationMention separates procedure items ("Front Camera Calibration",
// "Steering Angle Sensor Reset") from bare equipment lists. A secondary
// report that only enumerates fitted systems is equipment evidence, not a
// set of performed calibrations.
var calibrationMention = regexp.MustCompile(`(?i)\b(calibrat|recalibrat|reset|relearn|initializ|aim)`)

var (
	staticMention          = regexp.MustCompile(`(?i)\bstatic\b`)
	dynamicMention         = regexp.MustCompile(`(?i)\bdynamic\b`)
	selfLearningMention    = regexp.MustCompile(`(?i)\bself[\s-]?learn(ing)?\b`)
	programmingOnlyMention = regexp.MustCompile(`(?i)\bprogram(ming)?\s+only\b`)
)

// ReconciliationService cross-checks the repair-triggered candidate set
// against the independently produced secondary report. Both sides reduce
// to the canonical system vocabulary before any comparison; string
// equality on raw text is never used.
type ReconciliationService struct {
	normalizer  *utils.SystemNormalizer
	typeService *CalibrationTypeService
}

// NewReconciliationService creates a new reconciliation engine.
func NewReconciliationService(normalizer *utils.SystemNormalizer, typeService *CalibrationTypeService) *ReconciliationService {
	return &ReconciliationService{normalizer: normalizer, typeService: typeService}
}

// ParseSecondaryReport splits the report text on ';', ',' and newlines and
// resolves each item to a canonical system, tagging the procedure type
// when the text states one. Items naming no known system are dropped as
// non-calibration prose, and items naming a system with neither a
// procedure word nor a calibration type are treated as an equipment
// listing rather than a performed calibration.
func (s *ReconciliationService) ParseSecondaryReport(text string) []entities.SecondaryCalibration {
	items := []entities.SecondaryCalibration{}
	if strings.TrimSpace(text) == "" {
		return items
	}

	seen := make(map[entities.CalibrationSystem]struct{})
	for _, chunk := range secondarySplit.Split(text, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		system, ok := s.normalizer.CanonicalFromText(chunk)
		if !ok {
			continue
		}
		calType := detectTypeMention(chunk)
		if calType == "" && !calibrationMention.MatchString(chunk) {
			continue
		}
		if _, dup := seen[system]; dup {
			continue
		}
		seen[system] = struct{}{}
		items = append(items, entities.SecondaryCalibration{
			RawText:         chunk,
			System:          system,
			CalibrationType: calType,
		})
	}
	return items
}

func detectTypeMention(text string) entities.CalibrationType {
	switch {
	case programmingOnlyMention.MatchString(text):
		return entities.TypeProgrammingOnly
	case selfLearningMention.MatchString(text):
		return entities.TypeSelfLearning
	case staticMention.MatchString(text) && dynamicMention.MatchString(text):
		return entities.TypeStaticAndDynamic
	case staticMention.MatchString(text):
		return entities.TypeStatic
	case dynamicMention.MatchString(text):
		return entities.TypeDynamic
	}
	return ""
}

// Reconcile classifies every scrub-set candidate and every secondary item
// into exactly one outcome. Billing policy is deliberate and must hold:
// ScrubOnly items are never billable (likely phantoms pending manual
// verification); SecondaryOnly items are billable because the independent
// report is the trusted source; TypeConflict items bill with the
// OEM-derived scrub type.
func (s *ReconciliationService) Reconcile(brand string, scrubSet []entities.CalibrationCandidate, secondary []entities.SecondaryCalibration) (entities.Reconciliation, []entities.BillableCalibration) {
	recon := entities.Reconciliation{
		Matched:       []entities.MatchedCalibration{},
		ScrubOnly:     []entities.ScrubOnlyCalibration{},
		SecondaryOnly: []entities.SecondaryOnlyCalibration{},
		TypeConflicts: []entities.TypeConflictCalibration{},
	}

	consumed := make([]bool, len(secondary))

	for _, candidate := range scrubSet {
		matchIdx := -1
		for i, item := range secondary {
			if consumed[i] {
				continue
			}
			if item.System == candidate.System ||
				s.normalizer.Equivalent(string(item.System), string(candidate.System)) {
				matchIdx = i
				break
			}
		}

		if matchIdx < 0 {
			recon.ScrubOnly = append(recon.ScrubOnly, entities.ScrubOnlyCalibration{
				System:          candidate.System,
				CalibrationType: candidate.CalibrationType,
				TriggeredBy:     candidate.TriggeredBy,
				Reason:          candidate.Reason,
				Confidence:      candidate.Confidence,
			})
			continue
		}

		item := secondary[matchIdx]
		consumed[matchIdx] = true

		if item.CalibrationType != "" && item.CalibrationType != candidate.CalibrationType {
			recon.TypeConflicts = append(recon.TypeConflicts, entities.TypeConflictCalibration{
				System:        candidate.System,
				ScrubType:     candidate.CalibrationType,
				SecondaryType: item.CalibrationType,
				TriggeredBy:   candidate.TriggeredBy,
			})
			continue
		}

		recon.Matched = append(recon.Matched, entities.MatchedCalibration{
			System:          candidate.System,
			CalibrationType: candidate.CalibrationType,
			TriggeredBy:     candidate.TriggeredBy,
			SecondaryText:   item.RawText,
		})
	}

	for i, item := range secondary {
		if consumed[i] {
			continue
		}
		calType := item.CalibrationType
		if calType == "" {
			calType = s.typeService.Resolve(brand, item.System)
		}
		recon.SecondaryOnly = append(recon.SecondaryOnly, entities.SecondaryOnlyCalibration{
			RawText:         item.RawText,
			System:          item.System,
			CalibrationType: calType,
		})
	}

	recon.Status = reconciliationStatus(recon)
	return recon, billableList(recon)
}

func reconciliationStatus(r entities.Reconciliation) entities.ReconciliationStatus {
	switch {
	case len(r.ScrubOnly) > 0:
		return entities.StatusDiscrepancy
	case len(r.TypeConflicts) > 0:
		return entities.StatusNeedsReview
	default:
		return entities.StatusOK
	}
}

// billableList assembles the final billing recommendation. ScrubOnly is
// excluded unconditionally.
func billableList(r entities.Reconciliation) []entities.BillableCalibration {
	billable := []entities.BillableCalibration{}
	for _, m := range r.Matched {
		billable = append(billable, entities.BillableCalibration{
			System:          m.System,
			CalibrationType: m.CalibrationType,
			Source:          "matched",
			Detail:          m.SecondaryText,
		})
	}
	for _, so := range r.SecondaryOnly {
		billable = append(billable, entities.BillableCalibration{
			System:          so.System,
			CalibrationType: so.CalibrationType,
			Source:          "secondary_only",
			Detail:          so.RawText,
		})
	}
	for _, tc := range r.TypeConflicts {
		billable = append(billable, entities.BillableCalibration{
			System:          tc.System,
			CalibrationType: tc.ScrubType,
			Source:          "type_conflict",
			Detail:          "secondary report specifies " + string(tc.SecondaryType),
		})
	}
	return billable
}
