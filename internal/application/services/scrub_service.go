package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/recalibr/recalibr/backend/internal/domain/entities"
	"github.com/recalibr/recalibr/backend/internal/domain/providers"
	"github.com/recalibr/recalibr/backend/pkg/utils"
)

// ScrubService is the single entry point of the reconciliation engine: one
// synchronous pass from estimate text to a billing-safe calibration list.
// It holds only read-only reference tables, so one instance serves
// concurrent callers with no coordination.
type ScrubService struct {
	parser         *EstimateParserService
	equipment      *EquipmentService
	triggers       *TriggerService
	reconciliation *ReconciliationService
	normalizer     *utils.SystemNormalizer
	vinDecoder     providers.VINDecoder
}

// NewScrubService wires the pipeline components.
func NewScrubService(
	parser *EstimateParserService,
	equipment *EquipmentService,
	triggers *TriggerService,
	reconciliation *ReconciliationService,
	normalizer *utils.SystemNormalizer,
	vinDecoder providers.VINDecoder,
) *ScrubService {
	return &ScrubService{
		parser:         parser,
		equipment:      equipment,
		triggers:       triggers,
		reconciliation: reconciliation,
		normalizer:     normalizer,
		vinDecoder:     vinDecoder,
	}
}

// Scrub runs the full pipeline. It never returns an error or panics past
// this boundary: input-quality failures degrade to empty sections and an
// unexpected internal failure comes back as a well-typed result with the
// Error field set.
func (s *ScrubService) Scrub(req entities.ScrubRequest) (result *entities.ScrubResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("scrub pipeline panicked; returning error result")
			result = &entities.ScrubResult{
				Equipment: entities.EquipmentProfile{
					Confirmed: []string{}, Likely: []string{}, Possible: []string{},
				},
				RepairOperations: []entities.RepairOperation{},
				Candidates:       []entities.CalibrationCandidate{},
				NotTriggered:     []entities.CalibrationSystem{},
				Billable:         []entities.BillableCalibration{},
				Reconciliation: entities.Reconciliation{
					Matched:       []entities.MatchedCalibration{},
					ScrubOnly:     []entities.ScrubOnlyCalibration{},
					SecondaryOnly: []entities.SecondaryOnlyCalibration{},
					TypeConflicts: []entities.TypeConflictCalibration{},
					Status:        entities.StatusOK,
				},
				GeneratedAt: time.Now().UTC(),
				Error:       fmt.Sprintf("internal error: %v", r),
			}
		}
	}()

	vehicle := s.resolveVehicle(req)
	ops := s.parser.Parse(req.EstimateText)
	profile := s.equipment.Build(vehicle, req.EstimateText, req.SecondaryReportText)
	candidates := s.triggers.Resolve(ops, profile, vehicle.Brand)

	// Only candidates whose system presence resolved true enter
	// reconciliation; "possible" candidates stay visible in the candidate
	// list as needs-verification items.
	scrubSet := make([]entities.CalibrationCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.VehicleHasSystem != nil && *c.VehicleHasSystem {
			scrubSet = append(scrubSet, c)
		}
	}

	secondary := s.reconciliation.ParseSecondaryReport(req.SecondaryReportText)
	recon, billable := s.reconciliation.Reconcile(vehicle.Brand, scrubSet, secondary)

	result = &entities.ScrubResult{
		Vehicle:          vehicle,
		Equipment:        *profile,
		RepairOperations: ops,
		Candidates:       candidates,
		NotTriggered:     s.notTriggered(profile, candidates),
		Reconciliation:   recon,
		Billable:         billable,
		GeneratedAt:      time.Now().UTC(),
	}
	result.Summary = summarize(result)

	log.Debug().
		Int("repair_operations", len(ops)).
		Int("candidates", len(candidates)).
		Int("billable", len(billable)).
		Str("status", string(recon.Status)).
		Msg("scrub completed")

	return result
}

// resolveVehicle prefers caller-supplied brand/year and falls back to the
// VIN decode; a VIN that fails plausibility is treated as absent.
func (s *ScrubService) resolveVehicle(req entities.ScrubRequest) entities.Vehicle {
	vehicle := entities.Vehicle{
		VIN:         strings.TrimSpace(req.VIN),
		Brand:       strings.ToLower(strings.TrimSpace(req.Brand)),
		ModelYear:   req.Year,
		Description: strings.TrimSpace(req.VehicleDescription),
	}

	if (vehicle.Brand == "" || vehicle.ModelYear == 0) && vehicle.VIN != "" && s.vinDecoder != nil {
		if decoded, ok := s.vinDecoder.Decode(vehicle.VIN); ok {
			if vehicle.Brand == "" {
				vehicle.Brand = decoded.Brand
			}
			if vehicle.ModelYear == 0 {
				vehicle.ModelYear = decoded.ModelYear
			}
		}
	}
	return vehicle
}

// notTriggered lists systems the vehicle demonstrably carries (confirmed
// or likely) that no repair line touched. Informational: present but
// untouched equipment is exactly what a paint-only estimate produces.
func (s *ScrubService) notTriggered(profile *entities.EquipmentProfile, candidates []entities.CalibrationCandidate) []entities.CalibrationSystem {
	triggered := make(map[entities.CalibrationSystem]struct{}, len(candidates))
	for _, c := range candidates {
		triggered[c.System] = struct{}{}
	}

	out := []entities.CalibrationSystem{}
	seen := make(map[entities.CalibrationSystem]struct{})
	for _, tag := range append(append([]string{}, profile.Confirmed...), profile.Likely...) {
		system, ok := s.normalizer.Canonical(tag)
		if !ok {
			continue
		}
		if _, isTriggered := triggered[system]; isTriggered {
			continue
		}
		if _, dup := seen[system]; dup {
			continue
		}
		seen[system] = struct{}{}
		out = append(out, system)
	}
	return out
}

func summarize(r *entities.ScrubResult) entities.ScrubSummary {
	status := r.Reconciliation.Status
	needsAttention := status != entities.StatusOK
	if !needsAttention {
		for _, c := range r.Candidates {
			if c.VehicleHasSystem == nil || c.Condition != "" {
				needsAttention = true
				break
			}
		}
	}

	return entities.ScrubSummary{
		RepairOperationCount: len(r.RepairOperations),
		CandidateCount:       len(r.Candidates),
		BillableCount:        len(r.Billable),
		MatchedCount:         len(r.Reconciliation.Matched),
		ScrubOnlyCount:       len(r.Reconciliation.ScrubOnly),
		SecondaryOnlyCount:   len(r.Reconciliation.SecondaryOnly),
		TypeConflictCount:    len(r.Reconciliation.TypeConflicts),
		NeedsAttention:       needsAttention,
		Status:               status,
	}
}
