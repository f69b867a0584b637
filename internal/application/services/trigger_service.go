package services

import (
	"github.com/recalibr/recalibr/backend/internal/domain/entities"
	"github.com/recalibr/recalibr/backend/internal/domain/providers"
	"github.com/recalibr/recalibr/backend/pkg/utils"
)

// TriggerService maps repair operations to calibration candidates through
// the declarative trigger table. Adding a trigger is a data change in the
// rule file, never a code change here; that keeps the rule set auditable.
type TriggerService struct {
	refData     providers.ReferenceDataProvider
	normalizer  *utils.SystemNormalizer
	typeService *CalibrationTypeService
}

// NewTriggerService creates a new trigger resolver.
func NewTriggerService(refData providers.ReferenceDataProvider, normalizer *utils.SystemNormalizer, typeService *CalibrationTypeService) *TriggerService {
	return &TriggerService{refData: refData, normalizer: normalizer, typeService: typeService}
}

// Resolve evaluates every trigger rule against every repair operation and
// the equipment profile. A system is emitted at most once per estimate;
// the first firing rule keeps the explanation.
func (s *TriggerService) Resolve(ops []entities.RepairOperation, profile *entities.EquipmentProfile, brand string) []entities.CalibrationCandidate {
	candidates := []entities.CalibrationCandidate{}
	emitted := make(map[entities.CalibrationSystem]struct{})

	for i := range ops {
		op := &ops[i]
		for _, rule := range s.refData.TriggersFor(op.Component.Category) {
			if _, dup := emitted[rule.System]; dup {
				continue
			}
			if !rule.AllowsOperation(op.Operation) {
				continue
			}

			hasSystem, gateOpen := s.equipmentGate(rule, profile)
			if !gateOpen {
				continue
			}

			emitted[rule.System] = struct{}{}
			candidates = append(candidates, entities.CalibrationCandidate{
				System:           rule.System,
				CalibrationType:  s.typeService.Resolve(brand, rule.System),
				TriggeredBy:      op,
				Confidence:       rule.Confidence,
				Reason:           rule.Reason,
				Condition:        rule.Condition,
				VehicleHasSystem: hasSystem,
			})
		}
	}
	return candidates
}

// equipmentGate applies rule (b)/(c) of the resolver contract. An empty
// required-tag list is direct sensor work and always fires with the system
// presence settled. Otherwise at least one required tag must sit in the
// profile via equivalence-set matching; confirmed or likely membership
// resolves presence to true, possible leaves it nil (needs verification).
func (s *TriggerService) equipmentGate(rule entities.CalibrationTrigger, profile *entities.EquipmentProfile) (*bool, bool) {
	if len(rule.RequiredEquipmentTags) == 0 {
		return boolPtr(true), true
	}

	best := ""
	for _, required := range rule.RequiredEquipmentTags {
		switch {
		case s.normalizer.MatchesAny(required, profile.Confirmed):
			return boolPtr(true), true
		case s.normalizer.MatchesAny(required, profile.Likely):
			best = higherTier(best, "likely")
		case s.normalizer.MatchesAny(required, profile.Possible):
			best = higherTier(best, "possible")
		}
	}

	switch best {
	case "likely":
		return boolPtr(true), true
	case "possible":
		return nil, true
	default:
		return nil, false
	}
}

func higherTier(a, b string) string {
	if tierRank[b] > tierRank[a] {
		return b
	}
	return a
}

func boolPtr(v bool) *bool {
	return &v
}
