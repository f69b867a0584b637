package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/recalibr/recalibr/backend/internal/domain/entities"
)

// ignorePatterns reject lines that carry no repair evidence: diagnostics,
// money lines, shop and claim metadata, and calibration recommendations.
// Calibration mentions on an estimate are output of this system, never
// treated as a repair trigger.
var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(pre|post)[\s-]?(repair\s+)?scan\b`),
	regexp.MustCompile(`(?i)\bdiagnos(is|tic|e)\b`),
	regexp.MustCompile(`(?i)\bhealth\s+check\b`),
	regexp.MustCompile(`(?i)\bcalibrat(e|ion|ions)\b`),
	regexp.MustCompile(`(?i)\brelearn\b`),
	regexp.MustCompile(`(?i)\blabor\s+only\b`),
	regexp.MustCompile(`(?i)\b(sub)?total\b`),
	regexp.MustCompile(`(?i)\b(sales\s+)?tax\b`),
	regexp.MustCompile(`(?i)\bdeductible\b`),
	regexp.MustCompile(`(?i)\b(claim|policy|insured|adjuster|appraiser)\b`),
	regexp.MustCompile(`(?i)\b(estimate|supplement)\s+(number|no\.?|#|id|version|total)\b`),
	regexp.MustCompile(`(?i)\bshop\s+(supplies|materials|rate)\b`),
	regexp.MustCompile(`(?i)\bhazardous\s+waste\b`),
	regexp.MustCompile(`(?i)\bbetterment\b`),
	regexp.MustCompile(`(?i)\bsublet\b`),
	regexp.MustCompile(`(?i)\bdisclaimer\b`),
	regexp.MustCompile(`(?i)\bpage\s+\d+\s+of\s+\d+\b`),
	regexp.MustCompile(`(?i)\bcover(age)?\s+(car|vehicle)?\s*wash\b`),
	regexp.MustCompile(`(?i)\bcorrosion\s+protection\b`),
	regexp.MustCompile(`(?i)\bcar\s+cover\b`),
}

type operationPattern struct {
	re *regexp.Regexp
	op entities.OperationType
}

// operationPatterns are consulted in order and the first match wins, so
// the heavier verbs must sit above the lighter ones: R&R and replace
// before R&I, repair above refinish.
var operationPatterns = []operationPattern{
	{regexp.MustCompile(`(?i)\br\s?&\s?r\b|\br/r\b|\bremove\s+(and|&)\s+replace\b`), entities.OperationRemoveReplace},
	{regexp.MustCompile(`(?i)\breplace(ment)?\b|\brepl\b|\brplc\b`), entities.OperationReplace},
	{regexp.MustCompile(`(?i)\br\s?&\s?i\b|\br/i\b|\bremove\s+(and|&)\s+install\b`), entities.OperationRemoveInstall},
	{regexp.MustCompile(`(?i)\bsection(ing|ed)?\b`), entities.OperationSectioning},
	{regexp.MustCompile(`(?i)\balign(ment|ed)?\b`), entities.OperationAlignment},
	{regexp.MustCompile(`(?i)\baim(ing)?\b`), entities.OperationAim},
	{regexp.MustCompile(`(?i)\b(re)?program(ming)?\b|\bflash\b|\binitializ(e|ation)\b|\bcode\s+module\b`), entities.OperationProgram},
	{regexp.MustCompile(`(?i)\brepair(ed)?\b|\brpr\b|\bstraighten\b|\bpull\b`), entities.OperationRepair},
	{regexp.MustCompile(`(?i)\brefinish\b|\brfn\b|\bblend\b|\bpaint\b|\bclear\s?coat\b|\bbase\s?coat\b`), entities.OperationRefinish},
}

var (
	leftPattern  = regexp.MustCompile(`(?i)\b(left|lt|lh|driver'?s?(\s+side)?)\b`)
	rightPattern = regexp.MustCompile(`(?i)\b(right|rt|rh|passenger'?s?(\s+side)?)\b`)
	frontPattern = regexp.MustCompile(`(?i)\b(front|frt)\b`)
	rearPattern  = regexp.MustCompile(`(?i)\b(rear|rr|back)\b`)

	// OEM part numbers on repair lines: at least one digit-bearing token
	// of the common dash-separated shapes.
	partNumberPattern = regexp.MustCompile(`\b[0-9A-Z]{4,6}-[0-9A-Z]{2,6}(-[0-9A-Z]{2,6})?\b`)

	lineNumberPrefix = regexp.MustCompile(`^\s*(\d{1,3})[.)\s]\s*`)
)

type categoryPattern struct {
	match       *regexp.Regexp
	require     *regexp.Regexp // must also match when set
	absent      *regexp.Regexp // must NOT match when set
	category    entities.RepairCategory
	description string
}

// specificCategoryPatterns carry directional context and are tried first
// across the whole pattern corpus; a line saying "left mirror" must never
// fall through to the side-agnostic mirror pattern.
var specificCategoryPatterns = []categoryPattern{
	{match: regexp.MustCompile(`(?i)\bwindshield\b|\bw/?shield\b|\bwindscreen\b`), category: entities.CategoryWindshield, description: "windshield glass"},
	{match: regexp.MustCompile(`(?i)\b(back|rear)\s?glass\b|\bbackglass\b`), category: entities.CategoryRearGlass, description: "back glass"},

	{match: regexp.MustCompile(`(?i)\bbumper(\s+cover)?\b|\bfascia\b`), require: frontPattern, category: entities.CategoryFrontBumper, description: "front bumper cover"},
	{match: regexp.MustCompile(`(?i)\bbumper(\s+cover)?\b|\bfascia\b`), require: rearPattern, category: entities.CategoryRearBumper, description: "rear bumper cover"},
	// Bumper with no direction defaults to front unless a rear token
	// appears anywhere on the line.
	{match: regexp.MustCompile(`(?i)\bbumper(\s+cover)?\b|\bfascia\b`), absent: rearPattern, category: entities.CategoryFrontBumper, description: "front bumper cover"},

	{match: regexp.MustCompile(`(?i)\bmirror\b`), require: leftPattern, category: entities.CategoryLeftMirror, description: "left door mirror"},
	{match: regexp.MustCompile(`(?i)\bmirror\b`), require: rightPattern, category: entities.CategoryRightMirror, description: "right door mirror"},

	{match: regexp.MustCompile(`(?i)\bfender\b`), require: leftPattern, category: entities.CategoryLeftFender, description: "left fender"},
	{match: regexp.MustCompile(`(?i)\bfender\b`), require: rightPattern, category: entities.CategoryRightFender, description: "right fender"},

	{match: regexp.MustCompile(`(?i)\bdoor(\s+(shell|skin|assy|assembly))?\b`), require: leftPattern, absent: rearPattern, category: entities.CategoryLeftFrontDoor, description: "left front door"},
	{match: regexp.MustCompile(`(?i)\bdoor(\s+(shell|skin|assy|assembly))?\b`), require: rightPattern, absent: rearPattern, category: entities.CategoryRightFrontDoor, description: "right front door"},
	{match: regexp.MustCompile(`(?i)\bdoor(\s+(shell|skin|assy|assembly))?\b`), require: leftPattern, category: entities.CategoryLeftRearDoor, description: "left rear door"},
	{match: regexp.MustCompile(`(?i)\bdoor(\s+(shell|skin|assy|assembly))?\b`), require: rightPattern, category: entities.CategoryRightRearDoor, description: "right rear door"},

	{match: regexp.MustCompile(`(?i)\bquarter(\s+panel)?\b|\bqtr\b`), require: leftPattern, category: entities.CategoryLeftQuarterPanel, description: "left quarter panel"},
	{match: regexp.MustCompile(`(?i)\bquarter(\s+panel)?\b|\bqtr\b`), require: rightPattern, category: entities.CategoryRightQuarterPanel, description: "right quarter panel"},

	{match: regexp.MustCompile(`(?i)\b(head\s?lamp|head\s?light)\b`), require: leftPattern, category: entities.CategoryLeftHeadlamp, description: "left headlamp"},
	{match: regexp.MustCompile(`(?i)\b(head\s?lamp|head\s?light)\b`), require: rightPattern, category: entities.CategoryRightHeadlamp, description: "right headlamp"},

	{match: regexp.MustCompile(`(?i)\bliftgate\b|\blift\s?gate\b|\btailgate\b|\bhatch\b`), category: entities.CategoryLiftgate, description: "liftgate"},
	{match: regexp.MustCompile(`(?i)\btrunk(\s+lid)?\b|\bdeck\s?lid\b`), category: entities.CategoryTrunkLid, description: "trunk lid"},
	{match: regexp.MustCompile(`(?i)\bhood\b|\bbonnet\b`), category: entities.CategoryHood, description: "hood panel"},
	{match: regexp.MustCompile(`(?i)\broof(\s+panel)?\b`), category: entities.CategoryRoof, description: "roof panel"},
	{match: regexp.MustCompile(`(?i)\brocker(\s+panel)?\b`), require: leftPattern, category: entities.CategoryLeftRocker, description: "left rocker panel"},
	{match: regexp.MustCompile(`(?i)\brocker(\s+panel)?\b`), require: rightPattern, category: entities.CategoryRightRocker, description: "right rocker panel"},

	{match: regexp.MustCompile(`(?i)\bgrille?\b`), category: entities.CategoryGrille, description: "grille"},
	{match: regexp.MustCompile(`(?i)\bemblem\b|\bbadge\b`), category: entities.CategoryEmblem, description: "emblem"},

	{match: regexp.MustCompile(`(?i)\bsteering\s+column\b|\bcolumn\s+assy\b`), category: entities.CategorySteeringColumn, description: "steering column"},
	{match: regexp.MustCompile(`(?i)\bsteering\s+(gear|rack)\b|\brack\s+(and|&)\s+pinion\b`), category: entities.CategorySteeringRack, description: "steering gear"},
	{match: regexp.MustCompile(`(?i)\bcontrol\s+arm\b|\blower\s+arm\b|\bupper\s+arm\b`), category: entities.CategoryControlArm, description: "control arm"},
	{match: regexp.MustCompile(`(?i)\bknuckle\b`), category: entities.CategoryKnuckle, description: "steering knuckle"},
	{match: regexp.MustCompile(`(?i)\bstrut\b|\bshock(\s+absorber)?\b`), category: entities.CategoryStrut, description: "strut assembly"},

	// Direct sensor hardware lines.
	{match: regexp.MustCompile(`(?i)\b(front|forward|windshield)[\s\w]{0,12}camera\b`), category: entities.CategoryFrontCamera, description: "forward camera unit"},
	{match: regexp.MustCompile(`(?i)\b(rear|backup|back\s?up)[\s\w]{0,8}camera\b`), category: entities.CategoryRearCamera, description: "rear camera unit"},
	{match: regexp.MustCompile(`(?i)\b(surround|360|birds?\s?eye)[\s\w]{0,10}camera\b`), category: entities.CategorySurroundCamera, description: "surround view camera unit"},
	{match: regexp.MustCompile(`(?i)\b(front|forward)[\s\w]{0,10}radar\b|\bdistance\s+sensor\b`), category: entities.CategoryFrontRadar, description: "front radar unit"},
	{match: regexp.MustCompile(`(?i)\brear[\s\w]{0,10}radar\b`), category: entities.CategoryRearRadarSensor, description: "rear radar unit"},
	{match: regexp.MustCompile(`(?i)\bblind\s?spot[\s\w]{0,10}(sensor|radar|module)\b`), category: entities.CategoryBlindSpotSensor, description: "blind spot sensor"},
	{match: regexp.MustCompile(`(?i)\bpark(ing)?\s+(sensor|sonar)\b|\bsonar\s+sensor\b`), category: entities.CategoryParkingSensor, description: "parking sensor"},
	{match: regexp.MustCompile(`(?i)\b(ride\s+)?height\s+sensor\b|\blevel\s+sensor\b`), category: entities.CategoryRideHeightSensor, description: "ride height sensor"},

	{match: regexp.MustCompile(`(?i)\bair\s?bag[\s\w]{0,20}deploy(ed|ment)?\b|\bdeploy(ed)?\s+air\s?bag\b|\bsrs[\s\w]{0,12}deploy`), category: entities.CategoryAirbagDeployment, description: "airbag deployment"},

	{match: regexp.MustCompile(`(?i)\b(4|four)[\s-]?wheel\s+align|\bwheel\s+alignment\b|\balignment\b`), category: entities.CategoryAlignment, description: "wheel alignment"},
	{match: regexp.MustCompile(`(?i)\bsuspension\b`), category: entities.CategorySuspension, description: "suspension"},
}

// fallbackCategoryPatterns are side-agnostic and only consulted when no
// specific pattern matched the line at all.
var fallbackCategoryPatterns = []categoryPattern{
	{match: regexp.MustCompile(`(?i)\bmirror\b`), category: entities.CategoryMirror, description: "door mirror"},
	{match: regexp.MustCompile(`(?i)\b(head\s?lamp|head\s?light)\b`), category: entities.CategoryHeadlamp, description: "headlamp"},
	{match: regexp.MustCompile(`(?i)\b(tail\s?lamp|tail\s?light)\b`), category: entities.CategoryTaillamp, description: "taillamp"},
	{match: regexp.MustCompile(`(?i)\bfog\s?(lamp|light)\b`), category: entities.CategoryFogLamp, description: "fog lamp"},
	{match: regexp.MustCompile(`(?i)\bwheel\b|\brim\b`), category: entities.CategoryWheel, description: "wheel"},
}

// EstimateParserService turns raw estimate text into structured repair
// operations. Parsing is pure and total: malformed input yields zero
// operations, never an error.
type EstimateParserService struct{}

// NewEstimateParserService creates a new estimate parser.
func NewEstimateParserService() *EstimateParserService {
	return &EstimateParserService{}
}

// Parse classifies every line of the estimate, discards non-repair lines,
// and deduplicates by (category, operation, side, position) keeping the
// first occurrence. Output order follows input order.
func (s *EstimateParserService) Parse(text string) []entities.RepairOperation {
	ops := []entities.RepairOperation{}
	if strings.TrimSpace(text) == "" {
		return ops
	}

	seen := make(map[string]struct{})
	for i, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		op, ok := s.classifyLine(i+1, line)
		if !ok {
			continue
		}

		key := op.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ops = append(ops, op)
	}
	return ops
}

func (s *EstimateParserService) classifyLine(lineNumber int, line string) (entities.RepairOperation, bool) {
	for _, ignore := range ignorePatterns {
		if ignore.MatchString(line) {
			return entities.RepairOperation{}, false
		}
	}

	// Estimates often carry their own line numbering; prefer it over the
	// positional index when present.
	if m := lineNumberPrefix.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			lineNumber = n
		}
		line = strings.TrimSpace(line[len(m[0]):])
	}

	operation, hasOperation := detectOperation(line)
	component, hasComponent := detectCategory(line)

	// A line with neither a verb nor a component is noise, not an error.
	if !hasComponent && !hasOperation {
		return entities.RepairOperation{}, false
	}
	if !hasComponent {
		component = entities.ComponentMatch{Category: entities.CategoryUnknown, Description: "unrecognized component"}
	}
	if !hasOperation {
		// A recognized component with no verb is still repair work.
		operation = entities.OperationRepair
	}
	// A bare verb with no component never survives; it gates nothing.
	if component.Category == entities.CategoryUnknown {
		return entities.RepairOperation{}, false
	}

	return entities.RepairOperation{
		LineNumber: lineNumber,
		RawText:    line,
		Operation:  operation,
		Component:  component,
		Location:   detectLocation(line),
		PartNumber: partNumberPattern.FindString(line),
	}, true
}

func detectOperation(line string) (entities.OperationType, bool) {
	for _, p := range operationPatterns {
		if p.re.MatchString(line) {
			return p.op, true
		}
	}
	return "", false
}

func detectCategory(line string) (entities.ComponentMatch, bool) {
	for _, p := range specificCategoryPatterns {
		if match, ok := tryCategory(p, line); ok {
			return match, true
		}
	}
	for _, p := range fallbackCategoryPatterns {
		if match, ok := tryCategory(p, line); ok {
			return match, true
		}
	}
	return entities.ComponentMatch{}, false
}

func tryCategory(p categoryPattern, line string) (entities.ComponentMatch, bool) {
	loc := p.match.FindString(line)
	if loc == "" {
		return entities.ComponentMatch{}, false
	}
	if p.require != nil && !p.require.MatchString(line) {
		return entities.ComponentMatch{}, false
	}
	if p.absent != nil && p.absent.MatchString(line) {
		return entities.ComponentMatch{}, false
	}
	return entities.ComponentMatch{
		Category:    p.category,
		MatchedText: loc,
		Description: p.description,
	}, true
}

func detectLocation(line string) entities.LineLocation {
	var loc entities.LineLocation
	if leftPattern.MatchString(line) {
		side := entities.SideLeft
		loc.Side = &side
	} else if rightPattern.MatchString(line) {
		side := entities.SideRight
		loc.Side = &side
	}
	if frontPattern.MatchString(line) {
		pos := entities.PositionFront
		loc.Position = &pos
	} else if rearPattern.MatchString(line) {
		pos := entities.PositionRear
		loc.Position = &pos
	}
	return loc
}
