package services

import (
	"encoding/json"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/recalibr/recalibr/backend/internal/adapters/providers/vin"
	"github.com/recalibr/recalibr/backend/internal/adapters/refdata"
	"github.com/recalibr/recalibr/backend/internal/domain/entities"
	"github.com/recalibr/recalibr/backend/pkg/utils"
)

func testConfigDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "config")
}

func newTestRefData(t *testing.T) *refdata.FileProvider {
	t.Helper()
	dir := testConfigDir()
	provider, err := refdata.NewFileProvider(refdata.Paths{
		Triggers:          filepath.Join(dir, "calibration_triggers.json"),
		SystemAliases:     filepath.Join(dir, "system_aliases.json"),
		IntroductionYears: filepath.Join(dir, "adas_introduction_years.json"),
		CalibrationTypes:  filepath.Join(dir, "brand_calibration_types.json"),
	})
	if err != nil {
		t.Fatalf("failed to load reference data: %v", err)
	}
	return provider
}

func newTestNormalizer(t *testing.T) *utils.SystemNormalizer {
	t.Helper()
	return utils.NewSystemNormalizer(newTestRefData(t).AliasSets())
}

func newTestScrubService(t *testing.T) *ScrubService {
	t.Helper()
	refData := newTestRefData(t)
	normalizer := utils.NewSystemNormalizer(refData.AliasSets())
	typeService := NewCalibrationTypeService(refData)
	return NewScrubService(
		NewEstimateParserService(),
		NewEquipmentService(refData, normalizer),
		NewTriggerService(refData, normalizer, typeService),
		NewReconciliationService(normalizer, typeService),
		normalizer,
		vin.NewDecoder(),
	)
}

func candidateSystems(result *entities.ScrubResult) []entities.CalibrationSystem {
	systems := make([]entities.CalibrationSystem, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		systems = append(systems, c.System)
	}
	return systems
}

func billableSystems(result *entities.ScrubResult) []entities.CalibrationSystem {
	systems := make([]entities.CalibrationSystem, 0, len(result.Billable))
	for _, b := range result.Billable {
		systems = append(systems, b.System)
	}
	return systems
}

func containsSystem(list []entities.CalibrationSystem, s entities.CalibrationSystem) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestScrub_WindshieldReplacement(t *testing.T) {
	svc := newTestScrubService(t)

	result := svc.Scrub(entities.ScrubRequest{
		EstimateText:        "01. R&R Windshield - laminated glass w/rain sensor",
		Brand:               "toyota",
		Year:                2021,
		SecondaryReportText: "Front Camera Calibration (Static)",
	})

	if len(result.Reconciliation.Matched) != 1 {
		t.Fatalf("expected exactly one matched calibration, got %d", len(result.Reconciliation.Matched))
	}
	matched := result.Reconciliation.Matched[0]
	if matched.System != entities.SystemFrontCamera {
		t.Errorf("expected front_camera, got %q", matched.System)
	}
	if matched.CalibrationType != entities.TypeStatic {
		t.Errorf("expected static calibration, got %q", matched.CalibrationType)
	}
	if result.Summary.Status != entities.StatusOK {
		t.Errorf("expected status OK, got %q", result.Summary.Status)
	}

	billable := billableSystems(result)
	if len(billable) != 1 || billable[0] != entities.SystemFrontCamera {
		t.Errorf("expected billable [front_camera], got %v", billable)
	}
	for _, absent := range []entities.CalibrationSystem{
		entities.SystemRearRadar,
		entities.SystemBlindSpotMonitor,
		entities.SystemSteeringAngleSensor,
	} {
		if containsSystem(candidateSystems(result), absent) {
			t.Errorf("system %q must not appear in candidates", absent)
		}
	}
}

func TestScrub_MirrorBaseReplacement(t *testing.T) {
	svc := newTestScrubService(t)

	result := svc.Scrub(entities.ScrubRequest{
		EstimateText:        "01. Repl RT Mirror base assy w/surround view",
		Brand:               "chevrolet",
		Year:                2022,
		SecondaryReportText: "Surround View Monitor - Dynamic",
	})

	candidates := candidateSystems(result)
	if len(candidates) != 1 || candidates[0] != entities.SystemSurroundViewMonitor {
		t.Fatalf("expected exactly [surround_view_monitor] triggered, got %v", candidates)
	}
	if len(result.Reconciliation.Matched) != 1 {
		t.Fatalf("expected one matched calibration, got %d", len(result.Reconciliation.Matched))
	}
	if result.Reconciliation.Matched[0].CalibrationType != entities.TypeDynamic {
		t.Errorf("expected dynamic calibration, got %q", result.Reconciliation.Matched[0].CalibrationType)
	}
	for _, absent := range []entities.CalibrationSystem{
		entities.SystemBlindSpotMonitor,
		entities.SystemRearRadar,
		entities.SystemRearParkingSensors,
		entities.SystemSteeringAngleSensor,
	} {
		if containsSystem(candidates, absent) {
			t.Errorf("system %q must not appear in candidates", absent)
		}
	}
}

func TestScrub_PaintOnlyEstimate(t *testing.T) {
	svc := newTestScrubService(t)

	result := svc.Scrub(entities.ScrubRequest{
		EstimateText:        "01. Refinish Hood\n02. Blend LT Fender\n03. Refinish Roof",
		Brand:               "honda",
		Year:                2020,
		SecondaryReportText: "Front Camera, Blind Spot Monitor, Backup Camera, Rear Parking Sensors",
	})

	if len(result.Candidates) != 0 {
		t.Fatalf("paint-only estimate must trigger nothing, got %v", candidateSystems(result))
	}
	if len(result.Billable) != 0 {
		t.Errorf("paint-only estimate must bill nothing, got %v", billableSystems(result))
	}
	if result.Summary.Status != entities.StatusOK {
		t.Errorf("expected status OK, got %q", result.Summary.Status)
	}
	for _, present := range []entities.CalibrationSystem{
		entities.SystemFrontCamera,
		entities.SystemBlindSpotMonitor,
		entities.SystemRearCamera,
		entities.SystemRearParkingSensors,
	} {
		if !containsSystem(result.NotTriggered, present) {
			t.Errorf("system %q should be listed as present but not triggered", present)
		}
	}
}

func TestScrub_WheelAlignmentOnly(t *testing.T) {
	svc := newTestScrubService(t)

	result := svc.Scrub(entities.ScrubRequest{
		EstimateText:        "01. 4-Wheel Alignment",
		Brand:               "honda",
		Year:                2019,
		SecondaryReportText: "Steering Angle Sensor Reset",
	})

	candidates := candidateSystems(result)
	if len(candidates) != 1 || candidates[0] != entities.SystemSteeringAngleSensor {
		t.Fatalf("expected exactly [steering_angle_sensor] triggered, got %v", candidates)
	}
	if len(result.Reconciliation.Matched) != 1 {
		t.Fatalf("expected one matched calibration, got %d", len(result.Reconciliation.Matched))
	}
	if result.Summary.Status != entities.StatusOK {
		t.Errorf("expected status OK, got %q", result.Summary.Status)
	}
}

func TestScrub_PhantomDetection(t *testing.T) {
	svc := newTestScrubService(t)

	result := svc.Scrub(entities.ScrubRequest{
		EstimateText: "01. R&I Front Bumper Cover",
		Brand:        "toyota",
		Year:         2021,
	})

	if !containsSystem(candidateSystems(result), entities.SystemFrontRadar) {
		t.Fatalf("front bumper R&I should trigger front_radar, got %v", candidateSystems(result))
	}
	if len(result.Reconciliation.ScrubOnly) == 0 {
		t.Fatal("unconfirmed candidate must be classified scrub-only")
	}
	if result.Summary.Status != entities.StatusDiscrepancy {
		t.Errorf("expected status DISCREPANCY, got %q", result.Summary.Status)
	}
	if containsSystem(billableSystems(result), entities.SystemFrontRadar) {
		t.Error("scrub-only front_radar must be excluded from the billable list")
	}
}

func TestScrub_VINResolvesIdentity(t *testing.T) {
	svc := newTestScrubService(t)

	result := svc.Scrub(entities.ScrubRequest{
		EstimateText:        "01. R&R Windshield",
		VIN:                 "1HGCV1F34LA123456",
		SecondaryReportText: "Front camera calibration (static and dynamic)",
	})

	if result.Vehicle.Brand != "honda" {
		t.Errorf("expected brand honda from VIN, got %q", result.Vehicle.Brand)
	}
	if result.Vehicle.ModelYear != 2020 {
		t.Errorf("expected model year 2020 from VIN, got %d", result.Vehicle.ModelYear)
	}
	if len(result.Reconciliation.Matched) != 1 {
		t.Fatalf("expected one matched calibration, got %d", len(result.Reconciliation.Matched))
	}
	if result.Reconciliation.Matched[0].CalibrationType != entities.TypeStaticAndDynamic {
		t.Errorf("expected static_and_dynamic, got %q", result.Reconciliation.Matched[0].CalibrationType)
	}
}

func TestScrub_CallerIdentityBeatsVIN(t *testing.T) {
	svc := newTestScrubService(t)

	result := svc.Scrub(entities.ScrubRequest{
		EstimateText: "01. R&R Windshield",
		VIN:          "1HGCV1F34LA123456",
		Brand:        "Toyota",
		Year:         2022,
	})

	if result.Vehicle.Brand != "toyota" {
		t.Errorf("caller brand should win over the VIN decode, got %q", result.Vehicle.Brand)
	}
	if result.Vehicle.ModelYear != 2022 {
		t.Errorf("caller year should win over the VIN decode, got %d", result.Vehicle.ModelYear)
	}
}

func TestScrub_EmptyEstimateText(t *testing.T) {
	svc := newTestScrubService(t)

	result := svc.Scrub(entities.ScrubRequest{EstimateText: ""})

	if len(result.RepairOperations) != 0 || len(result.Candidates) != 0 || len(result.Billable) != 0 {
		t.Error("empty estimate must produce an empty result, not an error")
	}
	if result.Error != "" {
		t.Errorf("empty estimate is not an internal error, got %q", result.Error)
	}
	if result.Summary.Status != entities.StatusOK {
		t.Errorf("expected status OK, got %q", result.Summary.Status)
	}
}

func TestScrub_DuplicateLinesCollapse(t *testing.T) {
	svc := newTestScrubService(t)

	result := svc.Scrub(entities.ScrubRequest{
		EstimateText: "01. R&R Windshield\n02. R&R Windshield",
		Brand:        "toyota",
		Year:         2021,
	})

	if len(result.RepairOperations) != 1 {
		t.Errorf("duplicate repair lines must collapse to one, got %d", len(result.RepairOperations))
	}
}

func TestScrub_Deterministic(t *testing.T) {
	svc := newTestScrubService(t)
	req := entities.ScrubRequest{
		EstimateText:        "01. R&R Front Bumper Cover\n02. Repl Grille\n03. R&I RT Headlamp",
		Brand:               "chevrolet",
		Year:                2021,
		SecondaryReportText: "Front radar calibration; Headlamp aim check",
	}

	first := svc.Scrub(req)
	second := svc.Scrub(req)

	// GeneratedAt is the only field allowed to differ between runs.
	first.GeneratedAt = second.GeneratedAt
	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("failed to marshal result: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("failed to marshal result: %v", err)
	}
	if string(firstJSON) != string(secondJSON) {
		t.Error("identical requests must produce identical results")
	}
}
