package services

import (
	"testing"

	"github.com/recalibr/recalibr/backend/internal/domain/entities"
)

func parseOne(t *testing.T, line string) entities.RepairOperation {
	t.Helper()
	ops := NewEstimateParserService().Parse(line)
	if len(ops) != 1 {
		t.Fatalf("expected one operation from %q, got %d", line, len(ops))
	}
	return ops[0]
}

func TestParse_WindshieldRemoveReplace(t *testing.T) {
	op := parseOne(t, "01. R&R Windshield - laminated glass w/rain sensor")
	if op.Operation != entities.OperationRemoveReplace {
		t.Errorf("expected remove_replace, got %q", op.Operation)
	}
	if op.Component.Category != entities.CategoryWindshield {
		t.Errorf("expected windshield, got %q", op.Component.Category)
	}
	if op.LineNumber != 1 {
		t.Errorf("expected line number 1 from the prefix, got %d", op.LineNumber)
	}
}

func TestParse_RightMirrorReplace(t *testing.T) {
	op := parseOne(t, "Repl RT Mirror base assy w/surround view")
	if op.Operation != entities.OperationReplace {
		t.Errorf("expected replace, got %q", op.Operation)
	}
	if op.Component.Category != entities.CategoryRightMirror {
		t.Errorf("expected right_mirror, got %q", op.Component.Category)
	}
	if op.Location.Side == nil || *op.Location.Side != entities.SideRight {
		t.Error("expected right side qualifier")
	}
}

func TestParse_FourWheelAlignment(t *testing.T) {
	op := parseOne(t, "4-Wheel Alignment")
	if op.Component.Category != entities.CategoryAlignment {
		t.Errorf("expected alignment, got %q", op.Component.Category)
	}
	if op.Operation != entities.OperationAlignment {
		t.Errorf("expected alignment operation, got %q", op.Operation)
	}
}

func TestParse_BumperDefaultsToFront(t *testing.T) {
	op := parseOne(t, "R&R Bumper Cover")
	if op.Component.Category != entities.CategoryFrontBumper {
		t.Errorf("directionless bumper should default to front, got %q", op.Component.Category)
	}
}

func TestParse_RearBumper(t *testing.T) {
	op := parseOne(t, "R&R Rear Bumper Cover")
	if op.Component.Category != entities.CategoryRearBumper {
		t.Errorf("expected rear_bumper, got %q", op.Component.Category)
	}
}

func TestParse_CategoryWithoutVerbIsRepair(t *testing.T) {
	op := parseOne(t, "Left quarter panel - dent")
	if op.Component.Category != entities.CategoryLeftQuarterPanel {
		t.Errorf("expected left_quarter_panel, got %q", op.Component.Category)
	}
	if op.Operation != entities.OperationRepair {
		t.Errorf("component with no verb defaults to repair, got %q", op.Operation)
	}
}

func TestParse_VerbWithoutCategoryIsDropped(t *testing.T) {
	ops := NewEstimateParserService().Parse("R&R unidentified bracket")
	if len(ops) != 0 {
		t.Errorf("a verb with no recognized component must be dropped, got %v", ops)
	}
}

func TestParse_IgnoresNonRepairLines(t *testing.T) {
	text := "Pre-repair scan\n" +
		"Front camera calibration\n" +
		"Subtotal  1,240.00\n" +
		"Sales tax  86.80\n" +
		"Claim # 12-3456\n" +
		"Sublet - glass vendor"
	ops := NewEstimateParserService().Parse(text)
	if len(ops) != 0 {
		t.Errorf("diagnostic, money and calibration lines must be ignored, got %d operations", len(ops))
	}
}

func TestParse_LineNumberPrefixWins(t *testing.T) {
	op := parseOne(t, "17. R&R Windshield")
	if op.LineNumber != 17 {
		t.Errorf("printed line number should override position, got %d", op.LineNumber)
	}
}

func TestParse_PartNumberExtraction(t *testing.T) {
	op := parseOne(t, "R&R Windshield 56101-TLA-A01")
	if op.PartNumber != "56101-TLA-A01" {
		t.Errorf("expected part number extracted, got %q", op.PartNumber)
	}
}

func TestParse_OperationPriority(t *testing.T) {
	// A line carrying both R&R and refinish wording is the heavier verb.
	op := parseOne(t, "R&R and refinish front bumper cover")
	if op.Operation != entities.OperationRemoveReplace {
		t.Errorf("R&R outranks refinish, got %q", op.Operation)
	}
}

func TestParse_ReplaceOutranksRemoveInstall(t *testing.T) {
	op := parseOne(t, "R&I front bumper cover, replace impact absorber")
	if op.Operation != entities.OperationReplace {
		t.Errorf("replace outranks R&I, got %q", op.Operation)
	}
}

func TestParse_DirectSensorLine(t *testing.T) {
	op := parseOne(t, "Repl Front radar sensor bracket")
	if op.Component.Category != entities.CategoryFrontRadar {
		t.Errorf("expected front_radar, got %q", op.Component.Category)
	}
}

func TestParse_OrderPreserved(t *testing.T) {
	text := "01. R&R Windshield\n02. R&R Rear Bumper Cover\n03. Repl Grille"
	ops := NewEstimateParserService().Parse(text)
	if len(ops) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(ops))
	}
	want := []entities.RepairCategory{
		entities.CategoryWindshield,
		entities.CategoryRearBumper,
		entities.CategoryGrille,
	}
	for i, w := range want {
		if ops[i].Component.Category != w {
			t.Errorf("operation %d: expected %q, got %q", i, w, ops[i].Component.Category)
		}
	}
}
