package utils

import (
	"testing"

	"github.com/recalibr/recalibr/backend/internal/domain/entities"
)

func testNormalizer() *SystemNormalizer {
	return NewSystemNormalizer(map[entities.CalibrationSystem][]string{
		entities.SystemFrontRadar: {"front radar", "acc radar", "acc_radar", "distance sensor"},
		entities.SystemFrontCamera: {
			"front camera", "forward camera", "windshield camera", "front camera calibration",
		},
		entities.SystemBlindSpotMonitor: {"blind spot monitor", "bsm", "blind spot"},
	})
}

func TestNormalizeTag(t *testing.T) {
	cases := map[string]string{
		"Front Camera (Windshield)": "front_camera_windshield",
		"  ACC_Radar  ":             "acc_radar",
		"blind-spot  monitor":       "blind_spot_monitor",
		"":                          "",
	}
	for in, want := range cases {
		if got := NormalizeTag(in); got != want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanonical_AliasResolves(t *testing.T) {
	n := testNormalizer()
	system, ok := n.Canonical("ACC Radar")
	if !ok || system != entities.SystemFrontRadar {
		t.Errorf("expected front_radar, got %q (ok=%v)", system, ok)
	}
}

func TestCanonical_UnknownTag(t *testing.T) {
	n := testNormalizer()
	if _, ok := n.Canonical("flux capacitor"); ok {
		t.Error("unknown tag must not resolve")
	}
}

func TestEquivalent_SameSet(t *testing.T) {
	n := testNormalizer()
	// Equivalence is set membership, not substring containment.
	if !n.Equivalent("front_radar", "acc_radar") {
		t.Error("front_radar and acc_radar share an equivalence set")
	}
	if n.Equivalent("front_radar", "front_camera") {
		t.Error("different systems are never equivalent")
	}
}

func TestEquivalent_UnknownTagsCompareByNormalForm(t *testing.T) {
	n := testNormalizer()
	if !n.Equivalent("Mystery Sensor", "mystery_sensor") {
		t.Error("unknown tags with equal normal forms are equivalent")
	}
	if n.Equivalent("mystery sensor", "other sensor") {
		t.Error("distinct unknown tags are not equivalent")
	}
}

func TestCanonicalFromText_LongestPhraseWins(t *testing.T) {
	n := testNormalizer()
	system, ok := n.CanonicalFromText("Performed front camera calibration per OEM")
	if !ok || system != entities.SystemFrontCamera {
		t.Errorf("expected front_camera, got %q (ok=%v)", system, ok)
	}
}

func TestCanonicalFromText_WholeTokensOnly(t *testing.T) {
	n := testNormalizer()
	// "bsm" must not match inside an unrelated token.
	if _, ok := n.CanonicalFromText("absmtracker unit"); ok {
		t.Error("alias must match whole tokens, not substrings")
	}
}

func TestSystemsInText_FindsAllDistinct(t *testing.T) {
	n := testNormalizer()
	found := n.SystemsInText("w/ front camera and blind spot monitor, front camera verified")
	if len(found) != 2 {
		t.Fatalf("expected 2 distinct systems, got %v", found)
	}
	seen := map[entities.CalibrationSystem]bool{}
	for _, s := range found {
		seen[s] = true
	}
	if !seen[entities.SystemFrontCamera] || !seen[entities.SystemBlindSpotMonitor] {
		t.Errorf("expected front_camera and blind_spot_monitor, got %v", found)
	}
}

func TestMatchesAny(t *testing.T) {
	n := testNormalizer()
	if !n.MatchesAny("front_radar", []string{"acc_radar", "bsm"}) {
		t.Error("expected alias match through the equivalence set")
	}
	if n.MatchesAny("front_camera", []string{"acc_radar"}) {
		t.Error("no evidence for front_camera")
	}
}
