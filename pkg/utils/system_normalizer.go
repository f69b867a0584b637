package utils

import (
	"regexp"
	"sort"
	"strings"

	"github.com/recalibr/recalibr/backend/internal/domain/entities"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeTag collapses an equipment tag or system name to its canonical
// comparable form: lowercase, punctuation and whitespace folded to single
// underscores. "Front Camera (Windshield)" and "front_camera windshield"
// normalize identically.
func NormalizeTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlphaNum.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// SystemNormalizer resolves free-text system mentions and equipment tags
// to the canonical CalibrationSystem vocabulary through alias equivalence
// sets. Two strings are equivalent when they resolve to the same canonical
// system, not when one textually contains the other.
type SystemNormalizer struct {
	byAlias map[string]entities.CalibrationSystem
	// phrases holds normalized aliases longest-first for free-text scans,
	// so "rear cross traffic radar" wins over "radar".
	phrases []aliasPhrase
}

type aliasPhrase struct {
	norm   string
	system entities.CalibrationSystem
}

// NewSystemNormalizer builds the lookup index from an alias table
// (canonical system → known aliases). The canonical name itself is always
// a member of its own equivalence set.
func NewSystemNormalizer(aliasSets map[entities.CalibrationSystem][]string) *SystemNormalizer {
	n := &SystemNormalizer{
		byAlias: make(map[string]entities.CalibrationSystem),
	}
	for system, aliases := range aliasSets {
		n.add(string(system), system)
		for _, alias := range aliases {
			n.add(alias, system)
		}
	}
	// Longest alias first so specific phrases beat generic ones; ties
	// break lexically to keep scan order stable across processes.
	sort.Slice(n.phrases, func(i, j int) bool {
		if len(n.phrases[i].norm) != len(n.phrases[j].norm) {
			return len(n.phrases[i].norm) > len(n.phrases[j].norm)
		}
		return n.phrases[i].norm < n.phrases[j].norm
	})
	return n
}

func (n *SystemNormalizer) add(alias string, system entities.CalibrationSystem) {
	norm := NormalizeTag(alias)
	if norm == "" {
		return
	}
	if _, exists := n.byAlias[norm]; !exists {
		n.byAlias[norm] = system
		n.phrases = append(n.phrases, aliasPhrase{norm: norm, system: system})
	}
}

// Canonical resolves a tag to its canonical system by exact equivalence-set
// membership after normalization.
func (n *SystemNormalizer) Canonical(tag string) (entities.CalibrationSystem, bool) {
	system, ok := n.byAlias[NormalizeTag(tag)]
	return system, ok
}

// CanonicalFromText resolves a free-text mention (a secondary-report line,
// an estimate note) by scanning for the longest known alias phrase it
// contains as a whole-token sequence.
func (n *SystemNormalizer) CanonicalFromText(text string) (entities.CalibrationSystem, bool) {
	norm := NormalizeTag(text)
	if norm == "" {
		return "", false
	}
	if system, ok := n.byAlias[norm]; ok {
		return system, true
	}
	padded := "_" + norm + "_"
	for _, p := range n.phrases {
		if strings.Contains(padded, "_"+p.norm+"_") {
			return p.system, true
		}
	}
	return "", false
}

// SystemsInText returns every distinct canonical system whose alias
// phrases appear in the text. Used to harvest feature mentions from
// estimate notes ("w/surround view", "equipped with blind spot monitor").
func (n *SystemNormalizer) SystemsInText(text string) []entities.CalibrationSystem {
	norm := NormalizeTag(text)
	if norm == "" {
		return nil
	}
	padded := "_" + norm + "_"
	var found []entities.CalibrationSystem
	seen := make(map[entities.CalibrationSystem]struct{})
	for _, p := range n.phrases {
		if _, dup := seen[p.system]; dup {
			continue
		}
		if strings.Contains(padded, "_"+p.norm+"_") {
			seen[p.system] = struct{}{}
			found = append(found, p.system)
		}
	}
	return found
}

// Equivalent reports whether two tags belong to the same equivalence set.
// Tags unknown to the alias table are equivalent only when their
// normalized forms are equal.
func (n *SystemNormalizer) Equivalent(a, b string) bool {
	na, nb := NormalizeTag(a), NormalizeTag(b)
	if na == nb {
		return na != ""
	}
	sa, okA := n.byAlias[na]
	sb, okB := n.byAlias[nb]
	return okA && okB && sa == sb
}

// MatchesAny reports whether a required tag is equivalent to at least one
// evidence tag.
func (n *SystemNormalizer) MatchesAny(required string, evidence []string) bool {
	for _, tag := range evidence {
		if n.Equivalent(required, tag) {
			return true
		}
	}
	return false
}
