package signals

import (
	"regexp"
	"strings"
)

// DefaultSpecificityWords is the word count at which a bullet is considered specific.
// Length is a crude stand-in for naming tools and scope; tune it through Assess.
const DefaultSpecificityWords = 10

var wordRe = regexp.MustCompile(`[a-z]+`)

var actionVerbs = map[string]struct{}{
	"built": {}, "created": {}, "designed": {}, "developed": {}, "shipped": {}, "launched": {},
	"led": {}, "managed": {}, "owned": {}, "improved": {}, "optimized": {}, "automated": {},
	"implemented": {}, "delivered": {}, "analyzed": {}, "measured": {}, "deployed": {},
	"trained": {}, "tested": {}, "refactored": {}, "scaled": {}, "reduced": {}, "increased": {},
	"grew": {}, "boosted": {}, "collaborated": {}, "coordinated": {}, "presented": {},
	"researched": {}, "engineered": {}, "integrated": {}, "maintained": {}, "migrated": {},
	"streamlined": {}, "executed": {}, "spearheaded": {},
}

// IsActionVerb reports whether word (case-insensitive) opens achievement-style bullets.
func IsActionVerb(word string) bool {
	_, ok := actionVerbs[strings.ToLower(word)]
	return ok
}

// Quality holds the per-bullet signals.
type Quality struct {
	StartsWithAction bool `json:"starts_with_action"`
	HasMetric        bool `json:"has_metric"`
	HasSpecificity   bool `json:"has_specificity"`
}

// Failed reports whether at least one signal is missing.
func (q Quality) Failed() bool {
	return !q.StartsWithAction || !q.HasMetric || !q.HasSpecificity
}

// Assess derives the quality signals of a single bullet. minWords is the specificity
// threshold; a non-positive value means DefaultSpecificityWords.
func Assess(bullet string, minWords int) Quality {
	if minWords <= 0 {
		minWords = DefaultSpecificityWords
	}

	words := wordRe.FindAllString(strings.ToLower(bullet), -1)
	return Quality{
		StartsWithAction: len(words) > 0 && IsActionVerb(words[0]),
		HasMetric:        HasMetric(bullet),
		HasSpecificity:   len(words) >= minWords,
	}
}
