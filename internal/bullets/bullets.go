// Package bullets produces per-bullet advice and offline, rule-based rewrites.
package bullets

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/resume-analyzer/internal/signals"
)

const (
	DefaultMaxSuggestions = 15
	DefaultMaxRewrites    = 20

	AdviceActionVerb = "Start with a strong action verb (Built, Led, Designed, Automated, Improved)."
	AdviceSpecifics  = "Add tools/tech + scope (what you used and what you touched)."
	AdviceMetric     = "Add a measurable result (%, $, time saved, scale, counts)."
)

// DefaultVerb opens rewritten bullets that lack an action verb.
const DefaultVerb = "Built"

const (
	metricClause      = " resulting in [measurable outcome], improving [metric] by [X%/X]."
	metricPlaceholder = "improving [metric] by [X%/X]."
	metricGeneric     = "improving key metrics."
	scopeClause       = " using [tool/technique] across [scope/users/data]."
)

// Suggestion is the advice collected for one weak bullet.
type Suggestion struct {
	Original    string   `json:"original"`
	Suggestions []string `json:"suggestions"`
}

// Rewrite pairs a bullet with its rewritten form.
type Rewrite struct {
	Original string `json:"original"`
	Rewrite  string `json:"rewrite"`
}

// Suggest returns advice for bullets missing an action verb, specifics or a metric, in that
// order. Bullets with no issues are skipped and at most max items are returned.
func Suggest(bullets []string, max, minWords int) []Suggestion {
	if max <= 0 {
		max = DefaultMaxSuggestions
	}

	out := []Suggestion{}
	for _, b := range bullets {
		if len(out) >= max {
			break
		}

		q := signals.Assess(b, minWords)
		if !q.Failed() {
			continue
		}

		var advice []string
		if !q.StartsWithAction {
			advice = append(advice, AdviceActionVerb)
		}
		if !q.HasSpecificity {
			advice = append(advice, AdviceSpecifics)
		}
		if !q.HasMetric {
			advice = append(advice, AdviceMetric)
		}
		out = append(out, Suggestion{Original: b, Suggestions: advice})
	}
	return out
}

// RewriteBullet rewrites a single bullet. Blank input is returned unchanged. Placeholders in
// square brackets mark what the author still has to fill in.
func RewriteBullet(bullet string, minWords int) string {
	base := strings.TrimSpace(bullet)
	if base == "" {
		return bullet
	}

	q := signals.Assess(bullet, minWords)

	if !q.StartsWithAction {
		base = DefaultVerb + " " + lowerFirst(base)
	}
	if !q.HasMetric {
		base = strings.TrimRight(base, ".") + metricClause
	}
	if !q.HasSpecificity {
		base = strings.TrimRight(base, ".") + scopeClause
	}
	if signals.HasMetric(bullet) {
		base = strings.ReplaceAll(base, metricPlaceholder, metricGeneric)
	}
	return base
}

// Rewrites rewrites the first max bullets.
func Rewrites(bullets []string, max, minWords int) []Rewrite {
	if max <= 0 {
		max = DefaultMaxRewrites
	}
	if len(bullets) > max {
		bullets = bullets[:max]
	}

	out := make([]Rewrite, 0, len(bullets))
	for _, b := range bullets {
		out = append(out, Rewrite{Original: b, Rewrite: RewriteBullet(b, minWords)})
	}
	return out
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size >= len(s) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
