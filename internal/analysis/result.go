package analysis

import (
	"fmt"
	"strings"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/bullets"
	"github.com/spigell/resume-analyzer/internal/keywords"
	"github.com/spigell/resume-analyzer/internal/scoring"
)

const (
	strengthContact   = "Has clear contact info (email + phone)."
	strengthMetrics   = "Uses metrics to show impact."
	strengthVerbs     = "Many bullets start with strong action verbs."
	strengthAlignment = "Decent alignment with the target role / job description."
	strengthFallback  = "Resume text extracted successfully."

	weaknessURL       = "No portfolio/LinkedIn link detected. Consider adding one."
	weaknessMetrics   = "No measurable outcomes found. Add numbers to prove impact."
	weaknessVerbs     = "Too many bullets do not start with action verbs."
	weaknessSpecifics = "Bullets could be more specific (tools, scope, results)."
	weaknessAlignment = "Low keyword alignment. Tailor skills and wording to the role/JD."
	weaknessFallback  = "No major red flags detected from basic heuristics."

	minSectionsStrength = 3
	minMetricsStrength  = 3
	strongActionRate    = 0.5
	weakActionRate      = 0.45
	weakSpecificRate    = 0.55
	strongSimilarity    = 0.35
	weakSimilarity      = 0.25
)

// Result is the outcome of one analysis. A failed analysis keeps the same shape with Error set.
type Result struct {
	Score             scoring.Result       `json:"score"`
	Strengths         []string             `json:"strengths"`
	Weaknesses        []string             `json:"weaknesses"`
	KeywordAlignment  keywords.Alignment   `json:"keyword_alignment"`
	BulletSuggestions []bullets.Suggestion `json:"bullet_suggestions"`
	Rewrites          []bullets.Rewrite    `json:"rewrites,omitempty"`
	AIReview          *ai.Review           `json:"ai_review,omitempty"`
	ReportText        string               `json:"report_text"`
	Error             string               `json:"error,omitempty"`
	Trace             string               `json:"trace,omitempty"`
}

func (r *Result) Failed() bool {
	return r != nil && r.Error != ""
}

func newResult() *Result {
	return &Result{
		Score:             scoring.Zero(),
		Strengths:         []string{},
		Weaknesses:        []string{},
		KeywordAlignment:  keywords.Alignment{MissingKeywords: []keywords.Keyword{}},
		BulletSuggestions: []bullets.Suggestion{},
	}
}

// Failure builds the zeroed result reported in place of an analysis that could not finish.
func Failure(err error, trace string) *Result {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}

	res := newResult()
	res.Weaknesses = []string{fmt.Sprintf("Analysis failed: %s", msg)}
	res.Error = msg
	res.Trace = trace

	report := "ERROR: " + msg + "\n"
	if trace != "" {
		report += "\n" + strings.TrimRight(trace, "\n") + "\n"
	}
	res.ReportText = report

	return res
}

// StrengthsWeaknesses applies independent threshold rules to the score signals and the
// keyword alignment. Both lists hold at least one entry.
func StrengthsWeaknesses(sig scoring.Signals, alignment keywords.Alignment) ([]string, []string) {
	var strengths, weaknesses []string

	if sig.Contact.Email && sig.Contact.Phone {
		strengths = append(strengths, strengthContact)
	}
	if len(sig.Sections) >= minSectionsStrength {
		strengths = append(strengths, fmt.Sprintf("Good structure with sections: %s.", strings.Join(sig.Sections, ", ")))
	}
	if sig.MetricsFound >= minMetricsStrength {
		strengths = append(strengths, strengthMetrics)
	}
	if sig.ActionRate >= strongActionRate {
		strengths = append(strengths, strengthVerbs)
	}
	if alignment.Similarity >= strongSimilarity {
		strengths = append(strengths, strengthAlignment)
	}

	if !sig.Contact.URL {
		weaknesses = append(weaknesses, weaknessURL)
	}
	if sig.MetricsFound == 0 {
		weaknesses = append(weaknesses, weaknessMetrics)
	}
	if sig.ActionRate < weakActionRate {
		weaknesses = append(weaknesses, weaknessVerbs)
	}
	if sig.SpecificRate < weakSpecificRate {
		weaknesses = append(weaknesses, weaknessSpecifics)
	}
	if alignment.Similarity < weakSimilarity {
		weaknesses = append(weaknesses, weaknessAlignment)
	}

	if len(strengths) == 0 {
		strengths = append(strengths, strengthFallback)
	}
	if len(weaknesses) == 0 {
		weaknesses = append(weaknesses, weaknessFallback)
	}

	return strengths, weaknesses
}
