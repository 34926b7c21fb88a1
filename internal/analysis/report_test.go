package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-analyzer/internal/bullets"
	"github.com/spigell/resume-analyzer/internal/keywords"
	"github.com/spigell/resume-analyzer/internal/scoring"
	"github.com/spigell/resume-analyzer/internal/signals"
)

func TestStrengthsWeaknesses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sig        scoring.Signals
		similarity float64
		strengths  []string
		weaknesses []string
	}{
		{
			name:       "nothing detected",
			strengths:  []string{strengthFallback},
			weaknesses: []string{weaknessURL, weaknessMetrics, weaknessVerbs, weaknessSpecifics, weaknessAlignment},
		},
		{
			name: "strong resume",
			sig: scoring.Signals{
				Sections:     []string{"education", "experience", "skills"},
				MetricsFound: 5,
				ActionRate:   0.8,
				SpecificRate: 0.9,
				Contact:      signals.Contact{Email: true, Phone: true, URL: true},
			},
			similarity: 0.5,
			strengths: []string{
				strengthContact,
				"Good structure with sections: education, experience, skills.",
				strengthMetrics,
				strengthVerbs,
				strengthAlignment,
			},
			weaknesses: []string{weaknessFallback},
		},
		{
			name: "between thresholds",
			sig: scoring.Signals{
				Sections:     []string{"education", "skills"},
				MetricsFound: 2,
				ActionRate:   0.47,
				SpecificRate: 0.55,
				Contact:      signals.Contact{Email: true, URL: true},
			},
			similarity: 0.3,
			strengths:  []string{strengthFallback},
			weaknesses: []string{weaknessFallback},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			strengths, weaknesses := StrengthsWeaknesses(tt.sig, keywords.Alignment{Similarity: tt.similarity})
			assert.Equal(t, tt.strengths, strengths)
			assert.Equal(t, tt.weaknesses, weaknesses)
		})
	}
}

func TestFailure(t *testing.T) {
	t.Parallel()

	res := Failure(errors.New("no text"), "trace line\n")
	assert.True(t, res.Failed())
	assert.Equal(t, []string{"Analysis failed: no text"}, res.Weaknesses)
	assert.Equal(t, "ERROR: no text\n\ntrace line\n", res.ReportText)
	assertFailureShape(t, res)

	res = Failure(nil, "")
	assert.Equal(t, "ERROR: unknown error\n", res.ReportText)

	var nilResult *Result
	assert.False(t, nilResult.Failed())
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	res := newResult()
	res.Score = scoring.Score("", 0, scoring.DefaultOptions())
	res.Strengths = []string{strengthFallback}
	res.Weaknesses = []string{weaknessURL}
	res.KeywordAlignment = keywords.Alignment{
		Similarity:      0.12345,
		MatchedCount:    1,
		MissingCount:    3,
		MissingKeywords: []keywords.Keyword{{Term: "kafka", Weight: 0.5}},
	}
	res.BulletSuggestions = []bullets.Suggestion{{Original: "Helped", Suggestions: []string{bullets.AdviceMetric}}}

	text := RenderText(res)

	require.True(t, strings.HasPrefix(text, "AI Resume Analyzer Report\n============================\n\nOverall Score: 3/100 (Grade F)\n"))
	assert.Contains(t, text, "- Quantification: 3.0  |  Add measurable outcomes to bullets\n")
	assert.Contains(t, text, "Strengths\n---------\n- Resume text extracted successfully.\n")
	assert.Contains(t, text, "Similarity (TF-IDF cosine): 0.123\n")
	assert.Contains(t, text, "Missing keywords: 3\n\nTop Missing Keywords:\n- kafka (0.500)\n")
	assert.Contains(t, text, "Original: Helped\n  - "+bullets.AdviceMetric+"\n")
	assert.NotContains(t, text, "Optional Bullet Rewrites")
	assert.NotContains(t, text, "AI Review")
	assert.True(t, strings.HasSuffix(text, bullets.AdviceMetric+"\n"))

	assert.Empty(t, RenderText(nil))
}
