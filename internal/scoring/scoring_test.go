package scoring

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = "Built a reporting dashboard using SQL and Python for 10,000 users, reducing load time by 40%. john@x.com 555-123-4567"

func rowsByCategory(t *testing.T, res Result) map[Category]Row {
	t.Helper()

	require.Len(t, res.Breakdown, len(Categories))
	rows := make(map[Category]Row, len(res.Breakdown))
	for i, row := range res.Breakdown {
		require.Equal(t, Categories[i], row.Category, "row %d out of order", i)
		rows[row.Category] = row
	}
	return rows
}

func fullResume() string {
	var b strings.Builder
	b.WriteString("Jane Doe | jane@doe.dev | 512-555-0100 | https://linkedin.com/in/jane\n\n")
	b.WriteString("Experience\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "- Built a reporting pipeline in Go and Kafka for %d,000 partner accounts across four regions\n", i+1)
	}
	b.WriteString("\nEducation\nBSc Computer Science\n\nSkills\nGo, SQL, Kafka\n\nProjects\n")
	b.WriteString(strings.Repeat("Maintained open source tooling for data teams. ", 20))
	return b.String()
}

func TestScoreEmptyText(t *testing.T) {
	t.Parallel()

	res := Score("", 0, DefaultOptions())
	rows := rowsByCategory(t, res)

	assert.Equal(t, 3, res.Overall)
	assert.Equal(t, GradeF, res.Grade)
	assert.Equal(t, 3.0, rows[Quantification].Points)
	assert.Equal(t, "Missing email, Missing phone, No portfolio/LinkedIn link detected, Resume text looks very short", rows[Completeness].Notes)
	assert.Equal(t, "Add measurable outcomes to bullets", rows[Quantification].Notes)
	assert.Zero(t, res.Signals.ActionRate)
	assert.Empty(t, res.Signals.Sections)
}

func TestScoreSampleResume(t *testing.T) {
	t.Parallel()

	res := Score(sampleResume, 0.5, DefaultOptions())
	rows := rowsByCategory(t, res)

	assert.True(t, res.Signals.Contact.Email)
	assert.True(t, res.Signals.Contact.Phone)
	assert.GreaterOrEqual(t, res.Signals.MetricsFound, 1)
	assert.Equal(t, 12.0, rows[Completeness].Points)
	assert.Equal(t, 15.0, rows[Quantification].Points)
	assert.Equal(t, 10.0, rows[KeywordAlignment].Points)
	assert.Equal(t, "Good match", rows[KeywordAlignment].Notes)
	assert.Equal(t, 37, res.Overall)
}

func TestScoreFullResume(t *testing.T) {
	t.Parallel()

	res := Score(fullResume(), 0.6, DefaultOptions())
	rows := rowsByCategory(t, res)

	assert.Equal(t, 20.0, rows[Completeness].Points)
	assert.Equal(t, "Solid basics", rows[Completeness].Notes)
	assert.Equal(t, 20.0, rows[Structure].Points)
	assert.Equal(t, "Good section coverage", rows[Structure].Notes)
	assert.Equal(t, 10, res.Signals.BulletsFound)
	assert.Equal(t, 1.0, res.Signals.ActionRate)
	assert.Equal(t, 1.0, res.Signals.SpecificRate)
	assert.Equal(t, 1.0, res.Signals.MetricRate)
	assert.Equal(t, 25.0, rows[BulletQuality].Points)
	assert.Equal(t, "Bullets are solid", rows[BulletQuality].Notes)
	assert.Equal(t, 92, res.Overall)
	assert.Equal(t, GradeA, res.Grade)
}

func TestScoreStructureAllSections(t *testing.T) {
	t.Parallel()

	text := "Experience\nEducation\nSkills\nProjects\n"
	rows := rowsByCategory(t, Score(text, 0, DefaultOptions()))
	assert.Equal(t, 20.0, rows[Structure].Points)

	rows = rowsByCategory(t, Score("Experience\nSkills", 0, DefaultOptions()))
	assert.Equal(t, 12.0, rows[Structure].Points)
	assert.Equal(t, "Good section coverage", rows[Structure].Notes)

	rows = rowsByCategory(t, Score("Experience\nProjects", 0, DefaultOptions()))
	assert.Equal(t, 8.0, rows[Structure].Points)
	assert.Equal(t, "Add clearer section headers (Experience/Education/Skills)", rows[Structure].Notes)
}

func TestScoreClampsSimilarity(t *testing.T) {
	t.Parallel()

	for _, sim := range []float64{-3, 0, 0.25, 1, 7} {
		res := Score(sampleResume, sim, DefaultOptions())
		assert.GreaterOrEqual(t, res.Overall, 0)
		assert.LessOrEqual(t, res.Overall, 100)

		for _, row := range rowsByCategory(t, res) {
			assert.GreaterOrEqual(t, row.Points, 0.0)
			assert.LessOrEqual(t, row.Points, MaxPoints(row.Category))
		}
	}

	rows := rowsByCategory(t, Score("", 7, DefaultOptions()))
	assert.Equal(t, 20.0, rows[KeywordAlignment].Points)
	rows = rowsByCategory(t, Score("", -1, DefaultOptions()))
	assert.Zero(t, rows[KeywordAlignment].Points)
}

func TestScoreQuantificationTiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		points float64
	}{
		{text: "none here", points: 3},
		{text: "1", points: 7},
		{text: "1 2 3", points: 11},
		{text: "1 2 3 4 5 6", points: 15},
	}

	for _, tt := range tests {
		rows := rowsByCategory(t, Score(tt.text, 0, DefaultOptions()))
		assert.Equal(t, tt.points, rows[Quantification].Points, tt.text)
	}
}

func TestScoreRatesCountScoredSubsetOverAllBullets(t *testing.T) {
	t.Parallel()

	var lines []string
	for i := 0; i < 80; i++ {
		lines = append(lines, "- Built the thing that mattered")
	}
	text := strings.Join(lines, "\n")

	res := Score(text, 0, DefaultOptions())
	assert.Equal(t, 80, res.Signals.BulletsFound)
	assert.Equal(t, 0.75, res.Signals.ActionRate)
	assert.Equal(t, 13.5, rowsByCategory(t, res)[BulletQuality].Points)

	res = Score(strings.Join(lines[:10], "\n"), 0, Options{ScoredBullets: 5})
	assert.Equal(t, 10, res.Signals.BulletsFound)
	assert.Equal(t, 0.5, res.Signals.ActionRate)

	res = Score(strings.Join(lines[:10], "\n"), 0, DefaultOptions())
	assert.Equal(t, 1.0, res.Signals.ActionRate)
}

func TestScoreIsDeterministic(t *testing.T) {
	t.Parallel()

	text := fullResume()
	assert.Equal(t, Score(text, 0.42, DefaultOptions()), Score(text, 0.42, DefaultOptions()))
}

func TestGradeForIsExhaustiveAndMonotonic(t *testing.T) {
	t.Parallel()

	rank := map[Grade]int{GradeF: 0, GradeD: 1, GradeC: 2, GradeB: 3, GradeA: 4}
	prev := -1
	for score := 0; score <= 100; score++ {
		g := GradeFor(score)
		r, ok := rank[g]
		require.True(t, ok, "score %d mapped to unknown grade %q", score, g)
		assert.GreaterOrEqual(t, r, prev, "grade dropped at %d", score)
		prev = r
	}

	assert.Equal(t, GradeA, GradeFor(90))
	assert.Equal(t, GradeB, GradeFor(89))
	assert.Equal(t, GradeB, GradeFor(80))
	assert.Equal(t, GradeC, GradeFor(70))
	assert.Equal(t, GradeD, GradeFor(60))
	assert.Equal(t, GradeF, GradeFor(59))
}

func TestZero(t *testing.T) {
	t.Parallel()

	res := Zero()
	rows := rowsByCategory(t, res)
	assert.Equal(t, 0, res.Overall)
	assert.Equal(t, GradeF, res.Grade)
	for _, row := range rows {
		assert.Zero(t, row.Points)
	}
}
