// Package scoring turns resume signals and keyword similarity into a 0-100 rubric score.
package scoring

import (
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-analyzer/internal/signals"
)

// Category names a rubric row.
type Category string

const (
	Completeness     Category = "Completeness"
	Structure        Category = "Structure"
	BulletQuality    Category = "Bullet Quality"
	Quantification   Category = "Quantification"
	KeywordAlignment Category = "Keyword Alignment"
)

// Categories lists the rubric rows in report order.
var Categories = []Category{Completeness, Structure, BulletQuality, Quantification, KeywordAlignment}

var maxPoints = map[Category]float64{
	Completeness:     20,
	Structure:        20,
	BulletQuality:    25,
	Quantification:   15,
	KeywordAlignment: 20,
}

// MaxPoints returns the ceiling of a category, zero for unknown ones.
func MaxPoints(c Category) float64 {
	return maxPoints[c]
}

const (
	DefaultScoredBullets = 60

	minWordsForLength = 200
	minBulletsForBulk = 8
	lowActionRate     = 0.45
	lowSpecificRate   = 0.55
	lowAlignment      = 10
)

// Options are the scoring tunables.
type Options struct {
	MaxBullets       int `mapstructure:"max-bullets" validate:"gte=0"`
	ScoredBullets    int `mapstructure:"scored-bullets" validate:"gte=0"`
	SpecificityWords int `mapstructure:"specificity-words" validate:"gte=0"`
}

func DefaultOptions() Options {
	return Options{
		MaxBullets:       signals.DefaultMaxBullets,
		ScoredBullets:    DefaultScoredBullets,
		SpecificityWords: signals.DefaultSpecificityWords,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxBullets <= 0 {
		o.MaxBullets = def.MaxBullets
	}
	if o.ScoredBullets <= 0 {
		o.ScoredBullets = def.ScoredBullets
	}
	if o.SpecificityWords <= 0 {
		o.SpecificityWords = def.SpecificityWords
	}
	return o
}

// Row is one line of the breakdown.
type Row struct {
	Category Category `json:"category"`
	Points   float64  `json:"points"`
	Notes    string   `json:"notes"`
}

// Signals is the diagnostic snapshot the score was computed from.
type Signals struct {
	WordCount    int             `json:"word_count"`
	CharCount    int             `json:"char_count"`
	Sections     []string        `json:"sections"`
	BulletsFound int             `json:"bullets_found"`
	MetricsFound int             `json:"metrics_found"`
	ActionRate   float64         `json:"action_rate"`
	MetricRate   float64         `json:"metric_rate"`
	SpecificRate float64         `json:"specific_rate"`
	Contact      signals.Contact `json:"contact"`
}

// HasSection reports whether name was detected.
func (s Signals) HasSection(name string) bool {
	return slices.Contains(s.Sections, name)
}

// Result is the outcome of Score.
type Result struct {
	Overall   int     `json:"overall"`
	Grade     Grade   `json:"grade"`
	Breakdown []Row   `json:"breakdown"`
	Signals   Signals `json:"signals"`
}

// Zero is the score reported when analysis could not run: every row is present with no points.
func Zero() Result {
	rows := make([]Row, 0, len(Categories))
	for _, c := range Categories {
		rows = append(rows, Row{Category: c})
	}
	return Result{
		Grade:     GradeFor(0),
		Breakdown: rows,
		Signals:   Signals{Sections: []string{}},
	}
}

// Score rates normalized resume text. similarity is the keyword alignment in [0,1]; values
// outside the range are clamped. Score is deterministic and safe for concurrent use.
func Score(text string, similarity float64, opts Options) Result {
	opts = opts.withDefaults()

	sig := collect(text, opts)

	subtotals := []subtotal{
		scoreCompleteness(sig),
		scoreStructure(sig),
		scoreBullets(sig),
		scoreQuantification(sig),
		scoreAlignment(similarity),
	}

	var total float64
	rows := make([]Row, 0, len(Categories))
	for i, c := range Categories {
		sub := subtotals[i]
		points := clamp(sub.points, 0, maxPoints[c])
		total += points

		notes := sub.def
		if len(sub.notes) > 0 {
			notes = strings.Join(sub.notes, ", ")
		}
		rows = append(rows, Row{Category: c, Points: round1(points), Notes: notes})
	}

	overall := int(math.RoundToEven(clamp(total, 0, 100)))
	return Result{
		Overall:   overall,
		Grade:     GradeFor(overall),
		Breakdown: rows,
		Signals:   sig,
	}
}

func collect(text string, opts Options) Signals {
	bullets := signals.ExtractBullets(text, opts.MaxBullets)

	sig := Signals{
		WordCount:    signals.Words(text),
		CharCount:    utf8.RuneCountInString(text),
		Sections:     signals.DetectSections(text),
		BulletsFound: len(bullets),
		MetricsFound: signals.CountMetrics(text),
		Contact:      signals.FindContact(text),
	}

	scored := bullets
	if len(scored) > opts.ScoredBullets {
		scored = scored[:opts.ScoredBullets]
	}
	if len(scored) == 0 {
		return sig
	}

	var action, metric, specific int
	for _, b := range scored {
		q := signals.Assess(b, opts.SpecificityWords)
		if q.StartsWithAction {
			action++
		}
		if q.HasMetric {
			metric++
		}
		if q.HasSpecificity {
			specific++
		}
	}

	// Counts cover the scored subset, rates are over every extracted bullet.
	n := float64(len(bullets))
	sig.ActionRate = round3(float64(action) / n)
	sig.MetricRate = round3(float64(metric) / n)
	sig.SpecificRate = round3(float64(specific) / n)
	return sig
}

// subtotal is a category's unclamped points, its unmet-threshold notes and the note used
// when every threshold is met.
type subtotal struct {
	points float64
	notes  []string
	def    string
}

func scoreCompleteness(sig Signals) subtotal {
	s := subtotal{def: "Solid basics"}
	if sig.Contact.Email {
		s.points += 6
	} else {
		s.notes = append(s.notes, "Missing email")
	}
	if sig.Contact.Phone {
		s.points += 6
	} else {
		s.notes = append(s.notes, "Missing phone")
	}
	if sig.Contact.URL {
		s.points += 4
	} else {
		s.notes = append(s.notes, "No portfolio/LinkedIn link detected")
	}
	if sig.WordCount >= minWordsForLength {
		s.points += 4
	} else {
		s.notes = append(s.notes, "Resume text looks very short")
	}
	return s
}

func scoreStructure(sig Signals) subtotal {
	s := subtotal{def: "Good section coverage"}
	for _, name := range []string{"experience", "education", "skills"} {
		if sig.HasSection(name) {
			s.points += 6
		}
	}
	if sig.HasSection("projects") {
		s.points += 2
	}
	if s.points < 12 {
		s.notes = append(s.notes, "Add clearer section headers (Experience/Education/Skills)")
	}
	return s
}

func scoreBullets(sig Signals) subtotal {
	s := subtotal{def: "Bullets are solid"}
	if sig.BulletsFound >= minBulletsForBulk {
		s.points += 6
	} else {
		s.notes = append(s.notes, "Add more bullets under roles/projects")
	}

	s.points += 10*sig.ActionRate + 7*sig.SpecificRate + 2*sig.MetricRate

	if sig.ActionRate < lowActionRate {
		s.notes = append(s.notes, "More bullets should start with strong action verbs")
	}
	if sig.SpecificRate < lowSpecificRate {
		s.notes = append(s.notes, "More bullets should include tools/scope/results")
	}
	return s
}

func scoreQuantification(sig Signals) subtotal {
	s := subtotal{def: "Nice metrics"}
	switch {
	case sig.MetricsFound >= 6:
		s.points = 15
	case sig.MetricsFound >= 3:
		s.points = 11
	case sig.MetricsFound >= 1:
		s.points = 7
		s.notes = append(s.notes, "Add more metrics (%, $, time saved, scale, counts)")
	default:
		s.points = 3
		s.notes = append(s.notes, "Add measurable outcomes to bullets")
	}
	return s
}

func scoreAlignment(similarity float64) subtotal {
	s := subtotal{def: "Good match"}
	s.points = 20 * clamp(similarity, 0, 1)
	if s.points < lowAlignment {
		s.notes = append(s.notes, "Tailor skills and bullets to the target role / JD keywords")
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
