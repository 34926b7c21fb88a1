// Package keywords compares a resume with a target role or job description using TF-IDF
// vectors and reports the reference terms the resume under-represents.
package keywords

import (
	"slices"
	"strings"
	"unicode"
)

const (
	// DefaultMissingRatio is the share of the reference weight a resume term must reach to
	// count as present.
	DefaultMissingRatio = 0.15
	// DefaultTopK is the number of missing keywords reported when the caller does not say.
	DefaultTopK = 25

	missingEpsilon = 1e-9
)

// Keyword is a reference term and its TF-IDF weight in the reference document.
type Keyword struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Alignment is the outcome of comparing a resume with a reference text. MissingCount counts
// every missing term while MissingKeywords holds only the deduplicated top entries.
type Alignment struct {
	Similarity      float64   `json:"similarity"`
	MatchedCount    int       `json:"matched_count"`
	MissingCount    int       `json:"missing_count"`
	MissingKeywords []Keyword `json:"missing_keywords"`
}

// Aligner holds the tunables of the keyword comparison. It is safe for concurrent use.
type Aligner struct {
	missingRatio float64
	maxFeatures  int
	roles        []RoleKeywords
}

// Option configures an Aligner.
type Option func(*Aligner)

// WithMissingRatio overrides DefaultMissingRatio. Non-positive values are ignored.
func WithMissingRatio(ratio float64) Option {
	return func(a *Aligner) {
		if ratio > 0 {
			a.missingRatio = ratio
		}
	}
}

// WithMaxFeatures overrides DefaultMaxFeatures. Non-positive values are ignored.
func WithMaxFeatures(n int) Option {
	return func(a *Aligner) {
		if n > 0 {
			a.maxFeatures = n
		}
	}
}

// WithRoles adds role tables consulted before DefaultRoles.
func WithRoles(roles ...RoleKeywords) Option {
	return func(a *Aligner) {
		a.roles = append(slices.Clone(roles), a.roles...)
	}
}

func New(opts ...Option) *Aligner {
	a := &Aligner{
		missingRatio: DefaultMissingRatio,
		maxFeatures:  DefaultMaxFeatures,
		roles:        slices.Clone(DefaultRoles),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Reference resolves the reference text for a role and optional job description.
func (a *Aligner) Reference(role, jobDescription string) string {
	return ReferenceText(role, jobDescription, a.roles)
}

// Align scores how well resume covers reference. Blank input on either side yields the zero
// Alignment. At most topK missing keywords are returned; a non-positive topK returns none.
func (a *Aligner) Align(resume, reference string, topK int) Alignment {
	empty := Alignment{MissingKeywords: []Keyword{}}
	if strings.TrimSpace(resume) == "" || strings.TrimSpace(reference) == "" {
		return empty
	}

	vocab, vectors := vectorizer{maxFeatures: a.maxFeatures}.fit(resume, reference)
	if len(vocab) == 0 {
		return empty
	}
	res, ref := vectors[0], vectors[1]

	result := Alignment{Similarity: cosine(res, ref)}

	var missing []Keyword
	for j, term := range vocab {
		if res[j] > 0 && ref[j] > 0 {
			result.MatchedCount++
		}
		if ref[j] > 0 && res[j] < a.missingRatio*ref[j]+missingEpsilon {
			missing = append(missing, Keyword{Term: term, Weight: ref[j]})
		}
	}
	result.MissingCount = len(missing)

	slices.SortStableFunc(missing, func(x, y Keyword) int {
		switch {
		case x.Weight > y.Weight:
			return -1
		case x.Weight < y.Weight:
			return 1
		}
		return 0
	})

	result.MissingKeywords = topKeywords(missing, topK)
	return result
}

func topKeywords(ranked []Keyword, topK int) []Keyword {
	out := []Keyword{}
	if topK <= 0 {
		return out
	}

	seen := make(map[string]struct{}, len(ranked))
	for _, kw := range ranked {
		key := dedupeKey(kw.Term)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, kw)
		if len(out) == topK {
			break
		}
	}
	return out
}

func dedupeKey(term string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, term)
}
