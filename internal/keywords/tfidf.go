package keywords

import (
	_ "embed"
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// DefaultMaxFeatures caps the joint vocabulary size.
const DefaultMaxFeatures = 5000

//go:embed stopwords.txt
var stopWordList string

var (
	stopWords = buildStopWords(stopWordList)
	tokenRe   = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)
)

func buildStopWords(list string) map[string]struct{} {
	words := strings.Fields(list)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// tokenize lowercases the text and returns its unigrams followed by its bigrams. Tokens are
// word-character runs of at least two runes; stop words are dropped before bigrams are formed.
func tokenize(text string) []string {
	var tokens []string
	for _, tok := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		if utf8.RuneCountInString(tok) < 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}

	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// vectorizer fits TF-IDF weights over a small corpus. IDF is smoothed as
// ln((1+n)/(1+df)) + 1 and every document vector is L2-normalized.
type vectorizer struct {
	maxFeatures int
}

// fit returns the sorted vocabulary and one weight vector per document, aligned with it.
func (v vectorizer) fit(docs ...string) ([]string, [][]float64) {
	counts := make([]map[string]int, len(docs))
	totals := make(map[string]int)
	df := make(map[string]int)

	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, term := range tokenize(doc) {
			counts[i][term]++
			totals[term]++
		}
		for term := range counts[i] {
			df[term]++
		}
	}

	vocab := make([]string, 0, len(totals))
	for term := range totals {
		vocab = append(vocab, term)
	}
	slices.Sort(vocab)

	if v.maxFeatures > 0 && len(vocab) > v.maxFeatures {
		kept := slices.Clone(vocab)
		slices.SortStableFunc(kept, func(a, b string) int {
			return totals[b] - totals[a]
		})
		kept = kept[:v.maxFeatures]
		slices.Sort(kept)
		vocab = kept
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for j, term := range vocab {
		idf[j] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i := range docs {
		vec := make([]float64, len(vocab))
		var norm float64
		for j, term := range vocab {
			w := float64(counts[i][term]) * idf[j]
			vec[j] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range vec {
				vec[j] /= norm
			}
		}
		vectors[i] = vec
	}

	return vocab, vectors
}

func cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return math.Min(1, math.Max(0, dot))
}
