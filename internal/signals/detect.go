package signals

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxBullets caps how many bullets ExtractBullets collects.
	DefaultMaxBullets = 80
	// minBulletRunes drops list items too short to be an accomplishment statement.
	minBulletRunes = 8

	minHeaderLen = 2
	maxHeaderLen = 30
)

var (
	emailRe  = regexp.MustCompile(`\b[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}\b`)
	phoneRe  = regexp.MustCompile(`(?:(?:\+?1\s*(?:[.-]\s*)?)?(?:\(\s*\d{3}\s*\)|\d{3})\s*(?:[.-]\s*)?)\d{3}\s*(?:[.-]\s*)?\d{4}`)
	urlRe    = regexp.MustCompile(`(?i)\bhttps?://[^\s)]+|\bwww\.[^\s)]+`)
	zipRe    = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	metricRe = regexp.MustCompile(`(\b\d+(\.\d+)?%?\b)|(\b\$?\d+(?:,\d{3})+(?:\.\d+)?\b)`)

	// U+F0B7 is the private-use glyph many PDF exporters emit for bullets and
	// "â€¢" is a UTF-8 bullet decoded as cp1252.
	bulletRe = regexp.MustCompile(`^\s*(?:â€¢|[•\x{F0B7}\-]|\d+\.)\s+`)

	headerCleanRe = regexp.MustCompile(`[^a-zA-Z ]`)
)

// SectionHeaders is the vocabulary of recognised section names in canonical order.
var SectionHeaders = []string{
	"education",
	"experience",
	"projects",
	"skills",
	"certifications",
	"awards",
	"leadership",
	"summary",
	"objective",
	"activities",
	"volunteering",
}

// Contact reports which kinds of contact details appear in a document.
type Contact struct {
	Email bool `json:"email"`
	Phone bool `json:"phone"`
	URL   bool `json:"url"`
	ZIP   bool `json:"zip"`
}

// FindContact tests the text against the email, phone, url and zip patterns.
func FindContact(text string) Contact {
	return Contact{
		Email: emailRe.MatchString(text),
		Phone: phoneRe.MatchString(text),
		URL:   urlRe.MatchString(text),
		ZIP:   zipRe.MatchString(text),
	}
}

// CountMetrics counts non-overlapping numeric expressions: percentages, currency,
// thousands-separated and bare numbers.
func CountMetrics(text string) int {
	return len(metricRe.FindAllStringIndex(text, -1))
}

// HasMetric reports whether text contains at least one metric.
func HasMetric(text string) bool {
	return metricRe.MatchString(text)
}

// DetectSections returns the section headers found in the text, sorted alphabetically.
// A line counts as a header when, reduced to letters and spaces, it equals a known
// header or starts with the header followed by a space.
func DetectSections(text string) []string {
	found := make(map[string]struct{})
	for _, line := range SplitLines(text) {
		clean := strings.ToLower(strings.TrimSpace(headerCleanRe.ReplaceAllString(line, "")))
		if len(clean) < minHeaderLen || len(clean) > maxHeaderLen {
			continue
		}
		for _, header := range SectionHeaders {
			if clean == header || strings.HasPrefix(clean, header+" ") {
				found[header] = struct{}{}
			}
		}
	}

	sections := make([]string, 0, len(found))
	for header := range found {
		sections = append(sections, header)
	}
	slices.Sort(sections)
	return sections
}

// IsBullet reports whether the line starts with a list marker.
func IsBullet(line string) bool {
	return bulletRe.MatchString(line)
}

// StripBullet removes the list marker and surrounding whitespace.
func StripBullet(line string) string {
	return strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
}

// ExtractBullets collects list items from the text in document order. Items shorter
// than eight characters are skipped and collection stops after max bullets; a
// non-positive max falls back to DefaultMaxBullets.
func ExtractBullets(text string, max int) []string {
	if max <= 0 {
		max = DefaultMaxBullets
	}

	var bullets []string
	for _, line := range SplitLines(text) {
		if !IsBullet(line) {
			continue
		}
		bullet := StripBullet(line)
		if utf8.RuneCountInString(bullet) < minBulletRunes {
			continue
		}
		bullets = append(bullets, bullet)
		if len(bullets) >= max {
			break
		}
	}
	return bullets
}
