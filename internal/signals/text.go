// Package signals extracts heuristic quality signals from plain resume text.
package signals

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t]+`)
	blankLinesRe      = regexp.MustCompile(`\n{3,}`)
	lineBreakReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u00a0", " ")
)

// Normalize cleans up text produced by document extractors: non-breaking spaces become
// plain spaces, runs of spaces and tabs collapse to one space, three or more newlines
// collapse to a single blank line and the result is trimmed.
func Normalize(text string) string {
	text = lineBreakReplacer.Replace(text)
	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// SplitLines splits text into lines with trailing whitespace removed.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return lines
}

// Words returns the number of whitespace separated words.
func Words(text string) int {
	return len(strings.Fields(text))
}
