package analysis

import (
	"fmt"
	"strings"
)

const reportTitle = "AI Resume Analyzer Report"

// RenderText formats a finished result as a plain-text report ending with a single newline.
func RenderText(res *Result) string {
	if res == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(reportTitle + "\n")
	b.WriteString(strings.Repeat("=", 28) + "\n\n")
	fmt.Fprintf(&b, "Overall Score: %d/100 (Grade %s)\n\n", res.Score.Overall, res.Score.Grade)

	b.WriteString(RenderBreakdown(res))
	b.WriteString("\n")

	writeList(&b, "Strengths", res.Strengths)
	writeList(&b, "Weaknesses", res.Weaknesses)

	b.WriteString(RenderKeywords(res))
	b.WriteString("\n")

	if len(res.BulletSuggestions) > 0 {
		b.WriteString(RenderSuggestions(res))
	}
	if len(res.Rewrites) > 0 {
		b.WriteString(RenderRewrites(res))
	}
	if res.AIReview != nil {
		b.WriteString(renderReview(res))
	}

	return strings.TrimRight(b.String(), " \n") + "\n"
}

func RenderBreakdown(res *Result) string {
	var b strings.Builder
	writeHeading(&b, "Score Breakdown", 14)
	for _, row := range res.Score.Breakdown {
		fmt.Fprintf(&b, "- %s: %.1f  |  %s\n", row.Category, row.Points, row.Notes)
	}
	return b.String()
}

func RenderKeywords(res *Result) string {
	ka := res.KeywordAlignment

	var b strings.Builder
	writeHeading(&b, "Keyword Alignment", 16)
	fmt.Fprintf(&b, "Similarity (TF-IDF cosine): %.3f\n", ka.Similarity)
	fmt.Fprintf(&b, "Matched keywords: %d\n", ka.MatchedCount)
	fmt.Fprintf(&b, "Missing keywords: %d\n", ka.MissingCount)
	if len(ka.MissingKeywords) > 0 {
		b.WriteString("\nTop Missing Keywords:\n")
		for _, kw := range ka.MissingKeywords {
			fmt.Fprintf(&b, "- %s (%.3f)\n", kw.Term, kw.Weight)
		}
	}
	return b.String()
}

func RenderSuggestions(res *Result) string {
	var b strings.Builder
	writeHeading(&b, "Bullet Suggestions", 16)
	for _, item := range res.BulletSuggestions {
		fmt.Fprintf(&b, "Original: %s\n", item.Original)
		for _, s := range item.Suggestions {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func RenderRewrites(res *Result) string {
	var b strings.Builder
	writeHeading(&b, "Optional Bullet Rewrites (Offline)", 32)
	for _, item := range res.Rewrites {
		fmt.Fprintf(&b, "Original: %s\n", item.Original)
		fmt.Fprintf(&b, "Rewrite:  %s\n\n", item.Rewrite)
	}
	return b.String()
}

func renderReview(res *Result) string {
	review := res.AIReview

	var b strings.Builder
	writeHeading(&b, "AI Review", 9)
	if review.Model != "" {
		fmt.Fprintf(&b, "Model: %s/%s\n", review.Provider, review.Model)
	}
	if review.Error != "" {
		fmt.Fprintf(&b, "Unavailable: %s\n\n", review.Error)
		return b.String()
	}
	if review.Summary != "" {
		fmt.Fprintf(&b, "%s\n", review.Summary)
	}
	b.WriteString("\n")
	for _, item := range review.Rewrites {
		fmt.Fprintf(&b, "Original: %s\n", item.Original)
		fmt.Fprintf(&b, "Rewrite:  %s\n\n", item.Rewrite)
	}
	return b.String()
}

func writeHeading(b *strings.Builder, title string, underline int) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("-", underline) + "\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	writeHeading(b, title, len(title))
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
