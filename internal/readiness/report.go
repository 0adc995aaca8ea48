package readiness

import (
	"fmt"
	"strings"
)

// Report renders the plain-text assessment report.
func Report(r Result) string {
	var b strings.Builder
	b.WriteString("AI Readiness Assessment Report\n\n")
	fmt.Fprintf(&b, "Overall Score: %d%%\n", r.Score)
	fmt.Fprintf(&b, "Readiness Level: %s\n", r.Level.Name)
	fmt.Fprintf(&b, "%s\n\n", r.Level.Description)

	b.WriteString("Category Scores:\n")
	for _, c := range r.Categories {
		fmt.Fprintf(&b, "\n%s\nScore: %d%%\nRecommended Improvements:\n", c.Category, c.Percent)
		writeBullets(&b, c.Improvements)
	}

	b.WriteString("\nPriority Areas for Improvement:\n")
	for _, c := range r.Priorities {
		fmt.Fprintf(&b, "\n%s (Score: %d/%d)\nRecommended Actions:\n", c.Category, c.Answer, MaxAnswer)
		writeBullets(&b, c.Improvements)
	}
	return b.String()
}

func writeBullets(b *strings.Builder, items []string) {
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}
