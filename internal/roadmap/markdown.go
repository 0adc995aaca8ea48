package roadmap

import (
	"fmt"
	"strings"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
)

// Markdown renders a roadmap as a printable document.
func Markdown(rm domain.Roadmap) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# AI Implementation Roadmap for %s\n\n", rm.Business)
	fmt.Fprintf(&b, "- Industry: %s\n- Size: %s\n", rm.Industry, rm.Size)
	if len(rm.Goals) > 0 {
		goals := make([]string, len(rm.Goals))
		for i, g := range rm.Goals {
			goals[i] = string(g)
		}
		fmt.Fprintf(&b, "- Goals: %s\n", strings.Join(goals, ", "))
	}
	for _, ph := range rm.Phases {
		fmt.Fprintf(&b, "\n## %s (Days %s)\n\n", ph.Title, ph.Days)
		for _, t := range ph.Tasks {
			fmt.Fprintf(&b, "- [ ] %s\n", t)
		}
	}
	return b.String()
}
