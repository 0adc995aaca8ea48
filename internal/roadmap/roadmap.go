package roadmap

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
	"github.com/briangibbs/overwhelmed-tools/internal/planstore"
)

const (
	PhaseAssessment     = "Assessment & Planning"
	PhaseToolSelection  = "Tool Selection & Setup"
	PhaseImplementation = "Implementation"
	PhaseOptimization   = "Optimization & Scaling"
)

// goalPhase maps a slice [from, to) of every goal template onto a phase.
type goalPhase struct {
	title    string
	days     domain.DayRange
	from, to int
}

var (
	assessmentDays = domain.DayRange{Start: 1, End: 3}
	goalPhases     = []goalPhase{
		{title: PhaseToolSelection, days: domain.DayRange{Start: 4, End: 7}, from: 0, to: 2},
		{title: PhaseImplementation, days: domain.DayRange{Start: 8, End: 11}, from: 2, to: 4},
		{title: PhaseOptimization, days: domain.DayRange{Start: 12, End: 15}, from: 4, to: 5},
	}
)

// Generate builds the four-phase roadmap for a profile. The output depends only
// on the profile, including the order in which goals were selected.
func Generate(p domain.BusinessProfile) (domain.Roadmap, error) {
	if err := p.Validate(); err != nil {
		return domain.Roadmap{}, err
	}
	info, ok := ProfileFor(p.Industry)
	if !ok {
		return domain.Roadmap{}, fmt.Errorf("no profile for industry %s", p.Industry)
	}
	phases := make([]domain.Phase, 0, 1+len(goalPhases))
	phases = append(phases, domain.Phase{
		Title: PhaseAssessment,
		Days:  assessmentDays,
		Tasks: []string{
			fmt.Sprintf("Document %s's current processes and pain points", p.Name),
			fmt.Sprintf("Review %s-specific compliance requirements: %s", p.Industry, info.Compliance),
			fmt.Sprintf("Define AI implementation objectives focusing on %s", info.Focus),
			"Create stakeholder communication plan",
		},
	})
	for _, gp := range goalPhases {
		var tasks []string
		for _, g := range p.Goals {
			tmpl, ok := Template(g)
			if !ok {
				return domain.Roadmap{}, fmt.Errorf("no task template for goal %s", g)
			}
			tasks = append(tasks, tmpl[gp.from:gp.to]...)
		}
		phases = append(phases, domain.Phase{
			Title: gp.title,
			Days:  gp.days,
			Tasks: dedupe(tasks),
		})
	}
	return domain.Roadmap{
		Business: p.Name,
		Industry: p.Industry,
		Size:     p.Size,
		Goals:    append([]domain.Goal(nil), p.Goals...),
		Phases:   phases,
	}, nil
}

// dedupe keeps the first occurrence of every string.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Synthesizer generates roadmaps and publishes the latest one to a plan store.
type Synthesizer struct {
	Store  planstore.Store
	Logger *log.Logger
}

func (s Synthesizer) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// Generate builds the roadmap and overwrites the plan store entry with it.
func (s Synthesizer) Generate(ctx context.Context, p domain.BusinessProfile) (domain.Roadmap, error) {
	rm, err := Generate(p)
	if err != nil {
		return domain.Roadmap{}, err
	}
	if s.Store != nil {
		if err := s.Store.Save(ctx, rm); err != nil {
			return domain.Roadmap{}, fmt.Errorf("save roadmap: %w", err)
		}
	}
	s.logger().Printf("roadmap generated for %q (%d goals)", p.Name, len(p.Goals))
	return rm, nil
}

var whitespace = regexp.MustCompile(`\s+`)

// FileSlug returns the download name stem for a business roadmap,
// e.g. "acme-corp-ai-roadmap".
func FileSlug(business string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(business)), "-") + "-ai-roadmap"
}
