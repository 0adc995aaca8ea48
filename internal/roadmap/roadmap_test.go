package roadmap

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
	"github.com/briangibbs/overwhelmed-tools/internal/planstore"
)

func acme(goals ...domain.Goal) domain.BusinessProfile {
	return domain.BusinessProfile{
		Name:     "Acme",
		Industry: domain.IndustryRetail,
		Size:     domain.SizeSmall,
		Goals:    goals,
	}
}

func TestGenerateAcmeRetail(t *testing.T) {
	rm, err := Generate(acme(domain.GoalAutomateCustomerService))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := []domain.Phase{
		{Title: PhaseAssessment, Days: domain.DayRange{Start: 1, End: 3}, Tasks: []string{
			"Document Acme's current processes and pain points",
			"Review Retail-specific compliance requirements: Consumer protection and payment security",
			"Define AI implementation objectives focusing on Customer experience and inventory",
			"Create stakeholder communication plan",
		}},
		{Title: PhaseToolSelection, Days: domain.DayRange{Start: 4, End: 7}, Tasks: []string{
			"Map current customer service workflows",
			"Identify automation opportunities in support processes",
		}},
		{Title: PhaseImplementation, Days: domain.DayRange{Start: 8, End: 11}, Tasks: []string{
			"Select AI chatbot platform",
			"Design conversation flows and responses",
		}},
		{Title: PhaseOptimization, Days: domain.DayRange{Start: 12, End: 15}, Tasks: []string{
			"Train AI on company-specific knowledge base",
		}},
	}
	if !reflect.DeepEqual(rm.Phases, want) {
		t.Fatalf("unexpected phases:\n got %+v\nwant %+v", rm.Phases, want)
	}
	if rm.Business != "Acme" || rm.Industry != domain.IndustryRetail || rm.Size != domain.SizeSmall {
		t.Fatalf("unexpected header: %+v", rm)
	}
}

func TestGenerateGoalOrderDrivesTaskOrder(t *testing.T) {
	rm, err := Generate(acme(domain.GoalScaleBusinessProcesses, domain.GoalEnhanceDataAnalytics))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	tools := rm.Phases[1].Tasks
	want := []string{
		"Document scalability bottlenecks",
		"Design AI-enhanced scaling strategy",
		"Audit existing data sources and quality",
		"Define key metrics and reporting needs",
	}
	if !reflect.DeepEqual(tools, want) {
		t.Fatalf("unexpected tool selection tasks: %v", tools)
	}
	if n := len(rm.Phases[3].Tasks); n != 2 {
		t.Fatalf("expected one optimization task per goal, got %d", n)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := acme(domain.GoalOptimizeMarketingCampaigns, domain.GoalReduceOperationalCosts)
	a, err := Generate(p)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := Generate(p)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same profile produced different roadmaps")
	}
}

func TestGenerateEveryGoalAndIndustry(t *testing.T) {
	for _, ind := range domain.Industries {
		p := domain.BusinessProfile{Name: "Co", Industry: ind, Size: domain.SizeEnterprise, Goals: domain.Goals}
		rm, err := Generate(p)
		if err != nil {
			t.Fatalf("%s: %v", ind, err)
		}
		if len(rm.Phases) != 4 {
			t.Fatalf("%s: expected 4 phases", ind)
		}
		total := 0
		for _, ph := range rm.Phases {
			seen := map[string]bool{}
			for _, task := range ph.Tasks {
				if seen[task] {
					t.Fatalf("%s: duplicate task %q in %s", ind, task, ph.Title)
				}
				seen[task] = true
			}
			total += len(ph.Tasks)
		}
		if total != 4+5*len(domain.Goals) {
			t.Fatalf("%s: expected %d tasks, got %d", ind, 4+5*len(domain.Goals), total)
		}
	}
}

func TestGenerateRejectsInvalidProfiles(t *testing.T) {
	cases := map[string]domain.BusinessProfile{
		"empty name":     {Name: " ", Industry: domain.IndustryRetail, Size: domain.SizeSmall, Goals: []domain.Goal{domain.GoalEnhanceDataAnalytics}},
		"bad industry":   {Name: "Co", Industry: "Mining", Size: domain.SizeSmall, Goals: []domain.Goal{domain.GoalEnhanceDataAnalytics}},
		"bad size":       {Name: "Co", Industry: domain.IndustryRetail, Size: "Huge", Goals: []domain.Goal{domain.GoalEnhanceDataAnalytics}},
		"no goals":       {Name: "Co", Industry: domain.IndustryRetail, Size: domain.SizeSmall},
		"unknown goal":   {Name: "Co", Industry: domain.IndustryRetail, Size: domain.SizeSmall, Goals: []domain.Goal{"Win"}},
		"duplicate goal": {Name: "Co", Industry: domain.IndustryRetail, Size: domain.SizeSmall, Goals: []domain.Goal{domain.GoalEnhanceDataAnalytics, domain.GoalEnhanceDataAnalytics}},
	}
	for name, p := range cases {
		_, err := Generate(p)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestTablesAreTotal(t *testing.T) {
	for _, g := range domain.Goals {
		tmpl, ok := Template(g)
		if !ok {
			t.Fatalf("missing template for %s", g)
		}
		for i, task := range tmpl {
			if strings.TrimSpace(task) == "" {
				t.Fatalf("%s template task %d is empty", g, i)
			}
		}
	}
	for _, ind := range domain.Industries {
		p, ok := ProfileFor(ind)
		if !ok || p.Compliance == "" || p.Focus == "" {
			t.Fatalf("incomplete profile for %s: %+v", ind, p)
		}
	}
	profiles := Profiles()
	profiles[domain.IndustryRetail] = IndustryProfile{}
	if p, _ := ProfileFor(domain.IndustryRetail); p.Focus == "" {
		t.Fatalf("Profiles must return a copy")
	}
}

func TestSynthesizerOverwritesStore(t *testing.T) {
	store := planstore.NewMemory()
	syn := Synthesizer{Store: store}
	ctx := context.Background()
	if _, err := syn.Generate(ctx, acme(domain.GoalAutomateCustomerService)); err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := syn.Generate(ctx, acme(domain.GoalImproveDecisionMaking))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, second) || store.Version() != 2 {
		t.Fatalf("store should hold the latest roadmap after 2 saves, version %d", store.Version())
	}

	if _, err := syn.Generate(ctx, acme()); err == nil {
		t.Fatalf("expected validation error")
	}
	if store.Version() != 2 {
		t.Fatalf("invalid profile must not touch the store")
	}
}

func TestFileSlugAndMarkdown(t *testing.T) {
	if got := FileSlug("Acme  Corp "); got != "acme-corp-ai-roadmap" {
		t.Fatalf("unexpected slug %q", got)
	}
	rm, err := Generate(acme(domain.GoalAutomateCustomerService))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	md := Markdown(rm)
	for _, want := range []string{
		"# AI Implementation Roadmap for Acme\n",
		"## Tool Selection & Setup (Days 4-7)\n",
		"- [ ] Train AI on company-specific knowledge base\n",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	got := dedupe([]string{"a", "b", "a", "c", "b"})
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected dedupe result %v", got)
	}
}
