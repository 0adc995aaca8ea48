package readiness

import (
	"strings"
	"testing"
)

func TestAssessScoresAndPriorities(t *testing.T) {
	res, err := Assess([]int{5, 1, 4, 2, 3})
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if res.Score != 60 || res.Level.Name != "Developing" {
		t.Fatalf("unexpected score %d level %s", res.Score, res.Level.Name)
	}
	wantPct := []int{100, 20, 80, 40, 60}
	for i, c := range res.Categories {
		if c.Percent != wantPct[i] {
			t.Fatalf("category %s: got %d%% want %d%%", c.Category, c.Percent, wantPct[i])
		}
	}
	wantPrio := []string{"Technical Infrastructure", "Process Maturity", "Strategic Alignment"}
	if len(res.Priorities) != len(wantPrio) {
		t.Fatalf("expected %d priorities, got %d", len(wantPrio), len(res.Priorities))
	}
	for i, p := range res.Priorities {
		if p.Category != wantPrio[i] {
			t.Fatalf("priority %d: got %s want %s", i, p.Category, wantPrio[i])
		}
	}
}

func TestAssessTiesKeepQuestionOrder(t *testing.T) {
	res, err := Assess([]int{2, 2, 2, 2, 2})
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if res.Priorities[0].Category != "Data Readiness" || res.Priorities[2].Category != "Team Capability" {
		t.Fatalf("ties should keep question order: %+v", res.Priorities)
	}
	if res.Level.Name != "Early Stage" {
		t.Fatalf("40%% should be Early Stage, got %s", res.Level.Name)
	}
}

func TestAssessRejectsBadAnswers(t *testing.T) {
	for _, answers := range [][]int{nil, {1, 2, 3, 4}, {1, 2, 3, 4, 5, 1}, {0, 2, 3, 4, 5}, {1, 2, 3, 4, 6}} {
		if _, err := Assess(answers); err == nil {
			t.Fatalf("expected %v to be rejected", answers)
		}
	}
}

func TestLevelFor(t *testing.T) {
	cases := map[int]string{0: "Early Stage", 40: "Early Stage", 41: "Developing", 61: "Advanced", 80: "Advanced", 81: "Optimal", 100: "Optimal"}
	for score, want := range cases {
		if got := LevelFor(score).Name; got != want {
			t.Fatalf("score %d: got %s want %s", score, got, want)
		}
	}
}

func TestReport(t *testing.T) {
	res, err := Assess([]int{5, 5, 5, 5, 5})
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	report := Report(res)
	for _, want := range []string{
		"AI Readiness Assessment Report\n",
		"Overall Score: 100%\n",
		"Readiness Level: Optimal\n",
		"\nData Readiness\nScore: 100%\n",
		"Priority Areas for Improvement:\n",
		"- Implement a data governance framework\n",
		"(Score: 5/5)",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}
