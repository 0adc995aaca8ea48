// Package readiness scores how prepared an organization is for AI adoption.
package readiness

import (
	"fmt"
	"math"
	"sort"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
)

const (
	MinAnswer = 1
	MaxAnswer = 5

	ReportFileName = "ai-readiness-assessment.txt"
	priorityCount  = 3
)

type Question struct {
	Text         string   `json:"text"`
	Category     string   `json:"category"`
	Improvements []string `json:"improvements"`
}

var Questions = []Question{
	{
		Text:     "How structured and organized is your data?",
		Category: "Data Readiness",
		Improvements: []string{
			"Implement a data governance framework",
			"Standardize data collection processes",
			"Clean and validate existing datasets",
			"Create comprehensive data documentation",
		},
	},
	{
		Text:     "How modern is your current tech stack?",
		Category: "Technical Infrastructure",
		Improvements: []string{
			"Upgrade legacy systems to cloud-based solutions",
			"Implement API-first architecture",
			"Enhance security protocols",
			"Adopt containerization and microservices",
		},
	},
	{
		Text:     "How tech-savvy is your workforce?",
		Category: "Team Capability",
		Improvements: []string{
			"Provide AI and ML training programs",
			"Hire AI/ML specialists or consultants",
			"Create internal knowledge sharing sessions",
			"Partner with AI education providers",
		},
	},
	{
		Text:     "How well-documented are your processes?",
		Category: "Process Maturity",
		Improvements: []string{
			"Create detailed process documentation",
			"Implement process monitoring tools",
			"Establish standard operating procedures",
			"Regular process audits and updates",
		},
	},
	{
		Text:     "Is there executive support for AI initiatives?",
		Category: "Strategic Alignment",
		Improvements: []string{
			"Develop AI business case presentations",
			"Create ROI models for AI initiatives",
			"Align AI projects with business goals",
			"Regular executive briefings on AI potential",
		},
	},
}

// Level is a band of the overall score.
type Level struct {
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Name        string `json:"level"`
	Description string `json:"description"`
}

var Levels = []Level{
	{Min: 0, Max: 40, Name: "Early Stage", Description: "Significant preparation needed before AI implementation"},
	{Min: 41, Max: 60, Name: "Developing", Description: "Basic foundation present, but improvements needed"},
	{Min: 61, Max: 80, Name: "Advanced", Description: "Good readiness level with some areas for improvement"},
	{Min: 81, Max: 100, Name: "Optimal", Description: "Excellent position for AI implementation"},
}

type CategoryScore struct {
	Category     string   `json:"category"`
	Answer       int      `json:"answer"`
	Percent      int      `json:"percent"`
	Improvements []string `json:"improvements"`
}

type Result struct {
	Score      int             `json:"score"`
	Level      Level           `json:"level"`
	Categories []CategoryScore `json:"categories"`
	Priorities []CategoryScore `json:"priorities"`
}

// Assess scores one answer per question, in question order.
func Assess(answers []int) (Result, error) {
	if len(answers) != len(Questions) {
		return Result{}, &domain.ValidationError{
			Field:   "answers",
			Message: fmt.Sprintf("expected %d answers, got %d", len(Questions), len(answers)),
		}
	}
	total := 0
	cats := make([]CategoryScore, len(Questions))
	for i, a := range answers {
		if a < MinAnswer || a > MaxAnswer {
			return Result{}, &domain.ValidationError{
				Field:   "answers",
				Message: fmt.Sprintf("answer %d must be between %d and %d", i+1, MinAnswer, MaxAnswer),
			}
		}
		total += a
		q := Questions[i]
		cats[i] = CategoryScore{
			Category:     q.Category,
			Answer:       a,
			Percent:      percent(a, MaxAnswer),
			Improvements: q.Improvements,
		}
	}
	score := percent(total, len(Questions)*MaxAnswer)
	priorities := append([]CategoryScore(nil), cats...)
	sort.SliceStable(priorities, func(i, j int) bool { return priorities[i].Answer < priorities[j].Answer })
	if len(priorities) > priorityCount {
		priorities = priorities[:priorityCount]
	}
	return Result{
		Score:      score,
		Level:      LevelFor(score),
		Categories: cats,
		Priorities: priorities,
	}, nil
}

// LevelFor returns the band containing score, defaulting to the lowest.
func LevelFor(score int) Level {
	for _, l := range Levels {
		if score >= l.Min && score <= l.Max {
			return l
		}
	}
	return Levels[0]
}

func percent(n, d int) int {
	return int(math.Round(float64(n) / float64(d) * 100))
}
