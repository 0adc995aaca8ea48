package server

import (
	"github.com/briangibbs/overwhelmed-tools/internal/domain"
	"github.com/briangibbs/overwhelmed-tools/internal/readiness"
	"github.com/briangibbs/overwhelmed-tools/internal/roadmap"
)

// Request payloads

type GenerateRoadmapRequest struct {
	Name     string   `json:"name" minLength:"1"`
	Industry string   `json:"industry" enum:"Construction,E-commerce,Education,Finance,Healthcare,Manufacturing,Professional Services,Real Estate,Retail,SaaS,Technology"`
	Size     string   `json:"size" enum:"Startup (1-10 employees),Small (11-50 employees),Medium (51-200 employees),Large (201-500 employees),Enterprise (500+ employees)"`
	Goals    []string `json:"goals" minItems:"1"`
}

func (r GenerateRoadmapRequest) profile() domain.BusinessProfile {
	goals := make([]domain.Goal, len(r.Goals))
	for i, g := range r.Goals {
		goals[i] = domain.Goal(g)
	}
	return domain.BusinessProfile{
		Name:     r.Name,
		Industry: domain.Industry(r.Industry),
		Size:     domain.BusinessSize(r.Size),
		Goals:    goals,
	}
}

type CreateTaskRequest struct {
	Title    string `json:"title"`
	Date     string `json:"date" example:"2024-01-10"`
	Time     string `json:"time" example:"09:00"`
	Category string `json:"category"`
}

type CalendarExportRequest struct {
	Kind string `json:"kind" enum:"Apple Calendar,Google Calendar,Microsoft Outlook"`
}

type ReadinessRequest struct {
	Answers []int `json:"answers" minItems:"5" maxItems:"5"`
}

type ROIRequest struct {
	Implementation string  `json:"implementation,omitempty" enum:"chatbot,automation,analytics,marketing,sales"`
	MonthlyBudget  float64 `json:"monthly_budget"`
	HoursSaved     float64 `json:"hours_saved"`
	HourlyRate     float64 `json:"hourly_rate,omitempty"`
}

// Response payloads

type OptionsResponse struct {
	Industries    []domain.Industry                           `json:"industries"`
	Sizes         []domain.BusinessSize                       `json:"sizes"`
	Goals         []domain.Goal                               `json:"goals"`
	CalendarKinds []domain.CalendarKind                       `json:"calendar_kinds"`
	Profiles      map[domain.Industry]roadmap.IndustryProfile `json:"industry_profiles"`
}

type ImportResponse struct {
	Added []domain.ScheduledTask `json:"added"`
	Count int                    `json:"count"`
}

type CalendarExportResponse struct {
	Ticket    string `json:"ticket"`
	FileName  string `json:"file_name"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at" format:"date-time"`
	TaskCount int    `json:"task_count"`
}

type ReadinessResponse struct {
	ID       string           `json:"id"`
	Result   readiness.Result `json:"result"`
	Report   string           `json:"report"`
	FileName string           `json:"file_name"`
}

type paginatedEvents struct {
	Items []domain.Event `json:"items"`
}
