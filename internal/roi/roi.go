// Package roi estimates returns on a monthly AI tooling spend.
package roi

import (
	"fmt"
	"math"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
)

const DefaultHourlyRate = 100.0

type Implementation string

const (
	ImplementationChatbot    Implementation = "chatbot"
	ImplementationAutomation Implementation = "automation"
	ImplementationAnalytics  Implementation = "analytics"
	ImplementationMarketing  Implementation = "marketing"
	ImplementationSales      Implementation = "sales"
)

var Implementations = map[Implementation]string{
	ImplementationChatbot:    "Customer Service Chatbot",
	ImplementationAutomation: "Process Automation",
	ImplementationAnalytics:  "Data Analytics & Insights",
	ImplementationMarketing:  "AI Marketing Tools",
	ImplementationSales:      "Sales Optimization AI",
}

type Input struct {
	Implementation Implementation `json:"implementation,omitempty" enum:"chatbot,automation,analytics,marketing,sales"`
	MonthlyBudget  float64        `json:"monthly_budget"`
	HoursSaved     float64        `json:"hours_saved"`
	HourlyRate     float64        `json:"hourly_rate,omitempty"`
}

// Estimate is the yearly outcome of an AI budget.
type Estimate struct {
	MonthlySavings float64 `json:"monthly_savings"`
	AnnualSavings  float64 `json:"annual_savings"`
	AnnualCost     float64 `json:"annual_cost"`
	ROIPercent     float64 `json:"roi_percent"`
	PaybackMonths  float64 `json:"payback_months"`
	FiveYearReturn float64 `json:"five_year_return"`
}

// Calculate returns the yearly ROI of spending MonthlyBudget to save HoursSaved
// hours a month at HourlyRate.
func Calculate(in Input) (Estimate, error) {
	if in.Implementation != "" {
		if _, ok := Implementations[in.Implementation]; !ok {
			return Estimate{}, &domain.ValidationError{Field: "implementation", Message: fmt.Sprintf("unknown implementation %q", in.Implementation)}
		}
	}
	if in.MonthlyBudget <= 0 {
		return Estimate{}, &domain.ValidationError{Field: "monthly_budget", Message: "must be positive"}
	}
	if in.HoursSaved <= 0 {
		return Estimate{}, &domain.ValidationError{Field: "hours_saved", Message: "must be positive"}
	}
	rate := in.HourlyRate
	if rate == 0 {
		rate = DefaultHourlyRate
	}
	if rate < 0 {
		return Estimate{}, &domain.ValidationError{Field: "hourly_rate", Message: "must be positive"}
	}
	monthly := in.HoursSaved * rate
	annualSavings := monthly * 12
	annualCost := in.MonthlyBudget * 12
	return Estimate{
		MonthlySavings: monthly,
		AnnualSavings:  annualSavings,
		AnnualCost:     annualCost,
		ROIPercent:     math.Round((annualSavings - annualCost) / annualCost * 100),
		PaybackMonths:  math.Round(in.MonthlyBudget/monthly*10) / 10,
		FiveYearReturn: (annualSavings - annualCost) * 5,
	}, nil
}
