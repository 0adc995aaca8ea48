package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// BusinessProfile is the input to roadmap generation.
type BusinessProfile struct {
	Name     string       `json:"name"`
	Industry Industry     `json:"industry"`
	Size     BusinessSize `json:"size"`
	Goals    []Goal       `json:"goals"`
}

// Validate checks every field a roadmap needs. Goal order is preserved by
// callers; duplicates are rejected because goals form a set.
func (p BusinessProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "business name is required"}
	}
	if !p.Industry.Valid() {
		return &ValidationError{Field: "industry", Message: fmt.Sprintf("unknown industry %q", p.Industry)}
	}
	if !p.Size.Valid() {
		return &ValidationError{Field: "size", Message: fmt.Sprintf("unknown business size %q", p.Size)}
	}
	if len(p.Goals) == 0 {
		return &ValidationError{Field: "goals", Message: "at least one goal is required"}
	}
	seen := make(map[Goal]bool, len(p.Goals))
	for _, g := range p.Goals {
		if !g.Valid() {
			return &ValidationError{Field: "goals", Message: fmt.Sprintf("unknown goal %q", g)}
		}
		if seen[g] {
			return &ValidationError{Field: "goals", Message: fmt.Sprintf("goal %q selected twice", g)}
		}
		seen[g] = true
	}
	return nil
}

// DayRange is an inclusive span of plan days. Its text form is "start-end".
type DayRange struct {
	Start int
	End   int
}

func (d DayRange) String() string {
	return fmt.Sprintf("%d-%d", d.Start, d.End)
}

func (d DayRange) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DayRange) UnmarshalText(b []byte) error {
	parsed, err := ParseDayRange(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDayRange parses "4-7". A single day "5" is accepted as 5-5.
func ParseDayRange(s string) (DayRange, error) {
	startStr, endStr, found := strings.Cut(strings.TrimSpace(s), "-")
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return DayRange{}, fmt.Errorf("invalid day range %q", s)
	}
	end := start
	if found {
		end, err = strconv.Atoi(strings.TrimSpace(endStr))
		if err != nil {
			return DayRange{}, fmt.Errorf("invalid day range %q", s)
		}
	}
	if start < 1 || end < start {
		return DayRange{}, fmt.Errorf("invalid day range %q", s)
	}
	return DayRange{Start: start, End: end}, nil
}

// Phase is one stage of a roadmap.
type Phase struct {
	Title string   `json:"title"`
	Days  DayRange `json:"days"`
	Tasks []string `json:"tasks"`
}

// Roadmap is the four-phase plan produced for a business profile.
type Roadmap struct {
	Business string       `json:"business"`
	Industry Industry     `json:"industry"`
	Size     BusinessSize `json:"size"`
	Goals    []Goal       `json:"goals"`
	Phases   []Phase      `json:"phases"`
}

// ScheduledTask is a dated, timed unit of work in the task calendar.
type ScheduledTask struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date" example:"2024-01-10"`
	Time     string `json:"time" example:"09:00"`
	Category string `json:"category"`
}

// Event is an entry of the workspace event log.
type Event struct {
	ID         int64  `json:"id"`
	TS         string `json:"ts" format:"date-time"`
	Type       string `json:"type"`
	EntityKind string `json:"entity_kind"`
	EntityID   string `json:"entity_id,omitempty"`
	ActorID    string `json:"actor_id"`
	Payload    string `json:"payload_json"`
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)
