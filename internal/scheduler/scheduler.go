package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
	"github.com/briangibbs/overwhelmed-tools/internal/planstore"
)

// DefaultSlots gives two tasks per day, morning then afternoon.
var DefaultSlots = []string{"09:00", "14:00"}

// NewTask carries the fields of a manually entered task.
type NewTask struct {
	Title    string `json:"title"`
	Date     string `json:"date" example:"2024-01-10"`
	Time     string `json:"time" example:"09:00"`
	Category string `json:"category"`
}

// Validate requires every field and checks the date and time layouts.
func (n NewTask) Validate() error {
	switch {
	case strings.TrimSpace(n.Title) == "":
		return domain.Required("title")
	case strings.TrimSpace(n.Date) == "":
		return domain.Required("date")
	case strings.TrimSpace(n.Time) == "":
		return domain.Required("time")
	case strings.TrimSpace(n.Category) == "":
		return domain.Required("category")
	}
	if _, err := time.Parse(domain.DateLayout, n.Date); err != nil {
		return &domain.ValidationError{Field: "date", Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", n.Date)}
	}
	if _, err := time.Parse(domain.TimeLayout, n.Time); err != nil {
		return &domain.ValidationError{Field: "time", Message: fmt.Sprintf("%q is not an HH:MM time", n.Time)}
	}
	return nil
}

// ValidateSlots checks a slot list for use with Expand.
func ValidateSlots(slots []string) error {
	if len(slots) == 0 {
		return &domain.ValidationError{Field: "slots", Message: "at least one time slot is required"}
	}
	for _, s := range slots {
		if _, err := time.Parse(domain.TimeLayout, s); err != nil {
			return &domain.ValidationError{Field: "slots", Message: fmt.Sprintf("%q is not an HH:MM time", s)}
		}
	}
	return nil
}

// Expand turns a roadmap into dated tasks. Within a phase the i-th task lands
// on day startDay-1+i/len(slots) counted from today, at slots[i%len(slots)].
// Phases keep roadmap order and tasks keep phase order.
func Expand(rm domain.Roadmap, today time.Time, slots []string, newID func() string) []domain.ScheduledTask {
	if len(slots) == 0 {
		slots = DefaultSlots
	}
	if newID == nil {
		newID = uuid.NewString
	}
	y, m, d := today.Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	var out []domain.ScheduledTask
	for _, ph := range rm.Phases {
		for i, title := range ph.Tasks {
			day := base.AddDate(0, 0, ph.Days.Start-1+i/len(slots))
			out = append(out, domain.ScheduledTask{
				ID:       newID(),
				Title:    title,
				Date:     day.Format(domain.DateLayout),
				Time:     slots[i%len(slots)],
				Category: ph.Title,
			})
		}
	}
	return out
}

// Scheduler owns the task list of one calendar session.
type Scheduler struct {
	Store planstore.Store
	Slots []string
	Now   func() time.Time
	NewID func() string

	mu    sync.Mutex
	tasks []domain.ScheduledTask
}

// New returns a scheduler reading roadmaps from store.
func New(store planstore.Store) *Scheduler {
	return &Scheduler{Store: store, Slots: DefaultSlots, Now: time.Now, NewID: uuid.NewString}
}

func (s *Scheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Scheduler) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// Restore replaces the session's tasks, e.g. with a persisted list.
func (s *Scheduler) Restore(tasks []domain.ScheduledTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]domain.ScheduledTask(nil), tasks...)
}

// Tasks returns a copy of the task list in insertion order.
func (s *Scheduler) Tasks() []domain.ScheduledTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ScheduledTask(nil), s.tasks...)
}

// Import appends the tasks of the stored roadmap. It returns planstore.ErrEmpty
// when nothing has been generated yet, leaving the list untouched. Importing
// twice appends the tasks twice.
func (s *Scheduler) Import(ctx context.Context) ([]domain.ScheduledTask, error) {
	if s.Store == nil {
		return nil, planstore.ErrEmpty
	}
	rm, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	added := Expand(rm, s.now(), s.Slots, s.newID)
	s.mu.Lock()
	s.tasks = append(s.tasks, added...)
	s.mu.Unlock()
	return added, nil
}

// Add appends a manually entered task.
func (s *Scheduler) Add(n NewTask) (domain.ScheduledTask, error) {
	if err := n.Validate(); err != nil {
		return domain.ScheduledTask{}, err
	}
	t := domain.ScheduledTask{
		ID:       s.newID(),
		Title:    strings.TrimSpace(n.Title),
		Date:     n.Date,
		Time:     n.Time,
		Category: strings.TrimSpace(n.Category),
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()
	return t, nil
}

// Delete removes the task with id and reports whether it existed.
func (s *Scheduler) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// IsEmptyStore reports whether err means no roadmap was available to import.
func IsEmptyStore(err error) bool {
	return errors.Is(err, planstore.ErrEmpty)
}
