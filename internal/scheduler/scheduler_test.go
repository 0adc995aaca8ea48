package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
	"github.com/briangibbs/overwhelmed-tools/internal/planstore"
)

func sampleRoadmap() domain.Roadmap {
	return domain.Roadmap{
		Business: "Acme",
		Phases: []domain.Phase{
			{Title: "Assessment & Planning", Days: domain.DayRange{Start: 1, End: 3}, Tasks: []string{"a1", "a2", "a3", "a4"}},
			{Title: "Tool Selection & Setup", Days: domain.DayRange{Start: 4, End: 7}, Tasks: []string{"t1", "t2", "t3"}},
		},
	}
}

func counter() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestExpandPacing(t *testing.T) {
	today := time.Date(2024, 3, 30, 17, 45, 0, 0, time.UTC)
	got := Expand(sampleRoadmap(), today, DefaultSlots, counter())
	want := []struct{ date, time, cat string }{
		{"2024-03-30", "09:00", "Assessment & Planning"},
		{"2024-03-30", "14:00", "Assessment & Planning"},
		{"2024-03-31", "09:00", "Assessment & Planning"},
		{"2024-03-31", "14:00", "Assessment & Planning"},
		{"2024-04-02", "09:00", "Tool Selection & Setup"},
		{"2024-04-02", "14:00", "Tool Selection & Setup"},
		{"2024-04-03", "09:00", "Tool Selection & Setup"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Date != w.date || got[i].Time != w.time || got[i].Category != w.cat {
			t.Fatalf("task %d: got %+v want %+v", i, got[i], w)
		}
		if got[i].ID != fmt.Sprintf("id-%d", i+1) {
			t.Fatalf("task %d: unexpected id %q", i, got[i].ID)
		}
	}
	if got[4].Title != "t1" {
		t.Fatalf("phase order lost: %+v", got[4])
	}
}

func TestExpandCustomSlots(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := Expand(sampleRoadmap(), today, []string{"10:00"}, counter())
	if got[3].Date != "2024-01-04" || got[3].Time != "10:00" {
		t.Fatalf("one slot per day should push the fourth task to day 4: %+v", got[3])
	}
}

func TestImportEmptyStore(t *testing.T) {
	s := New(planstore.NewMemory())
	_, err := s.Import(context.Background())
	if !IsEmptyStore(err) {
		t.Fatalf("expected empty store error, got %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Fatalf("list must stay untouched")
	}
}

func TestImportTwiceAppends(t *testing.T) {
	store := planstore.NewMemory()
	if err := store.Save(context.Background(), sampleRoadmap()); err != nil {
		t.Fatalf("save: %v", err)
	}
	s := New(store)
	s.NewID = counter()
	s.Now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	for i := 0; i < 2; i++ {
		if _, err := s.Import(context.Background()); err != nil {
			t.Fatalf("import: %v", err)
		}
	}
	tasks := s.Tasks()
	if len(tasks) != 14 {
		t.Fatalf("expected 14 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != tasks[7].Title || tasks[0].ID == tasks[7].ID {
		t.Fatalf("second import should duplicate titles with new ids")
	}
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("import must not consume the stored roadmap: %v", err)
	}
}

func TestAddValidation(t *testing.T) {
	s := New(nil)
	cases := []NewTask{
		{Title: "", Date: "2024-01-10", Time: "09:00", Category: "c"},
		{Title: "x", Date: "", Time: "09:00", Category: "c"},
		{Title: "x", Date: "2024-01-10", Time: "", Category: "c"},
		{Title: "x", Date: "2024-01-10", Time: "09:00", Category: " "},
		{Title: "x", Date: "2024-13-10", Time: "09:00", Category: "c"},
		{Title: "x", Date: "2024-01-10", Time: "9am", Category: "c"},
	}
	for i, n := range cases {
		_, err := s.Add(n)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
	if len(s.Tasks()) != 0 {
		t.Fatalf("rejected tasks must not be added")
	}
	task, err := s.Add(NewTask{Title: " Kickoff ", Date: "2024-01-10", Time: "09:00", Category: "General"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if task.Title != "Kickoff" || task.ID == "" {
		t.Fatalf("unexpected task %+v", task)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := New(nil)
	s.NewID = counter()
	a, _ := s.Add(NewTask{Title: "a", Date: "2024-01-10", Time: "09:00", Category: "c"})
	b, _ := s.Add(NewTask{Title: "b", Date: "2024-01-10", Time: "14:00", Category: "c"})
	if !s.Delete(a.ID) {
		t.Fatalf("expected delete to report removal")
	}
	if s.Delete(a.ID) || s.Delete("missing") {
		t.Fatalf("unknown ids must be a no-op")
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != b.ID {
		t.Fatalf("unexpected remaining tasks %+v", tasks)
	}
}

func TestValidateSlots(t *testing.T) {
	if err := ValidateSlots(DefaultSlots); err != nil {
		t.Fatalf("default slots: %v", err)
	}
	if err := ValidateSlots(nil); err == nil {
		t.Fatalf("expected empty slots to fail")
	}
	if err := ValidateSlots([]string{"25:00"}); err == nil {
		t.Fatalf("expected bad slot to fail")
	}
}
