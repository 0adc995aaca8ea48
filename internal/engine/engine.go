package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/briangibbs/overwhelmed-tools/internal/config"
	"github.com/briangibbs/overwhelmed-tools/internal/domain"
	"github.com/briangibbs/overwhelmed-tools/internal/events"
	"github.com/briangibbs/overwhelmed-tools/internal/exporter"
	"github.com/briangibbs/overwhelmed-tools/internal/ical"
	"github.com/briangibbs/overwhelmed-tools/internal/planstore"
	"github.com/briangibbs/overwhelmed-tools/internal/readiness"
	"github.com/briangibbs/overwhelmed-tools/internal/repo"
	"github.com/briangibbs/overwhelmed-tools/internal/roadmap"
	"github.com/briangibbs/overwhelmed-tools/internal/scheduler"
)

type Engine struct {
	DB     *sql.DB
	Repo   repo.Repo
	Plans  planstore.SQL
	Events events.Writer
	Config *config.Config
	Now    func() time.Time
	NewID  func() string
	Logger *log.Logger
}

func New(db *sql.DB, cfg *config.Config) Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return Engine{
		DB:     db,
		Repo:   repo.Repo{DB: db},
		Plans:  planstore.SQL{DB: db},
		Events: events.Writer{DB: db},
		Config: cfg,
		Now:    time.Now,
		NewID:  uuid.NewString,
	}
}

func (e Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Engine) newID() string {
	if e.NewID != nil {
		return e.NewID()
	}
	return uuid.NewString()
}

func (e Engine) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

func (e Engine) location() (*time.Location, error) {
	loc, err := e.Config.Location()
	if err != nil {
		return nil, fmt.Errorf("scheduler timezone %q: %w", e.Config.Scheduler.Timezone, err)
	}
	return loc, nil
}

func (e Engine) taskRepo() repo.Repo {
	r := e.Repo
	r.Now = e.now
	return r
}

func (e Engine) writer() events.Writer {
	w := e.Events
	w.Now = e.now
	return w
}

// GenerateRoadmap builds the roadmap for p and replaces the stored one.
func (e Engine) GenerateRoadmap(ctx context.Context, p domain.BusinessProfile, actorID string) (domain.Roadmap, error) {
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.Roadmap{}, err
	}
	defer tx.Rollback()

	plans := e.Plans
	plans.Now = e.now
	syn := roadmap.Synthesizer{Store: plans.WithTx(tx), Logger: e.Logger}
	rm, err := syn.Generate(ctx, p)
	if err != nil {
		return domain.Roadmap{}, err
	}
	goals := make([]string, len(p.Goals))
	for i, g := range p.Goals {
		goals[i] = string(g)
	}
	if err := e.writer().Append(ctx, tx, events.RoadmapGenerated, "roadmap", planstore.Key, actorID, events.EventPayload{
		"business": p.Name,
		"industry": p.Industry,
		"size":     p.Size,
		"goals":    goals,
	}); err != nil {
		return domain.Roadmap{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Roadmap{}, err
	}
	return rm, nil
}

// LatestRoadmap returns the stored roadmap or planstore.ErrEmpty.
func (e Engine) LatestRoadmap(ctx context.Context) (domain.Roadmap, error) {
	return e.Plans.Load(ctx)
}

// session loads the persisted task list into a scheduler.
func (e Engine) session(ctx context.Context) (*scheduler.Scheduler, error) {
	loc, err := e.location()
	if err != nil {
		return nil, err
	}
	tasks, err := e.Repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	s := scheduler.New(e.Plans)
	s.Slots = e.Config.Scheduler.Slots
	s.Now = func() time.Time { return e.now().In(loc) }
	s.NewID = e.newID
	s.Restore(tasks)
	return s, nil
}

func (e Engine) ListTasks(ctx context.Context) ([]domain.ScheduledTask, error) {
	return e.Repo.ListTasks(ctx)
}

func (e Engine) GetTask(ctx context.Context, id string) (domain.ScheduledTask, error) {
	return e.Repo.GetTask(ctx, id)
}

// ImportTasks appends the stored roadmap's tasks to the task list. An empty plan
// store is not an error: nothing is added.
func (e Engine) ImportTasks(ctx context.Context, actorID string) ([]domain.ScheduledTask, error) {
	s, err := e.session(ctx)
	if err != nil {
		return nil, err
	}
	added, err := s.Import(ctx)
	if err != nil {
		if scheduler.IsEmptyStore(err) {
			e.logger().Printf("import skipped: no roadmap generated yet")
			return []domain.ScheduledTask{}, nil
		}
		return nil, fmt.Errorf("import roadmap: %w", err)
	}
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	if err := e.taskRepo().InsertTasks(ctx, tx, added); err != nil {
		return nil, fmt.Errorf("insert tasks: %w", err)
	}
	if err := e.writer().Append(ctx, tx, events.TasksImported, "task", "", actorID, events.EventPayload{"count": len(added)}); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	e.logger().Printf("imported %d tasks from roadmap", len(added))
	return added, nil
}

// AddTask appends a manually entered task.
func (e Engine) AddTask(ctx context.Context, n scheduler.NewTask, actorID string) (domain.ScheduledTask, error) {
	s, err := e.session(ctx)
	if err != nil {
		return domain.ScheduledTask{}, err
	}
	t, err := s.Add(n)
	if err != nil {
		return domain.ScheduledTask{}, err
	}
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.ScheduledTask{}, err
	}
	defer tx.Rollback()
	if err := e.taskRepo().InsertTasks(ctx, tx, []domain.ScheduledTask{t}); err != nil {
		return domain.ScheduledTask{}, fmt.Errorf("insert task: %w", err)
	}
	if err := e.writer().Append(ctx, tx, events.TaskCreated, "task", t.ID, actorID, events.EventPayload{
		"title":    t.Title,
		"date":     t.Date,
		"time":     t.Time,
		"category": t.Category,
	}); err != nil {
		return domain.ScheduledTask{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.ScheduledTask{}, err
	}
	return t, nil
}

// DeleteTask removes a task. Unknown ids are a no-op and report false.
func (e Engine) DeleteTask(ctx context.Context, id, actorID string) (bool, error) {
	if id == "" {
		return false, domain.Required("id")
	}
	s, err := e.session(ctx)
	if err != nil {
		return false, err
	}
	if !s.Delete(id) {
		return false, nil
	}
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()
	if err := e.Repo.DeleteTask(ctx, tx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := e.writer().Append(ctx, tx, events.TaskDeleted, "task", id, actorID, nil); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// ClearTasks removes every task and returns how many were removed.
func (e Engine) ClearTasks(ctx context.Context, actorID string) (int64, error) {
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	n, err := e.Repo.ClearTasks(ctx, tx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if err := e.writer().Append(ctx, tx, events.TaskDeleted, "task", "", actorID, events.EventPayload{"count": n}); err != nil {
			return 0, err
		}
	}
	return n, tx.Commit()
}

// RenderCalendar encodes the current task list for a calendar application
// without recording an export.
func (e Engine) RenderCalendar(ctx context.Context, kind domain.CalendarKind) (ical.File, int, error) {
	tasks, err := e.Repo.ListTasks(ctx)
	if err != nil {
		return ical.File{}, 0, err
	}
	opts, err := e.Config.CalendarOptions()
	if err != nil {
		return ical.File{}, 0, err
	}
	opts.Stamp = e.now()
	f, err := ical.Export(tasks, kind, e.Config.Calendar.FileBase, opts)
	if err != nil {
		return ical.File{}, 0, err
	}
	return f, len(tasks), nil
}

// ExportCalendar renders the calendar, records the export in the event log and
// returns the document with the number of tasks it holds.
func (e Engine) ExportCalendar(ctx context.Context, kind domain.CalendarKind, actorID string) (ical.File, int, error) {
	f, count, err := e.RenderCalendar(ctx, kind)
	if err != nil {
		return ical.File{}, 0, err
	}
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return ical.File{}, 0, err
	}
	defer tx.Rollback()
	if err := e.writer().Append(ctx, tx, events.CalendarExported, "calendar", string(kind), actorID, events.EventPayload{
		"file":  f.Name,
		"count": count,
	}); err != nil {
		return ical.File{}, 0, err
	}
	if err := tx.Commit(); err != nil {
		return ical.File{}, 0, err
	}
	e.logger().Printf("exported %d tasks to %s", count, f.Name)
	return f, count, nil
}

// ExportSheet renders the task list as an xlsx workbook.
func (e Engine) ExportSheet(ctx context.Context) ([]byte, error) {
	tasks, err := e.Repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, &domain.ValidationError{Field: "tasks", Message: "nothing to export"}
	}
	return exporter.TaskSheetBytes(tasks)
}

// Assess scores readiness answers and keeps the result in the assessment history.
func (e Engine) Assess(ctx context.Context, answers []int, actorID string) (readiness.Result, repo.Assessment, error) {
	res, err := readiness.Assess(answers)
	if err != nil {
		return readiness.Result{}, repo.Assessment{}, err
	}
	a := repo.Assessment{
		ID:        e.newID(),
		Score:     res.Score,
		Level:     res.Level.Name,
		Answers:   append([]int(nil), answers...),
		CreatedAt: e.now().UTC().Format(time.RFC3339),
	}
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return readiness.Result{}, repo.Assessment{}, err
	}
	defer tx.Rollback()
	if err := e.Repo.InsertAssessment(ctx, tx, a); err != nil {
		return readiness.Result{}, repo.Assessment{}, fmt.Errorf("insert assessment: %w", err)
	}
	if err := e.writer().Append(ctx, tx, events.AssessmentCreated, "assessment", a.ID, actorID, events.EventPayload{
		"score": a.Score,
		"level": a.Level,
	}); err != nil {
		return readiness.Result{}, repo.Assessment{}, err
	}
	if err := tx.Commit(); err != nil {
		return readiness.Result{}, repo.Assessment{}, err
	}
	return res, a, nil
}
