package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
)

type Repo struct {
	DB *sql.DB
	// Now stamps created_at columns; nil means time.Now.
	Now func() time.Time
}

func (r Repo) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

var ErrNotFound = errors.New("not found")

const taskColumns = `id,title,date,time,category`

func scanTask(row interface{ Scan(...any) error }) (domain.ScheduledTask, error) {
	var t domain.ScheduledTask
	err := row.Scan(&t.ID, &t.Title, &t.Date, &t.Time, &t.Category)
	if err == sql.ErrNoRows {
		return t, ErrNotFound
	}
	return t, err
}

// ListTasks returns the persisted task list in insertion order.
func (r Repo) ListTasks(ctx context.Context) ([]domain.ScheduledTask, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []domain.ScheduledTask{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r Repo) GetTask(ctx context.Context, id string) (domain.ScheduledTask, error) {
	return scanTask(r.DB.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id=?`, id))
}

// InsertTasks appends tasks after the current last position.
func (r Repo) InsertTasks(ctx context.Context, tx *sql.Tx, tasks []domain.ScheduledTask) error {
	if len(tasks) == 0 {
		return nil
	}
	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position),0)+1 FROM tasks`).Scan(&next); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tasks(id,position,title,date,time,category,created_at) VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	now := r.now().UTC().Format(time.RFC3339)
	for i, t := range tasks {
		if _, err := stmt.ExecContext(ctx, t.ID, next+i, t.Title, t.Date, t.Time, t.Category, now); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTask removes a task; it returns ErrNotFound when nothing matched.
func (r Repo) DeleteTask(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearTasks empties the task list.
func (r Repo) ClearTasks(ctx context.Context, tx *sql.Tx) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM tasks`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// LatestEvents returns up to limit events, newest first.
func (r Repo) LatestEvents(ctx context.Context, limit int, evtType, entityKind, entityID string) ([]domain.Event, error) {
	var (
		clauses []string
		args    []any
	)
	if evtType != "" {
		clauses = append(clauses, "type=?")
		args = append(args, evtType)
	}
	if entityKind != "" {
		clauses = append(clauses, "entity_kind=?")
		args = append(args, entityKind)
	}
	if entityID != "" {
		clauses = append(clauses, "entity_id=?")
		args = append(args, entityID)
	}
	query := `SELECT id,ts,type,entity_kind,COALESCE(entity_id,''),actor_id,payload_json FROM events`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []domain.Event{}
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.TS, &e.Type, &e.EntityKind, &e.EntityID, &e.ActorID, &e.Payload); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
