package planstore

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/briangibbs/overwhelmed-tools/internal/db"
	"github.com/briangibbs/overwhelmed-tools/internal/domain"
	"github.com/briangibbs/overwhelmed-tools/internal/migrate"
)

func sample(name string) domain.Roadmap {
	return domain.Roadmap{
		Business: name,
		Industry: domain.IndustrySaaS,
		Size:     domain.SizeStartup,
		Goals:    []domain.Goal{domain.GoalEnhanceDataAnalytics},
		Phases: []domain.Phase{
			{Title: "Assessment & Planning", Days: domain.DayRange{Start: 1, End: 3}, Tasks: []string{"a", "b"}},
		},
	}
}

func TestMemoryLastWriteWins(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if _, err := m.Load(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	m.Save(ctx, sample("one"))
	m.Save(ctx, sample("two"))
	got, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Business != "two" || m.Version() != 2 {
		t.Fatalf("unexpected state %s v%d", got.Business, m.Version())
	}
	got.Phases[0].Tasks[0] = "mutated"
	again, _ := m.Load(ctx)
	if again.Phases[0].Tasks[0] != "a" {
		t.Fatalf("Load must return a copy")
	}
}

func openSQL(t *testing.T) SQL {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return SQL{DB: conn, Now: func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }}
}

func TestSQLRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openSQL(t)
	if _, err := s.Load(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if err := s.Save(ctx, sample("one")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, sample("two")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, sample("two")) {
		t.Fatalf("unexpected roadmap %+v", got)
	}
	var rows int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM plan_store`).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected a single slot, got %d rows", rows)
	}
}

func TestSQLWithTxRollback(t *testing.T) {
	ctx := context.Background()
	s := openSQL(t)
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	store := s.WithTx(tx)
	if err := store.Save(ctx, sample("draft")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil || got.Business != "draft" {
		t.Fatalf("tx should see its own save: %+v %v", got, err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("rolled back save must not persist, got %v", err)
	}
}
