// Package migrate brings a workspace database up to the embedded schema.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed sql/*.sql
var schemaFS embed.FS

// Migration is one embedded NNN_name.sql file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Applied is a row of the migration history.
type Applied struct {
	Version   int    `json:"version"`
	Name      string `json:"name"`
	AppliedAt string `json:"applied_at"`
}

const historyTable = `CREATE TABLE IF NOT EXISTS schema_migrations(
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
)`

func parseFileName(file string) (int, string, error) {
	base := strings.TrimSuffix(file, ".sql")
	num, name, ok := strings.Cut(base, "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("migration %s: want NNN_name.sql", file)
	}
	v, err := strconv.Atoi(num)
	if err != nil || v <= 0 {
		return 0, "", fmt.Errorf("migration %s: bad version %q", file, num)
	}
	return v, name, nil
}

// Embedded lists the bundled migrations by ascending version.
func Embedded() ([]Migration, error) {
	entries, err := schemaFS.ReadDir("sql")
	if err != nil {
		return nil, err
	}
	seen := map[int]string{}
	var out []Migration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		v, name, err := parseFileName(entry.Name())
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[v]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %d", prev, entry.Name(), v)
		}
		seen[v] = entry.Name()
		body, err := schemaFS.ReadFile(path.Join("sql", entry.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Version: v, Name: name, SQL: string(body)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func Migrate(db *sql.DB) error {
	return MigrateContext(context.Background(), db)
}

// MigrateContext applies each pending migration in its own transaction and
// records it in schema_migrations.
func MigrateContext(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, historyTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	pending, err := Pending(ctx, db)
	if err != nil {
		return err
	}
	for _, m := range pending {
		if err := apply(ctx, db, m); err != nil {
			return err
		}
	}
	return nil
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("migration %03d_%s: %w", m.Version, m.Name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations(version,name) VALUES (?,?)`, m.Version, m.Name); err != nil {
		return fmt.Errorf("record migration %d: %w", m.Version, err)
	}
	return tx.Commit()
}

// Pending returns the embedded migrations not yet in the history.
func Pending(ctx context.Context, db *sql.DB) ([]Migration, error) {
	all, err := Embedded()
	if err != nil {
		return nil, err
	}
	done, err := History(ctx, db)
	if err != nil {
		return nil, err
	}
	applied := make(map[int]bool, len(done))
	for _, a := range done {
		applied[a.Version] = true
	}
	var out []Migration
	for _, m := range all {
		if !applied[m.Version] {
			out = append(out, m)
		}
	}
	return out, nil
}

// History lists applied migrations; a fresh database has none.
func History(ctx context.Context, db *sql.DB) ([]Applied, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_migrations'`).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	rows, err := db.QueryContext(ctx, `SELECT version,name,applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Applied
	for rows.Next() {
		var a Applied
		if err := rows.Scan(&a.Version, &a.Name, &a.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Version is the highest applied migration, 0 before the first run.
func Version(ctx context.Context, db *sql.DB) (int, error) {
	h, err := History(ctx, db)
	if err != nil || len(h) == 0 {
		return 0, err
	}
	return h[len(h)-1].Version, nil
}
