package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/briangibbs/overwhelmed-tools/internal/config"
	"github.com/briangibbs/overwhelmed-tools/internal/db"
	"github.com/briangibbs/overwhelmed-tools/internal/engine"
	"github.com/briangibbs/overwhelmed-tools/internal/migrate"
)

// Workspace is an opened, migrated workspace database with its engine.
type Workspace struct {
	Dir    string
	Conn   *sql.DB
	Config *config.Config
	Engine engine.Engine
}

// Options select the workspace and an optional explicit config file.
type Options struct {
	Dir        string
	ConfigPath string
	Logger     *log.Logger
}

// Open resolves config (explicit file, then workspace file, then defaults),
// opens the database and applies migrations.
func Open(ctx context.Context, opts Options) (*Workspace, error) {
	cfg, err := ResolveConfig(opts.Dir, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	conn, err := db.Open(db.Config{Workspace: opts.Dir})
	if err != nil {
		return nil, err
	}
	if err := migrate.MigrateContext(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate %s: %w", db.Path(opts.Dir), err)
	}
	e := engine.New(conn, cfg)
	e.Logger = opts.Logger
	return &Workspace{Dir: opts.Dir, Conn: conn, Config: cfg, Engine: e}, nil
}

func (w *Workspace) Close() error {
	return w.Conn.Close()
}

// ResolveConfig loads the config used by a workspace.
func ResolveConfig(dir, explicitPath string) (*config.Config, error) {
	if explicitPath != "" {
		cfg, err := config.FromFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", explicitPath, err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg, nil
}
