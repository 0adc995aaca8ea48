package planstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
)

// SQL keeps the roadmap in the workspace database, table plan_store.
type SQL struct {
	DB  *sql.DB
	Now func() time.Time
}

func (s SQL) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s SQL) Save(ctx context.Context, rm domain.Roadmap) error {
	return s.SaveTx(ctx, nil, rm)
}

// SaveTx writes the roadmap inside tx when it is non-nil.
func (s SQL) SaveTx(ctx context.Context, tx *sql.Tx, rm domain.Roadmap) error {
	payload, err := json.Marshal(rm)
	if err != nil {
		return fmt.Errorf("marshal roadmap: %w", err)
	}
	const q = `INSERT INTO plan_store(key,value_json,updated_at) VALUES (?,?,?)
ON CONFLICT(key) DO UPDATE SET value_json=excluded.value_json, updated_at=excluded.updated_at`
	now := s.now().UTC().Format(time.RFC3339)
	if tx != nil {
		_, err = tx.ExecContext(ctx, q, Key, string(payload), now)
	} else {
		_, err = s.DB.ExecContext(ctx, q, Key, string(payload), now)
	}
	return err
}

const loadQuery = `SELECT value_json FROM plan_store WHERE key=?`

func (s SQL) Load(ctx context.Context) (domain.Roadmap, error) {
	return decode(s.DB.QueryRowContext(ctx, loadQuery, Key))
}

func decode(row *sql.Row) (domain.Roadmap, error) {
	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return domain.Roadmap{}, ErrEmpty
	}
	if err != nil {
		return domain.Roadmap{}, err
	}
	var rm domain.Roadmap
	if err := json.Unmarshal([]byte(payload), &rm); err != nil {
		return domain.Roadmap{}, fmt.Errorf("decode stored roadmap: %w", err)
	}
	return rm, nil
}
