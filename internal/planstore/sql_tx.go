package planstore

import (
	"context"
	"database/sql"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
)

// txStore writes through an open transaction and reads from it too, so a
// caller sees its own uncommitted save.
type txStore struct {
	s  SQL
	tx *sql.Tx
}

// WithTx binds the store to tx until the transaction ends.
func (s SQL) WithTx(tx *sql.Tx) Store {
	return txStore{s: s, tx: tx}
}

func (t txStore) Save(ctx context.Context, rm domain.Roadmap) error {
	return t.s.SaveTx(ctx, t.tx, rm)
}

func (t txStore) Load(ctx context.Context) (domain.Roadmap, error) {
	return decode(t.tx.QueryRowContext(ctx, loadQuery, Key))
}
