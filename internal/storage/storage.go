package storage

import (
	"context"
	"errors"

	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	*Queries
	db *pgxpool.Pool
}

var _ models.TxStore = (*Storage)(nil)

func NewStorage(db *pgxpool.Pool) (*Storage, error) {
	if db == nil {
		return nil, errors.New("database pool is nil")
	}
	return &Storage{Queries: New(db), db: db}, nil
}

// RunInTx commits when fn returns nil and rolls back otherwise. The
// connection goes back to the pool on every path.
func (s *Storage) RunInTx(ctx context.Context, fn func(store models.Store) error) error {
	return pgx.BeginTxFunc(ctx, s.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(New(tx))
	})
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
