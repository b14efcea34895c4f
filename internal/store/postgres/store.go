// Package postgres implements the persistence collaborator contracts on a
// pgx connection pool. The schema (see schema.sql) carries the unique index
// on lower(email) that backstops concurrent registration and bootstrap races.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/publicworks/portal/internal/domain"
)

type Store struct {
	pool       *pgxpool.Pool
	users      *UserRepo
	workOrders *WorkOrderRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:       pool,
		users:      NewUserRepo(pool),
		workOrders: NewWorkOrderRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Users() domain.UserRepository           { return s.users }
func (s *Store) WorkOrders() domain.WorkOrderRepository { return s.workOrders }
