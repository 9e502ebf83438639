package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"vaccination-schedule-api/internal/logger"
)

const defaultQueryTimeout = 5 * time.Second

// Store runs every operation as its own unit of work: acquire a pooled
// connection under a deadline, run the statement, release on every exit path.
type Store struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	log     logger.Logger
}

func New(pool *pgxpool.Pool, log logger.Logger, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &Store{pool: pool, timeout: timeout, log: log}
}

// acquire checks out a connection under the store's query timeout. The
// returned done func releases the connection and cancels the deadline; callers
// must defer it immediately.
func (s *Store) acquire(ctx context.Context) (context.Context, *pgxpool.Conn, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		cancel()
		s.log.Errorf("acquire connection: %v", err)
		return nil, nil, nil, connErr(err)
	}
	done := func() {
		conn.Release()
		cancel()
	}
	return ctx, conn, done, nil
}
