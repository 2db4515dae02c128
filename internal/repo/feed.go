package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ChangeChannel is the LISTEN/NOTIFY channel the herbs trigger signals on.
// The payload is the triggering operation (INSERT, DELETE, ...).
const ChangeChannel = "herbs_changed"

// ChangeFeed delivers a signal whenever the herbs table changes.
type ChangeFeed interface {
	// Listen blocks, calling onChange once per notification, until ctx is
	// cancelled (returns nil) or the connection fails (returns the error).
	Listen(ctx context.Context, onChange func(op string)) error
}

// pgChangeFeed listens on a dedicated connection held out of the pool.
type pgChangeFeed struct {
	pool *pgxpool.Pool
}

// NewChangeFeed constructs a ChangeFeed backed by pool. Each Listen call holds
// one pooled connection for as long as it runs.
func NewChangeFeed(pool *pgxpool.Pool) ChangeFeed {
	return &pgChangeFeed{pool: pool}
}

func (f *pgChangeFeed) Listen(ctx context.Context, onChange func(op string)) error {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("repo.ChangeFeed.Listen: acquire: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+ChangeChannel); err != nil {
		return fmt.Errorf("repo.ChangeFeed.Listen: listen: %w", err)
	}

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("repo.ChangeFeed.Listen: wait: %w", err)
		}
		onChange(n.Payload)
	}
}
