package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"devevent/internal/connection"
)

// uniqueViolation is the SQLSTATE raised when a unique index rejects a write.
const uniqueViolation = "23505"

// DB yields the *sql.DB repositories operate on.
type DB interface {
	Acquire(ctx context.Context) (*sql.DB, error)
}

// Connect returns a connection factory that opens dsn with lib/pq and pings it.
func Connect(dsn string) connection.Factory[*sql.DB] {
	return func(ctx context.Context) (*sql.DB, error) {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return db, nil
	}
}

// Close closes db.
func Close(_ context.Context, db *sql.DB) error {
	return db.Close()
}

func acquire(ctx context.Context, db DB) (*sql.DB, error) {
	handle, err := db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire database: %w", err)
	}
	return handle, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
