package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository holds the shared connection pool embedded by every pgsql
// repository. Writes in this package are single conditional statements, so
// there are no transaction helpers here; the status predicate on the UPDATE
// or DELETE is what guards concurrent access.
type BaseRepository struct {
	Pool *pgxpool.Pool
}
