package postgres

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// NewConnection exposes pool through database/sql for repositories written
// against *sql.DB. Closing the returned DB does not close pool.
func NewConnection(pool *pgxpool.Pool) *sql.DB {
	db := stdlib.OpenDBFromPool(pool)

	db.SetMaxOpenConns(int(pool.Config().MaxConns))
	db.SetMaxIdleConns(5)

	return db
}
