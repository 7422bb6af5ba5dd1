// Package postgres is the data-access collaborator: batched reads of
// score records, student profiles and lesson progress for one report
// request. The core above it performs no I/O.
package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewDB opens a database/sql handle through the pgx stdlib driver.
func NewDB(cfg *Config) (*sql.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	return db, nil
}
