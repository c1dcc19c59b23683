package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/lib/pq"
)

// PostgresWriter persists each term's records to PostgreSQL.
type PostgresWriter struct {
	sqlWriter
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter. The ping is retried pingAttempts
// times while the database starts up.
func NewPostgresWriter(dsn string, pingAttempts int) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if pingAttempts < 1 {
		pingAttempts = 1
	}
	for i := 0; i < pingAttempts; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		if i < pingAttempts-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{sqlWriter{
		db:          db,
		name:        "postgres",
		placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	}}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS businesses (
			id              BIGSERIAL PRIMARY KEY,
			search_term     TEXT             NOT NULL,
			name            TEXT             NOT NULL DEFAULT '',
			address         TEXT             NOT NULL DEFAULT '',
			website         TEXT             NOT NULL DEFAULT '',
			phone_number    TEXT             NOT NULL DEFAULT '',
			reviews_count   INTEGER          NOT NULL DEFAULT 0,
			reviews_average DOUBLE PRECISION NOT NULL DEFAULT 0,
			latitude        DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude       DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at      TIMESTAMPTZ      NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_businesses_term   ON businesses(search_term);
		CREATE INDEX IF NOT EXISTS idx_businesses_rating ON businesses(reviews_average);
	`)
	return err
}
