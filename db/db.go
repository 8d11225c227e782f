package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id         SERIAL PRIMARY KEY,
		title      TEXT NOT NULL,
		poster     TEXT NOT NULL DEFAULT '',
		poster_key TEXT,
		year       INTEGER NOT NULL DEFAULT 0,
		plot       TEXT NOT NULL DEFAULT '',
		CONSTRAINT movies_title_year_key UNIQUE (title, year)
	)`,
	`CREATE TABLE IF NOT EXISTS champions (
		id         SERIAL PRIMARY KEY,
		movie_id   INTEGER NOT NULL,
		title      TEXT NOT NULL,
		battle_id  TEXT NOT NULL,
		round_size INTEGER NOT NULL,
		crowned_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS champions_movie_id_idx ON champions (movie_id)`,
}

// Migrate creates the tables the service needs when they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
