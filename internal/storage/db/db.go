// Package db opens and verifies the Postgres connection used by the
// vector store.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Pool defaults, used when the corresponding Config field is unset.
const (
	defaultMaxOpenConns = 25
	defaultMaxIdleConns = 5
)

type Config struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

func (cfg Config) poolLimits() (maxOpen, maxIdle int) {
	maxOpen = cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle = cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdleConns
	}
	return maxOpen, maxIdle
}

// NewConnection creates and verifies a new database connection
func NewConnection(cfg Config) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	maxOpen, maxIdle := cfg.poolLimits()
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)

	return db, nil
}

// MaskDatabaseURL masks sensitive information in database URL for logging
func MaskDatabaseURL(url string) string {
	if url == "" {
		return ""
	}
	return "postgres://[masked]@[masked]"
}
