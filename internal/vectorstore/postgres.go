package vectorstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"videoinsight/internal/embeddings"
)

// PostgresStore keeps vectors in a pgvector-enabled Postgres table, one
// table per logical collection.
type PostgresStore struct {
	db    *sql.DB
	table string
}

// NewPostgresStore returns a store over the named collection table.
func NewPostgresStore(db *sql.DB, table string) *PostgresStore {
	return &PostgresStore{db: db, table: table}
}

// EnsureSchema creates the pgvector extension and the collection tables.
func EnsureSchema(ctx context.Context, db *sql.DB, tables ...string) error {
	if _, err := db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	for _, table := range tables {
		stmt := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         text PRIMARY KEY,
				video_id   text NOT NULL,
				chunk_text text NOT NULL,
				chunk_start float8 NOT NULL,
				chunk_end   float8 NOT NULL,
				embedding  vector(%d) NOT NULL
			)`, table, embeddings.Dimensions)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}

		idx := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_video_id_idx ON %s (video_id)`, table, table)
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", table, err)
		}
	}
	return nil
}

// Upsert writes records by id; re-upserting overwrites.
func (s *PostgresStore) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	stmt, err := s.db.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, video_id, chunk_text, chunk_start, chunk_end, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			video_id = EXCLUDED.video_id,
			chunk_text = EXCLUDED.chunk_text,
			chunk_start = EXCLUDED.chunk_start,
			chunk_end = EXCLUDED.chunk_end,
			embedding = EXCLUDED.embedding
	`, s.table))
	if err != nil {
		return fmt.Errorf("prepare statement failed: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err = stmt.ExecContext(ctx,
			r.ID,
			r.Metadata.VideoID,
			r.Metadata.Text,
			r.Metadata.Start,
			r.Metadata.End,
			pgvector.NewVector(r.Values),
		)
		if err != nil {
			return fmt.Errorf("record upsert failed: %w", err)
		}
	}
	return nil
}

// Query returns up to topK records for videoID ranked by cosine similarity.
func (s *PostgresStore) Query(ctx context.Context, videoID string, vector []float32, topK int) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT
			video_id,
			chunk_text,
			chunk_start,
			chunk_end,
			1 - (embedding <=> $1) AS similarity
		FROM %s
		WHERE video_id = $2
		ORDER BY embedding <=> $1
		LIMIT $3
	`, s.table), pgvector.NewVector(vector), videoID, topK)
	if err != nil {
		return nil, fmt.Errorf("vector query failed: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		err := rows.Scan(
			&m.VideoID,
			&m.Text,
			&m.Start,
			&m.End,
			&m.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
