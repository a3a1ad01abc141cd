// Package vectorstore persists embedding vectors with metadata and serves
// filtered top-K similarity queries.
package vectorstore

import "context"

// Metadata travels with every stored vector and comes back on query matches.
type Metadata struct {
	Text    string  `json:"text"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	VideoID string  `json:"videoId"`
}

// Record is one upserted vector. ID is a composite of video identity and
// ordinal, so re-upserting a video overwrites its previous records.
type Record struct {
	ID       string
	Values   []float32
	Metadata Metadata
}

// Match is a query result: stored metadata plus a cosine similarity score.
type Match struct {
	Metadata
	Score float64
}

// Store is the gateway contract. Queries are always filtered by video
// identity so multiple videos coexist in one collection without
// cross-contamination.
type Store interface {
	Upsert(ctx context.Context, records []Record) error
	Query(ctx context.Context, videoID string, vector []float32, topK int) ([]Match, error)
}
