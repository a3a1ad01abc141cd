// Package rag coordinates the retrieval-augmented chat pipeline: cache
// lookup, chunking, embedding, vector upsert, retrieval, prompt assembly
// and streamed generation.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"videoinsight/internal/generation"
	"videoinsight/internal/transcript"
	"videoinsight/internal/vectorstore"
)

// Client-error sentinels; handlers map these to 400 responses.
var (
	ErrMissingFields   = errors.New("missing question, videoId, or transcript")
	ErrEmptyTranscript = errors.New("transcript is empty or not available for this video")
	ErrNoContext       = errors.New("no relevant transcript context found for this video")
)

// Embedder turns texts into fixed-length vectors, preserving order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator is the model-fallback generation surface consumed by the
// pipelines.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Stream(ctx context.Context, prompt string) (<-chan generation.StreamToken, error)
}

// Cache is the subset of the cache contract the orchestrator needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, v any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

// ChatRequest is one chat turn over a video transcript.
type ChatRequest struct {
	Question   string
	VideoID    string
	Transcript []transcript.Cue
}

// Orchestrator owns the per-request RAG state machine. All dependencies are
// injected; there is no package-level state.
type Orchestrator struct {
	cache     Cache
	embedder  Embedder
	store     vectorstore.Store
	generator Generator
	log       *logrus.Logger

	chunkSize int
	topK      int
	cacheTTL  time.Duration
}

// NewOrchestrator wires the chat pipeline.
func NewOrchestrator(
	cache Cache,
	embedder Embedder,
	store vectorstore.Store,
	generator Generator,
	log *logrus.Logger,
	chunkSize, topK int,
	cacheTTL time.Duration,
) *Orchestrator {
	if chunkSize <= 0 {
		chunkSize = transcript.DefaultChunkSize
	}
	if topK <= 0 {
		topK = 5
	}
	return &Orchestrator{
		cache:     cache,
		embedder:  embedder,
		store:     store,
		generator: generator,
		log:       log,
		chunkSize: chunkSize,
		topK:      topK,
		cacheTTL:  cacheTTL,
	}
}

// Chat runs the full pipeline for one request and returns the answer as an
// ordered token stream. The request fails fast: no step is retried.
func (o *Orchestrator) Chat(ctx context.Context, req ChatRequest) (<-chan generation.StreamToken, error) {
	if req.Question == "" || req.VideoID == "" || req.Transcript == nil {
		return nil, ErrMissingFields
	}
	if len(req.Transcript) == 0 {
		return nil, ErrEmptyTranscript
	}

	if err := o.ensureIndexed(ctx, req.VideoID, req.Transcript); err != nil {
		return nil, err
	}

	questionVecs, err := o.embedder.EmbedTexts(ctx, []string{req.Question})
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	matches, err := o.store.Query(ctx, req.VideoID, questionVecs[0], o.topK)
	if err != nil {
		return nil, fmt.Errorf("vector query failed: %w", err)
	}

	contextBlock := buildContext(matches)
	if strings.TrimSpace(contextBlock) == "" {
		o.log.WithFields(logrus.Fields{"video_id": req.VideoID}).
			Warn("no relevant transcript context found")
		return nil, ErrNoContext
	}

	prompt := buildChatPrompt(contextBlock, req.Question)
	return o.generator.Stream(ctx, prompt)
}

// ensureIndexed chunks, embeds and upserts the transcript unless both cache
// entries for the video are present. Concurrent first-requests for the same
// video may both do this work; the upsert is idempotent by id and the cache
// writes are last-write-wins.
func (o *Orchestrator) ensureIndexed(ctx context.Context, videoID string, cues []transcript.Cue) error {
	var (
		chunks     []transcript.Chunk
		embeddings [][]float32
	)

	chunksKey := "chunks:" + videoID
	embeddingsKey := "embeddings:" + videoID

	haveChunks, err := o.cache.GetJSON(ctx, chunksKey, &chunks)
	if err != nil {
		return fmt.Errorf("cache lookup failed: %w", err)
	}
	haveEmbeddings, err := o.cache.GetJSON(ctx, embeddingsKey, &embeddings)
	if err != nil {
		return fmt.Errorf("cache lookup failed: %w", err)
	}
	if haveChunks && haveEmbeddings {
		return nil
	}

	chunks = transcript.ChunkCues(cues, o.chunkSize)
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embeddings, err = o.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed transcript chunks: %w", err)
	}

	records := make([]vectorstore.Record, len(chunks))
	for i, c := range chunks {
		records[i] = vectorstore.Record{
			ID:     fmt.Sprintf("%s-chunk-%d", videoID, i),
			Values: embeddings[i],
			Metadata: vectorstore.Metadata{
				Text:    c.Text,
				Start:   c.Start,
				End:     c.End,
				VideoID: videoID,
			},
		}
	}
	if err := o.store.Upsert(ctx, records); err != nil {
		return fmt.Errorf("vector upsert failed: %w", err)
	}

	o.log.WithFields(logrus.Fields{"video_id": videoID, "chunks": len(chunks)}).
		Info("indexed transcript chunks")

	if err := o.cache.SetJSON(ctx, chunksKey, chunks, o.cacheTTL); err != nil {
		return fmt.Errorf("cache write failed: %w", err)
	}
	if err := o.cache.SetJSON(ctx, embeddingsKey, embeddings, o.cacheTTL); err != nil {
		return fmt.Errorf("cache write failed: %w", err)
	}
	return nil
}

func buildContext(matches []vectorstore.Match) string {
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = m.Text
	}
	return strings.Join(parts, "\n")
}

func buildChatPrompt(contextBlock, question string) string {
	return "You are an expert video assistant. Use the following transcript context to answer the user's question. " +
		"Cite timestamps (e.g., [12.34s]) when relevant.\n\n" +
		"Context:\n" + contextBlock + "\n\n" +
		"Question: " + question + "\n" +
		"Answer (plain English, no HTML or code):"
}
