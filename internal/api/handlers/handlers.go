// Package handlers implements the HTTP endpoints over the chat, sections,
// transcript and video-search pipelines.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"videoinsight/internal/generation"
	"videoinsight/internal/rag"
	"videoinsight/internal/transcript"
	"videoinsight/internal/videosearch"
)

var validate = validator.New()

// Chatter runs the RAG chat pipeline.
type Chatter interface {
	Chat(ctx context.Context, req rag.ChatRequest) (<-chan generation.StreamToken, error)
}

// SectionBreaker produces the AI section breakdown.
type SectionBreaker interface {
	Breakdown(ctx context.Context, cues []transcript.Cue) ([]rag.Section, error)
}

// TranscriptFetcher retrieves the cleaned cue list for a video.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) ([]transcript.Cue, error)
}

// MomentSearcher runs the two-stage video moment search.
type MomentSearcher interface {
	Search(ctx context.Context, videoURL, videoID, query string, forceImageRag bool) ([]videosearch.Segment, string, error)
}

// Handlers carries the injected pipelines; one instance serves all
// requests.
type Handlers struct {
	Chat      Chatter
	Sections  SectionBreaker
	Fetcher   TranscriptFetcher
	Search    MomentSearcher
	Generator rag.Generator
	Log       *logrus.Logger
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func respondErrorDetails(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message, "details": details})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
