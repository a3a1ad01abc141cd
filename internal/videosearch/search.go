// Package videosearch finds video moments matching a natural-language
// query: first by asking the generation model directly, then by falling
// back to a frame-embedding retrieval pipeline.
package videosearch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Wire values for the response "source" field.
const (
	SourceModel    = "gemini"
	SourceImageRAG = "image-rag"
)

// Segment is one matching video moment.
type Segment struct {
	StartTime   float64 `json:"startTime"`
	EndTime     float64 `json:"endTime"`
	Description string  `json:"description"`
}

// Generator is the model-fallback generation surface.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// JSONExtractor pulls a JSON array out of a possibly fenced model reply.
type JSONExtractor func(text string) ([]byte, error)

// FrameSearcher is the visual fallback pipeline.
type FrameSearcher interface {
	Search(ctx context.Context, videoURL, videoID, query string) ([]Segment, error)
}

// Searcher runs the two-stage moment search.
type Searcher struct {
	generator Generator
	extract   JSONExtractor
	frames    FrameSearcher
	log       *logrus.Logger
}

// NewSearcher wires the moment search.
func NewSearcher(generator Generator, extract JSONExtractor, frames FrameSearcher, log *logrus.Logger) *Searcher {
	return &Searcher{generator: generator, extract: extract, frames: frames, log: log}
}

// Search returns matching segments and which pipeline produced them.
// forceImageRag skips the model path entirely. A model reply that cannot be
// parsed as a non-empty JSON array falls through to the frame pipeline
// rather than failing the request.
func (s *Searcher) Search(ctx context.Context, videoURL, videoID, query string, forceImageRag bool) ([]Segment, string, error) {
	if !forceImageRag {
		segments, err := s.modelSearch(ctx, videoURL, query)
		if err != nil {
			s.log.WithField("error", err.Error()).Warn("model video search failed, falling back to image RAG")
		} else if len(segments) > 0 {
			return segments, SourceModel, nil
		}
	}

	segments, err := s.frames.Search(ctx, videoURL, videoID, query)
	if err != nil {
		return nil, "", fmt.Errorf("image RAG search failed: %w", err)
	}
	return segments, SourceImageRAG, nil
}

func (s *Searcher) modelSearch(ctx context.Context, videoURL, query string) ([]Segment, error) {
	prompt := fmt.Sprintf(`Given this YouTube video: %s
Find all segments that match this query: %q
Respond ONLY with a valid JSON array of objects, no explanation or extra text. Each object must have:
- startTime: timestamp in seconds (number)
- endTime: timestamp in seconds (number)
- description: brief description of what happens in this segment (string)
If there are no matches, return an empty array: []
Output only valid JSON.`, videoURL, query)

	text, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, err := s.extract(text)
	if err != nil {
		return nil, fmt.Errorf("unparseable model response: %w", err)
	}

	var segments []Segment
	if err := json.Unmarshal(raw, &segments); err != nil {
		return nil, fmt.Errorf("unparseable model response: %w", err)
	}
	return segments, nil
}
