package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"videoinsight/internal/generation"
	"videoinsight/internal/transcript"
)

// Section is one entry of the AI-generated breakdown of a video.
type Section struct {
	Title   string  `json:"title"`
	Summary string  `json:"summary"`
	Start   float64 `json:"start"`
}

// ParseError reports that a model reply could not be turned into sections.
// Raw preserves the offending text for diagnosis.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Sectioner asks the generation model to segment a transcript into titled
// sections.
type Sectioner struct {
	generator Generator
	log       *logrus.Logger
}

// NewSectioner wires the section-breakdown pipeline.
func NewSectioner(generator Generator, log *logrus.Logger) *Sectioner {
	return &Sectioner{generator: generator, log: log}
}

// Breakdown produces the section list for a transcript.
func (s *Sectioner) Breakdown(ctx context.Context, cues []transcript.Cue) ([]Section, error) {
	if len(cues) == 0 {
		return nil, ErrEmptyTranscript
	}

	lines := make([]string, len(cues))
	for i, cue := range cues {
		lines[i] = fmt.Sprintf("[%.2fs] %s", cue.Start, cue.Text)
	}

	prompt := "Given the following video transcript, break it down into clear sections. For each section, provide:\n" +
		"- A short title\n" +
		"- A summary (1-2 sentences)\n" +
		"- The start timestamp (in seconds) for the section\n\n" +
		"Transcript:\n" + strings.Join(lines, "\n") + "\n\n" +
		"Return the result as a JSON array of objects with keys: title, summary, start."

	text, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, err := generation.ExtractJSONArray(text)
	if err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}

	var sections []Section
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}

	s.log.WithField("sections", len(sections)).Info("generated section breakdown")
	return sections, nil
}
