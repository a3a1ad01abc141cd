package rag

import (
	"context"
	"errors"
	"testing"

	"videoinsight/internal/transcript"
)

func TestSectionerBreakdown(t *testing.T) {
	cues := []transcript.Cue{
		{Text: "welcome to the video", Start: 0, End: 2},
		{Text: "first we cover setup", Start: 2, End: 5},
	}

	tests := []struct {
		name      string
		response  string
		wantLen   int
		wantTitle string
		wantParse bool
	}{
		{
			name:      "bare json array",
			response:  `[{"title":"Intro","summary":"Greeting.","start":0}]`,
			wantLen:   1,
			wantTitle: "Intro",
		},
		{
			name: "fenced response with prose",
			response: "Here is the breakdown:\n```json\n" +
				`[{"title":"Intro","summary":"...","start":0},{"title":"Setup","summary":"...","start":2}]` +
				"\n```\nLet me know if you need more detail.",
			wantLen:   2,
			wantTitle: "Intro",
		},
		{
			name:      "no json in response",
			response:  "Sorry, I cannot segment this transcript.",
			wantParse: true,
		},
		{
			name:      "invalid json in response",
			response:  `[{"title": "broken`,
			wantParse: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{answer: tt.response}
			s := NewSectioner(gen, testLogger())

			sections, err := s.Breakdown(context.Background(), cues)

			if tt.wantParse {
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("Breakdown() error = %v, want ParseError", err)
				}
				if parseErr.Raw != tt.response {
					t.Error("ParseError does not carry the raw model response")
				}
				return
			}

			if err != nil {
				t.Fatalf("Breakdown() error = %v", err)
			}
			if len(sections) != tt.wantLen {
				t.Fatalf("Breakdown() got %d sections, want %d", len(sections), tt.wantLen)
			}
			if sections[0].Title != tt.wantTitle {
				t.Errorf("first section title = %q, want %q", sections[0].Title, tt.wantTitle)
			}
		})
	}
}

func TestSectionerEmptyTranscript(t *testing.T) {
	s := NewSectioner(&fakeGenerator{}, testLogger())
	_, err := s.Breakdown(context.Background(), nil)
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("Breakdown() error = %v, want ErrEmptyTranscript", err)
	}
}

func TestCleanTranscriptFallsBackOnBadResponse(t *testing.T) {
	cues := []transcript.Cue{{Text: "hello world", Start: 0, End: 1}}

	tests := []struct {
		name     string
		response string
	}{
		{"unparseable response", "sorry, no"},
		{"length mismatch", `[{"text":"a","start":0,"end":1},{"text":"b","start":1,"end":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{answer: tt.response}
			got := CleanTranscript(context.Background(), gen, testLogger(), cues)
			if len(got) != 1 || got[0].Text != "hello world" {
				t.Errorf("CleanTranscript() = %v, want original cues", got)
			}
		})
	}
}

func TestCleanTranscriptAppliesFix(t *testing.T) {
	cues := []transcript.Cue{{Text: "hello world", Start: 0, End: 1}}
	gen := &fakeGenerator{answer: `[{"text":"Hello, world.","start":0,"end":1}]`}

	got := CleanTranscript(context.Background(), gen, testLogger(), cues)
	if got[0].Text != "Hello, world." {
		t.Errorf("CleanTranscript() text = %q, want %q", got[0].Text, "Hello, world.")
	}
}
