package generation

import (
	"encoding/json"
	"testing"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantLen int
		wantErr bool
	}{
		{
			name:    "bare array",
			text:    `[{"title":"Intro","summary":"...","start":0}]`,
			wantLen: 1,
		},
		{
			name: "fenced code block with prose",
			text: "Here are the sections you asked for:\n```json\n" +
				`[{"title":"Intro","summary":"...","start":0}]` + "\n```",
			wantLen: 1,
		},
		{
			name:    "fence without language tag",
			text:    "```\n[{\"title\":\"A\",\"summary\":\"s\",\"start\":1},{\"title\":\"B\",\"summary\":\"s\",\"start\":2}]\n```",
			wantLen: 2,
		},
		{
			name:    "leading and trailing prose",
			text:    "Sure! [1, 2, 3] is the result.",
			wantLen: 3,
		},
		{
			name:    "empty array",
			text:    "[]",
			wantLen: 0,
		},
		{
			name:    "no array at all",
			text:    "I could not find any sections.",
			wantErr: true,
		},
		{
			name:    "malformed array",
			text:    `[{"title": "unterminated`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := ExtractJSONArray(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractJSONArray() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			var items []json.RawMessage
			if err := json.Unmarshal(raw, &items); err != nil {
				t.Fatalf("extracted bytes do not unmarshal: %v", err)
			}
			if len(items) != tt.wantLen {
				t.Errorf("got %d items, want %d", len(items), tt.wantLen)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", "plain text", "plain text"},
		{"json fence", "```json\n{}\n```", "{}"},
		{"plain fence", "```\n[]\n```", "[]"},
		{"whitespace around fence", "  ```json\n[1]\n```  ", "[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}
