package transcript

import (
	"reflect"
	"testing"
)

func TestDeduplicate(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "empty input",
			in:   nil,
			want: nil,
		},
		{
			name: "single cue kept",
			in:   []string{"hello world"},
			want: []string{"hello world"},
		},
		{
			name: "rolling caption substring dropped",
			in: []string{
				"so today we are going to",
				"so today we are going to talk about go",
				"talk about concurrency next",
			},
			want: []string{
				"so today we are going to",
				"talk about concurrency next",
			},
		},
		{
			name: "candidate contained in previous dropped",
			in: []string{
				"welcome back everyone to the channel",
				"welcome back everyone",
			},
			want: []string{"welcome back everyone to the channel"},
		},
		{
			name: "case and whitespace insensitive",
			in: []string{
				"Hello World",
				"  hello world  ",
			},
			want: []string{"Hello World"},
		},
		{
			name: "high word overlap dropped",
			in: []string{
				"the quick brown fox jumps over",
				"quick brown fox jumps over lazily",
			},
			want: []string{"the quick brown fox jumps over"},
		},
		{
			name: "distinct cues all kept",
			in: []string{
				"first topic of the video",
				"completely different second sentence here",
				"and a third unrelated remark",
			},
			want: []string{
				"first topic of the video",
				"completely different second sentence here",
				"and a third unrelated remark",
			},
		},
		{
			name: "far apart duplicates survive",
			in: []string{
				"thanks for watching",
				"now the main content of the video begins",
				"thanks for watching",
			},
			want: []string{
				"thanks for watching",
				"now the main content of the video begins",
				"thanks for watching",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cues := make([]Cue, len(tt.in))
			for i, text := range tt.in {
				cues[i] = Cue{Text: text, Start: float64(i), End: float64(i + 1)}
			}

			got := Deduplicate(cues)

			var gotTexts []string
			for _, c := range got {
				gotTexts = append(gotTexts, c.Text)
			}
			if !reflect.DeepEqual(gotTexts, tt.want) {
				t.Errorf("Deduplicate() = %v, want %v", gotTexts, tt.want)
			}
			if len(got) > len(cues) {
				t.Errorf("Deduplicate() grew the cue list: %d > %d", len(got), len(cues))
			}
			if len(cues) > 0 && got[0].Text != tt.in[0] {
				t.Errorf("Deduplicate() dropped the first cue")
			}
		})
	}
}

func TestWordOverlap(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		lastKept  string
		want      float64
	}{
		{"no overlap", "alpha beta", "gamma delta", 0},
		{"full overlap", "alpha beta", "beta alpha gamma", 1},
		{"half overlap", "alpha beta", "alpha gamma", 0.5},
		{"empty candidate", "", "alpha", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordOverlap(tt.candidate, tt.lastKept); got != tt.want {
				t.Errorf("wordOverlap() = %v, want %v", got, tt.want)
			}
		})
	}
}
