package generation

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// fakeProvider scripts per-model outcomes and records attempt order.
type fakeProvider struct {
	errs     map[string]error
	attempts []string
}

func (f *fakeProvider) Complete(ctx context.Context, model, prompt string) (string, error) {
	f.attempts = append(f.attempts, model)
	if err := f.errs[model]; err != nil {
		return "", err
	}
	return "answer from " + model, nil
}

func (f *fakeProvider) Stream(ctx context.Context, model, prompt string) (<-chan StreamToken, error) {
	f.attempts = append(f.attempts, model)
	if err := f.errs[model]; err != nil {
		return nil, err
	}
	out := make(chan StreamToken, 2)
	out <- StreamToken{Content: "answer from " + model}
	out <- StreamToken{Done: true}
	close(out)
	return out, nil
}

func quotaErr(status int) error {
	return &openai.APIError{HTTPStatusCode: status, Message: "blocked"}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRouterComplete(t *testing.T) {
	tests := []struct {
		name         string
		errs         map[string]error
		want         string
		wantErr      error
		wantAttempts []string
	}{
		{
			name:         "first model succeeds",
			errs:         map[string]error{},
			want:         "answer from A",
			wantAttempts: []string{"A"},
		},
		{
			name:         "rate limited model skipped",
			errs:         map[string]error{"A": quotaErr(http.StatusTooManyRequests)},
			want:         "answer from B",
			wantAttempts: []string{"A", "B"},
		},
		{
			name: "forbidden and not found both skipped",
			errs: map[string]error{
				"A": quotaErr(http.StatusForbidden),
				"B": quotaErr(http.StatusNotFound),
			},
			want:         "answer from C",
			wantAttempts: []string{"A", "B", "C"},
		},
		{
			name: "all models exhausted",
			errs: map[string]error{
				"A": quotaErr(http.StatusTooManyRequests),
				"B": quotaErr(http.StatusTooManyRequests),
				"C": quotaErr(http.StatusTooManyRequests),
			},
			wantErr:      ErrAllModelsFailed,
			wantAttempts: []string{"A", "B", "C"},
		},
		{
			name:         "non-quota error aborts immediately",
			errs:         map[string]error{"A": errors.New("connection refused")},
			wantErr:      errors.New("connection refused"),
			wantAttempts: []string{"A"},
		},
		{
			name:         "server error aborts immediately",
			errs:         map[string]error{"A": quotaErr(http.StatusInternalServerError)},
			wantErr:      errors.New("blocked"),
			wantAttempts: []string{"A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{errs: tt.errs}
			router := NewRouter(provider, []string{"A", "B", "C"}, testLogger())

			got, err := router.Complete(context.Background(), "prompt")

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("Complete() error = nil, want %v", tt.wantErr)
				}
				if errors.Is(tt.wantErr, ErrAllModelsFailed) && !errors.Is(err, ErrAllModelsFailed) {
					t.Errorf("Complete() error = %v, want ErrAllModelsFailed", err)
				}
			} else {
				if err != nil {
					t.Fatalf("Complete() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("Complete() = %q, want %q", got, tt.want)
				}
			}

			if len(provider.attempts) != len(tt.wantAttempts) {
				t.Fatalf("attempts = %v, want %v", provider.attempts, tt.wantAttempts)
			}
			for i := range tt.wantAttempts {
				if provider.attempts[i] != tt.wantAttempts[i] {
					t.Errorf("attempts = %v, want %v", provider.attempts, tt.wantAttempts)
					break
				}
			}
		})
	}
}

func TestRouterStreamFallback(t *testing.T) {
	provider := &fakeProvider{errs: map[string]error{"A": quotaErr(http.StatusTooManyRequests)}}
	router := NewRouter(provider, []string{"A", "B", "C"}, testLogger())

	stream, err := router.Stream(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	var text string
	for tok := range stream {
		if tok.Err != nil {
			t.Fatalf("stream token error = %v", tok.Err)
		}
		text += tok.Content
	}
	if text != "answer from B" {
		t.Errorf("streamed text = %q, want %q", text, "answer from B")
	}
	if len(provider.attempts) != 2 {
		t.Errorf("attempts = %v, want [A B]", provider.attempts)
	}
}
