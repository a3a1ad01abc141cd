package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// ErrAllModelsFailed reports that every model in the fallback list was
// rejected for quota or availability reasons.
var ErrAllModelsFailed = errors.New("all generation models failed due to rate limiting or errors")

// Router tries models in priority order. A model failing with a
// rate-limited, forbidden or not-found class error advances to the next;
// any other error aborts immediately. Each model is attempted exactly once
// per call; there is no backoff.
type Router struct {
	provider Provider
	models   []string
	log      *logrus.Logger
}

// NewRouter builds a router over the given model priority list.
func NewRouter(provider Provider, models []string, log *logrus.Logger) *Router {
	return &Router{provider: provider, models: models, log: log}
}

// Complete generates the full text with the first model that accepts the
// prompt.
func (r *Router) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for _, model := range r.models {
		text, err := r.provider.Complete(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		if !isFallbackError(err) {
			return "", err
		}
		r.log.WithFields(logrus.Fields{"model": model, "error": err.Error()}).
			Warn("generation model unavailable, trying next")
		lastErr = err
	}
	return "", fmt.Errorf("%w: %v", ErrAllModelsFailed, lastErr)
}

// Stream opens a token stream with the first model that accepts the prompt.
func (r *Router) Stream(ctx context.Context, prompt string) (<-chan StreamToken, error) {
	var lastErr error
	for _, model := range r.models {
		stream, err := r.provider.Stream(ctx, model, prompt)
		if err == nil {
			return stream, nil
		}
		if !isFallbackError(err) {
			return nil, err
		}
		r.log.WithFields(logrus.Fields{"model": model, "error": err.Error()}).
			Warn("generation model unavailable, trying next")
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", ErrAllModelsFailed, lastErr)
}

// isFallbackError reports whether the next model in the list should be
// tried: quota exhaustion (429), forbidden (403) and unknown model (404).
func isFallbackError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests, http.StatusForbidden, http.StatusNotFound:
			return true
		}
	}
	return false
}
