// Package embeddings wraps the hosted text-embedding API and normalizes its
// output to a fixed dimensionality.
package embeddings

import (
	"context"
	"fmt"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// Dimensions is the vector size stored and queried everywhere downstream.
// Models emitting a different native size are projected: truncated when
// longer, zero-padded when shorter.
const Dimensions = 1024

// Client generates fixed-length embeddings through an OpenAI-compatible
// endpoint. The underlying API client is built lazily exactly once.
type Client struct {
	apiKey  string
	baseURL string
	model   string

	once sync.Once
	api  *openai.Client
}

// NewClient builds an embedding client. baseURL may be empty for the
// default OpenAI endpoint.
func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
	}
}

func (c *Client) client() *openai.Client {
	c.once.Do(func() {
		cfg := openai.DefaultConfig(c.apiKey)
		if c.baseURL != "" {
			cfg.BaseURL = c.baseURL
		}
		c.api = openai.NewClientWithConfig(cfg)
	})
	return c.api
}

// EmbedTexts embeds each input text, preserving order and count. Every
// returned vector has exactly Dimensions elements.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := c.client().CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding creation failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Data), len(texts))
	}

	// The API does not guarantee response order; Index does.
	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = project(d.Embedding)
	}
	return vectors, nil
}

// project fits a vector to exactly Dimensions elements.
func project(v []float32) []float32 {
	out := make([]float32, Dimensions)
	copy(out, v)
	return out
}
