package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider runs generation attempts against any OpenAI-compatible
// chat-completions endpoint. The API client is built lazily exactly once.
type OpenAIProvider struct {
	apiKey  string
	baseURL string

	once sync.Once
	api  *openai.Client
}

// NewOpenAIProvider builds a provider. baseURL may be empty for the default
// OpenAI endpoint.
func NewOpenAIProvider(apiKey, baseURL string) *OpenAIProvider {
	return &OpenAIProvider{apiKey: apiKey, baseURL: baseURL}
}

func (p *OpenAIProvider) client() *openai.Client {
	p.once.Do(func() {
		cfg := openai.DefaultConfig(p.apiKey)
		if p.baseURL != "" {
			cfg.BaseURL = p.baseURL
		}
		p.api = openai.NewClientWithConfig(cfg)
	})
	return p.api
}

// Complete runs a single non-streaming chat completion.
func (p *OpenAIProvider) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := p.client().CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model %s returned no choices", model)
	}
	return resp.Choices[0].Message.Content, nil
}

// Stream opens a streaming chat completion and forwards fragments in
// arrival order. Cancelling ctx aborts the upstream call.
func (p *OpenAIProvider) Stream(ctx context.Context, model, prompt string) (<-chan StreamToken, error) {
	stream, err := p.client().CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Stream: true,
	})
	if err != nil {
		return nil, err
	}

	out := make(chan StreamToken)
	go func() {
		defer close(out)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				select {
				case out <- StreamToken{Done: true}:
				case <-ctx.Done():
				}
				return
			}
			if err != nil {
				select {
				case out <- StreamToken{Err: err}:
				case <-ctx.Done():
				}
				return
			}
			for _, choice := range resp.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				select {
				case out <- StreamToken{Content: choice.Delta.Content}:
				case <-ctx.Done():
					// Consumer is gone; closing the channel ends the stream.
					return
				}
			}
		}
	}()
	return out, nil
}
