package videosearch

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// VisionCaptioner describes video frames with a vision-capable chat model.
// The descriptions stand in for direct image embeddings: they are embedded
// with the same text-embedding client used for transcript chunks.
type VisionCaptioner struct {
	apiKey  string
	baseURL string
	model   string

	once sync.Once
	api  *openai.Client
}

// NewVisionCaptioner builds a captioner for the given vision model.
func NewVisionCaptioner(apiKey, baseURL, model string) *VisionCaptioner {
	return &VisionCaptioner{apiKey: apiKey, baseURL: baseURL, model: model}
}

func (c *VisionCaptioner) client() *openai.Client {
	c.once.Do(func() {
		cfg := openai.DefaultConfig(c.apiKey)
		if c.baseURL != "" {
			cfg.BaseURL = c.baseURL
		}
		c.api = openai.NewClientWithConfig(cfg)
	})
	return c.api
}

// Describe returns a one-sentence description of the frame at imagePath.
func (c *VisionCaptioner) Describe(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("error reading frame: %w", err)
	}

	resp, err := c.client().CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "Describe what is visible in this video frame in one concise sentence.",
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data),
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("vision model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
