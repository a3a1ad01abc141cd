// Package generation drives text generation against a prioritized list of
// models, advancing past quota and availability failures.
package generation

import "context"

// StreamToken is one fragment of a streamed generation. Err terminates the
// stream when set; Done marks normal end-of-stream.
type StreamToken struct {
	Content string
	Done    bool
	Err     error
}

// Provider executes a single generation attempt against one named model.
type Provider interface {
	// Complete returns the whole generated text.
	Complete(ctx context.Context, model, prompt string) (string, error)

	// Stream returns an ordered channel of text fragments. The channel is
	// closed after a Done or Err token. Errors that occur before any token
	// is produced are returned directly.
	Stream(ctx context.Context, model, prompt string) (<-chan StreamToken, error)
}
