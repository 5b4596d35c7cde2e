package messages

import "context"

// LLMClient generates free text from a single prompt. Implementations must be
// safe for concurrent use.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}
