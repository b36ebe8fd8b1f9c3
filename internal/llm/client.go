// package llm wraps the upstream text-completion API. The rest of the
// system only depends on CompletionClient, so tests and degraded
// environments can swap the transport out.
package llm

import (
	"context"

	"github.com/codesye/studentcode-service/internal/config"
)

// CompletionClient is the boundary contract for the completion call: a
// system/user prompt pair in, raw response text out. Implementations may
// fail or time out; callers must treat both as equivalent to a malformed
// response.
type CompletionClient interface {
	Complete(ctx context.Context, system string, user string) (string, error)
}

func NewClient(cfg config.OpenAI) *OpenAIClient {
	return &OpenAIClient{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
	}
}
