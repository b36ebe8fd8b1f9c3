package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/codesye/studentcode-service/internal/apperrors"
)

// OpenAIClient talks to the chat completions endpoint. One system message
// plus one user message, nothing more.
type OpenAIClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

func (c *OpenAIClient) Complete(ctx context.Context, system string, user string) (string, error) {
	const op = "internal.llm.Complete"

	if strings.TrimSpace(c.apiKey) == "" {
		return "", fmt.Errorf("%s: %w: missing API key", op, apperrors.ErrUpstream)
	}

	maxTokens := c.maxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	timeout := c.timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type reqBody struct {
		Model       string  `json:"model"`
		Messages    []msg   `json:"messages"`
		Temperature float64 `json:"temperature,omitempty"`
		MaxTokens   int     `json:"max_tokens,omitempty"`
	}

	messages := make([]msg, 0, 2)
	if system != "" {
		messages = append(messages, msg{Role: "system", Content: system})
	}
	messages = append(messages, msg{Role: "user", Content: user})

	body := reqBody{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   maxTokens,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%s: marshal request: %w", op, err)
	}

	url := strings.TrimRight(c.baseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%s: build request: %w", op, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%s: %w: timeout after %v", op, apperrors.ErrUpstream, timeout)
		}

		return "", fmt.Errorf("%s: %w: %v", op, apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%s: %w: http %d: %s", op, apperrors.ErrUpstream, resp.StatusCode, string(respRaw))
	}

	type choice struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	type respBody struct {
		Choices []choice `json:"choices"`
	}

	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return "", fmt.Errorf("%s: unmarshal response: %w", op, err)
	}

	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%s: %w: response missing choices", op, apperrors.ErrUpstream)
	}

	return decoded.Choices[0].Message.Content, nil
}
