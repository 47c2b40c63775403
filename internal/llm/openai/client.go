// Package openai is a stub provider until real OpenAI wiring is added.
// Selecting it without credentials fails at startup; invoking it fails with
// llm.ErrNotImplemented.
package openai

import (
	"context"
	"fmt"
	"strings"

	"resumehub-backend/internal/llm"
)

// Client is the placeholder OpenAI implementation of llm.Client.
type Client struct {
	apiKey string
	model  string
}

// NewClient validates credentials eagerly so a misconfigured provider choice
// fails at startup rather than on the first request.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	return &Client{apiKey: apiKey, model: model}, nil
}

// GenerateJSON returns llm.ErrNotImplemented.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (map[string]any, error) {
	_ = ctx
	_ = prompt
	return nil, llm.ErrNotImplemented
}

var _ llm.Client = (*Client)(nil)
