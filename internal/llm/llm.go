package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts structured-output LLM providers. Implementations send the
// prompt as the entire model input and return the decoded top-level JSON
// object of the reply.
type Client interface {
	GenerateJSON(ctx context.Context, prompt string) (map[string]any, error)
}

// ErrNotImplemented is returned by providers that are configured but not yet
// wired to a real backend.
var ErrNotImplemented = errors.New("LLM provider not implemented")

// InvalidResponseError reports a reply that could not be decoded as a JSON
// object even after sanitization. Raw carries the full untruncated reply;
// truncation is a logging concern only.
type InvalidResponseError struct {
	Raw     string
	Cleaned string
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid LLM response: %v (cleaned: %s)", e.Err, Truncate(e.Cleaned, 200))
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// Truncate caps s at n bytes for log output.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
