// Package llm holds the provider-neutral contract shared by the text
// generation adapters.
package llm

import (
	"errors"
	"fmt"

	"github.com/yanqian/coordinate-advisor/pkg/metrics"
)

var (
	// ErrMissingAPIKey is returned by adapters built without a credential.
	ErrMissingAPIKey = errors.New("llm: api key is not configured")
	// ErrEmptyResponse means the provider answered without any text part.
	ErrEmptyResponse = errors.New("llm: response contained no text")
)

// GenerateRequest is a single non-streaming generation call.
type GenerateRequest struct {
	Prompt      string
	Temperature float32
}

// Generation is the first text candidate returned by the provider.
type Generation struct {
	Text  string
	Usage metrics.TokenUsage
}

// StatusError reports a non-success HTTP status from the provider.
// Detail holds the provider's error body for diagnostics only.
type StatusError struct {
	Provider string
	Status   int
	Detail   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request failed: status=%d body=%s", e.Provider, e.Status, e.Detail)
}
