// Package completion defines the language-model completion collaborator and
// the loose parsing used to read structured data out of its replies.
package completion

import (
	"context"
	"errors"
	"fmt"
)

// Completer turns a prompt into free-text completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f(ctx, prompt).
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ErrUnavailable indicates no completion service is configured.
var ErrUnavailable = errors.New("completion service not available")

// ErrEmptyCompletion indicates the service answered without any content.
var ErrEmptyCompletion = errors.New("completion response has no content")

// ServiceError represents a non-success response from the completion service.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("completion service returned status %d: %s", e.StatusCode, e.Body)
}

// Unavailable is a Completer that always fails with ErrUnavailable.
type Unavailable struct{}

// Complete returns ErrUnavailable.
func (Unavailable) Complete(context.Context, string) (string, error) {
	return "", ErrUnavailable
}
