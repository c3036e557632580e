package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/completion"
)

// NewLogger builds the slog logger described by c.
func NewLogger(w io.Writer, c LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %s", c.Level)
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// NewCompleter returns an HTTP completion client, or nil when no endpoint is
// configured.
func NewCompleter(c CompletionConfig) completion.Completer {
	if c.Endpoint == "" {
		return nil
	}
	return completion.NewClient(completion.ClientConfig{
		Endpoint:    c.Endpoint,
		APIKey:      c.APIKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		Timeout:     c.Timeout,
	})
}
