// Package sovstruct interprets schedule-of-values workbooks: it finds the
// sheets that hold property records, maps their columns onto the standard
// schema and validates the result.
package sovstruct

import (
	"io"
	"log/slog"
	"time"

	"github.com/ukaji3/sovstruct/pkg/sovstruct/completion"
)

// Options configures a processing run.
type Options struct {
	// Completer answers classification and mapping prompts.
	// If nil, the rule-based fallbacks are used.
	Completer completion.Completer
	// Logger receives pipeline diagnostics. If nil, output is discarded.
	Logger *slog.Logger
	// Now supplies the clock used for construction-year checks.
	// If nil, time.Now is used.
	Now func() time.Time
}

// DefaultOptions returns options that run without a completion service.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) completer() completion.Completer {
	if o.Completer == nil {
		return completion.Unavailable{}
	}
	return o.Completer
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}
