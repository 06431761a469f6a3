// Package logging builds the slog logger of cmd/ecgeval.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// New returns a text logger writing to w (stderr when nil) at the named
// level: debug, info, warn or error.
func New(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	if w == nil {
		w = os.Stderr
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), nil
}
