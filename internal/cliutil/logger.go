package cliutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erraggy/oasconsolidate/internal/fileutil"
	slogmulti "github.com/samber/slog-multi"
)

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	// Stderr receives human-readable text records. Defaults to os.Stderr.
	Stderr io.Writer
	// Verbose lowers the stderr level to debug.
	Verbose bool
	// Quiet raises the stderr level to warn. Verbose wins if both are set.
	Quiet bool
	// LogFile, when set, also receives every record (debug and up) as JSON.
	LogFile string
}

// NewLogger builds the command logger: a text handler on stderr and an
// optional JSON handler on a log file, fanned out to both. The returned
// close function must be called to flush and close the log file.
func NewLogger(opts LoggerOptions) (*slog.Logger, func() error, error) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	level := slog.LevelInfo
	switch {
	case opts.Verbose:
		level = slog.LevelDebug
	case opts.Quiet:
		level = slog.LevelWarn
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
	}
	closeFn := func() error { return nil }

	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, fileutil.OwnerReadWrite) //nolint:gosec // G304 - path comes from -log-file
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closeFn = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}
