// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Printer formats counts and durations for human-readable summaries
// (thousands separators included).
type Printer struct {
	w io.Writer
	p *message.Printer
}

// NewPrinter returns a Printer writing English-formatted text to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, p: message.NewPrinter(language.English)}
}

// Printf writes a formatted line. Write failures are reported on stderr.
func (p *Printer) Printf(format string, args ...any) {
	if _, err := p.p.Fprintf(p.w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
