// Package diag implements a plain write-once-per-warning diagnostic
// channel. Packages that need to report a non-fatal problem (package parse,
// for example) take a [Sink] and call Warn/Warnf instead of logging
// directly, so they stay decoupled from any particular output format; the
// CLI wires a concrete Sink at the I/O boundary.
package diag

import (
	"fmt"
	"io"
	"log/slog"
)

// Sink receives one-line diagnostic messages.
type Sink interface {
	Warn(msg string)
	Warnf(format string, args ...any)
}

// Discard is a [Sink] that ignores every message. Useful in tests that
// don't care about diagnostics.
var Discard Sink = discard{}

type discard struct{}

func (discard) Warn(string)          {}
func (discard) Warnf(string, ...any) {}

// WriterSink writes each message to W prefixed with "Warning: ". If Logger
// is non-nil, each message is also forwarded to it at [slog.LevelWarn], so
// the CLI's structured log stream and the fixed-format diagnostic stream
// can share one call site.
type WriterSink struct {
	W      io.Writer
	Logger *slog.Logger
}

// NewWriterSink returns a WriterSink writing to w with no log forwarding.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{W: w}
}

func (s *WriterSink) Warn(msg string) {
	fmt.Fprintf(s.W, "Warning: %s\n", msg)

	if s.Logger != nil {
		s.Logger.Warn(msg)
	}
}

func (s *WriterSink) Warnf(format string, args ...any) {
	s.Warn(fmt.Sprintf(format, args...))
}

// Collector is a [Sink] that accumulates messages in memory, for tests that
// want to assert on exact diagnostics rather than just a count.
type Collector struct {
	Messages []string
}

func (c *Collector) Warn(msg string) { c.Messages = append(c.Messages, msg) }

func (c *Collector) Warnf(format string, args ...any) {
	c.Warn(fmt.Sprintf(format, args...))
}
