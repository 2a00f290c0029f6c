// Package logging routes log/slog records into a hal.Logger line sink.
package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"watchface/hal"
)

// lineWriter turns each slog record into one hal.Logger line.
type lineWriter struct {
	l hal.Logger
}

func (w lineWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte{'\n'}) {
		w.l.WriteLineBytes(line)
	}
	return len(p), nil
}

// Writer adapts a hal.Logger to io.Writer.
func Writer(l hal.Logger) io.Writer {
	return lineWriter{l: l}
}

// New returns a text logger writing into l at the given level.
func New(l hal.Logger, level slog.Leveler) *slog.Logger {
	if l == nil {
		return slog.New(discard{})
	}
	return slog.New(slog.NewTextHandler(Writer(l), &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(discard{})
}

type discard struct{}

func (discard) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (discard) Handle(_ context.Context, _ slog.Record) error { return nil }
func (d discard) WithAttrs(_ []slog.Attr) slog.Handler        { return d }
func (d discard) WithGroup(_ string) slog.Handler             { return d }
