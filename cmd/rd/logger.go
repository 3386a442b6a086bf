package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"rdcore/internal/core"
)

// newLogger builds the command's logger from the log_level and log_format
// settings. The level accepts anything slog.Level understands ("debug",
// "WARN", "info+2"). An empty format means text.
func newLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("%w: %s %q", core.ErrUnrecognizedValue, keyLogLevel, level)
		}
	}
	ho := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, ho)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, ho)), nil
	}
	return nil, fmt.Errorf("%w: %s %q (want text or json)", core.ErrUnrecognizedValue, keyLogFormat, format)
}
