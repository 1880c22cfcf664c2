package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// newLogger returns a text logger writing to w at the named level
// (debug, info, warn or error; "warning" is accepted too).
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	name := strings.TrimSpace(level)
	if strings.EqualFold(name, "warning") {
		name = "warn"
	}
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})
	return slog.New(h).With("name", appName, "version", Version), nil
}
