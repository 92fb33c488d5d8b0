package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// setupLogger builds the CLI logger. debug overrides the configured level.
func setupLogger(w io.Writer, level string, debug bool) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if debug {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "cardsum",
		Level:           lvl,
	}), nil
}
