package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	charmLog "github.com/charmbracelet/log"
)

const appName = "splitnav"

// newConsoleLogger returns a styled logger writing to w.
func newConsoleLogger(w io.Writer, level charmLog.Level) *charmLog.Logger {
	if w == nil {
		w = io.Discard
	}
	return charmLog.NewWithOptions(w, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	})
}

// newFileLogger returns a logfmt logger appending to path and a func that
// closes the file. An empty path yields a discarding logger.
func newFileLogger(path string, level charmLog.Level) (*charmLog.Logger, func() error, error) {
	if path == "" {
		return charmLog.New(io.Discard), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	// Keep file output parseable and unstyled.
	logger := charmLog.NewWithOptions(f, charmLog.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
	return logger, f.Close, nil
}
