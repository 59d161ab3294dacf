// Package cli implements the blueprint command-line interface.
//
// This package provides commands for generating floor plans from house
// files, checking whether a house file is feasible, browsing generated rooms
// in a terminal UI, and managing the plan cache. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Write SVG plans and adjacency diagrams
//   - check: Print placements and adjacency routes without rendering
//   - inspect: Browse rooms, doors, and routes interactively
//   - cache: Manage the rendered plan cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes one line per carved room and per resolved adjacency.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Generated plan (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
