// Package logging assembles structured slog loggers and formatting helpers used
// across discauthor commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so authoring code can tag log
// lines with the project and stage being processed. The package also provides
// a no-op logger for tests and wiring code that cannot fail.
package logging
