// Package logging assembles structured slog loggers and formatting helpers used
// across tracklink.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so import code can tag log lines
// with the batch run ID and the track being resolved. The package also provides
// a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the system.
package logging
