// Package logging assembles structured slog loggers and the shared
// diagnostic sink used across bookbind.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes typed attribute helpers plus a no-op logger for tests and
// wiring code that cannot fail. The Sink type is the append-only file that
// captures external tool output so packaging failures are diagnosable after
// the fact.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape and routing as the rest of the system.
package logging
