// Package logging assembles structured slog loggers for stagedtimer.
//
// It owns the console and JSON handlers, level parsing and output plumbing,
// per-run log files with retention pruning, and context helpers that tag log
// lines with the active stage and run identifiers. A countdown owns the
// terminal, so run loggers write to files only; NewNop serves tests and
// wiring code that cannot fail.
package logging
