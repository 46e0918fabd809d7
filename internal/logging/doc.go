// Package logging builds the application logger and provides typed slog
// attribute helpers so call sites stay consistent across packages.
//
// Loggers are constructed once per process from configuration (level, format,
// optional log directory tee) and handed down; packages that may run without
// a logger use NewNop.
package logging
