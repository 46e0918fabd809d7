// Package tagging implements the tag/undo/defer state machine that drives
// the cataloguing workflow.
//
// The Engine orchestrates the description catalog, the browsing queue, and
// the progress store. Every operation is a synchronous command: it takes
// typed input, mutates engine and filesystem state atomically per operation,
// persists the full progress record, and returns a result or an error from
// the package's sentinel taxonomy. Any presentation layer (CLI, desktop,
// web) adapts on top of these commands without reaching into engine
// internals.
//
// Per-file states are untouched, renamed (the file appears as a value in the
// rename mapping), and don't-know (the file is in the unknown set). The
// latter two are mutually exclusive: entering one clears the other.
package tagging
