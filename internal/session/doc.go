// Package session assembles the workspace a tagging run operates on: the
// catalog database, the progress store, the image queue, and the engine,
// guarded by a file lock so only one process mutates the workspace at a
// time.
package session
