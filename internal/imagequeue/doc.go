// Package imagequeue maintains the ordered browsing queue over the image
// folder. Insertion order is the browsing order; navigation skips entries
// whose files have gone missing and wraps at most one full cycle before
// declaring the queue empty.
//
// The queue tolerates a changing directory between sessions: Load keeps the
// prior session's ordering for files that still exist and folds newly added
// files in at the tail, sorted alphabetically.
package imagequeue
