// Package progress persists the resumable tagging state as a single JSON
// document rewritten in full after every mutating operation.
//
// The on-disk keys are fixed by the progress files already in the field:
// used_tags, renamed, index, image_files_order, dont_know_files. Keys added
// after the original schema default to empty collections when absent, so
// older progress files keep loading.
package progress
