// Package processing implements the batch image pipeline: thumbnail
// generation, format conversion to JPEG, and workspace filename cleanup. It
// walks an input tree and writes results flat into a single output
// directory, tallying per-file failures without aborting the run.
package processing
