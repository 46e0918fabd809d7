package tagging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/imagequeue"
)

var (
	// ErrInvalidDescription reports a tag attempt with a description the
	// catalog does not hold, or one that cannot yield a usable filename.
	ErrInvalidDescription = errors.New("invalid description")
	// ErrRenameIO reports a failed filesystem move; no engine state is
	// mutated beyond pruning mappings that can no longer be reasoned about.
	ErrRenameIO = errors.New("rename failed")
	// ErrNotRenamed reports an undo attempt on a file this tool never renamed.
	ErrNotRenamed = errors.New("file has not been renamed")
	// ErrSupersededElsewhere reports an undo attempt while positioned on the
	// stale original name of a file that now lives under its renamed name.
	ErrSupersededElsewhere = errors.New("file was renamed; undo from its current name")
	// ErrOverwriteDeclined reports an undo aborted because the caller
	// declined to overwrite the file occupying the original name.
	ErrOverwriteDeclined = errors.New("overwrite declined")
)

// ErrEmptyQueue is surfaced when navigation exhausts the queue with zero
// existing files; the queue clears itself, which is terminal for the session.
var ErrEmptyQueue = imagequeue.ErrEmptyQueue

// Wrap builds an error message that includes operation context while tagging
// it with the provided sentinel for errors.Is classification.
func Wrap(marker error, operation, message string, err error) error {
	detail := operation
	if m := strings.TrimSpace(message); m != "" {
		detail += ": " + m
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}
