package imagequeue

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/fileutil"
)

// ErrEmptyQueue reports that a full navigation cycle found no existing file.
// The queue clears itself before returning it.
var ErrEmptyQueue = errors.New("no existing images in queue")

// imageExtensions are the file types admitted into the browsing queue.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Queue is the ordered, mutable list of image filenames under a directory.
type Queue struct {
	dir   string
	names []string
}

// New creates an empty queue rooted at dir.
func New(dir string) *Queue {
	return &Queue{dir: dir}
}

// Dir returns the image directory the queue browses.
func (q *Queue) Dir() string { return q.dir }

// Len returns the number of queued filenames, existing or not.
func (q *Queue) Len() int { return len(q.names) }

// At returns the filename at index i.
func (q *Queue) At(i int) string { return q.names[i] }

// PathAt returns the full path of the entry at index i.
func (q *Queue) PathAt(i int) string { return filepath.Join(q.dir, q.names[i]) }

// Names returns a copy of the current ordering.
func (q *Queue) Names() []string {
	out := make([]string, len(q.names))
	copy(out, q.names)
	return out
}

// ScanDir lists the admitted image files directly under dir in alphabetical
// order.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := imageExtensions[ext]; ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load rebuilds the queue from a prior session's ordering and the current
// directory listing: priorOrder filtered to files that still exist, then any
// files on disk absent from that filtered list appended alphabetically.
func (q *Queue) Load(priorOrder []string) error {
	diskFiles, err := ScanDir(q.dir)
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(priorOrder))
	seen := make(map[string]struct{}, len(priorOrder))
	for _, name := range priorOrder {
		if fileutil.Exists(filepath.Join(q.dir, name)) {
			kept = append(kept, name)
			seen[name] = struct{}{}
		}
	}

	var added []string
	for _, name := range diskFiles {
		if _, ok := seen[name]; !ok {
			added = append(added, name)
		}
	}
	sort.Strings(added)

	q.names = append(kept, added...)
	return nil
}

// Rescan discards the current ordering and reloads the directory in plain
// alphabetical order.
func (q *Queue) Rescan() error {
	names, err := ScanDir(q.dir)
	if err != nil {
		return err
	}
	q.names = names
	return nil
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.names = nil
}

// Navigate scans at most one full cycle from the given index in direction
// +1 or -1, wrapping, for the first entry whose file exists, and returns its
// index. Exhaustion clears the queue and returns ErrEmptyQueue.
func (q *Queue) Navigate(from, direction int) (int, error) {
	n := len(q.names)
	if n == 0 {
		return 0, ErrEmptyQueue
	}
	idx := from
	for attempts := 0; attempts < n; attempts++ {
		idx = ((idx+direction)%n + n) % n
		if fileutil.Exists(filepath.Join(q.dir, q.names[idx])) {
			return idx, nil
		}
	}
	q.Clear()
	return 0, ErrEmptyQueue
}

// ResolveExisting returns the index of the first existing file at or after
// from, wrapping at most once. Exhaustion clears the queue and returns
// ErrEmptyQueue.
func (q *Queue) ResolveExisting(from int) (int, error) {
	n := len(q.names)
	if n == 0 {
		return 0, ErrEmptyQueue
	}
	if from < 0 || from >= n {
		from = 0
	}
	idx := from
	for attempts := 0; attempts < n; attempts++ {
		if fileutil.Exists(filepath.Join(q.dir, q.names[idx])) {
			return idx, nil
		}
		idx = (idx + 1) % n
	}
	q.Clear()
	return 0, ErrEmptyQueue
}

// SendToEnd removes the element at index and appends it to the tail,
// returning the adjusted current index: it stays put unless it now exceeds
// the length, in which case it wraps to 0.
func (q *Queue) SendToEnd(index, currentIndex int) int {
	if index < 0 || index >= len(q.names) {
		return currentIndex
	}
	name := q.names[index]
	q.names = append(q.names[:index], q.names[index+1:]...)
	q.names = append(q.names, name)
	if currentIndex >= len(q.names) {
		currentIndex = 0
	}
	return currentIndex
}

// ReplaceAt swaps the element at index for a new filename, preserving its
// position. Used after a rename so the queue tracks the file's new name.
func (q *Queue) ReplaceAt(index int, name string) {
	if index < 0 || index >= len(q.names) {
		return
	}
	q.names[index] = name
}

// IndexOf returns the position of name in the queue, or -1.
func (q *Queue) IndexOf(name string) int {
	for i, n := range q.names {
		if n == name {
			return i
		}
	}
	return -1
}
