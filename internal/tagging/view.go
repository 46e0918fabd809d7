package tagging

import "strings"

// FileStatus classifies how a queue entry relates to the tagging history.
type FileStatus string

const (
	// StatusUntouched means no recorded action applies to the file.
	StatusUntouched FileStatus = "untouched"
	// StatusRenamed means the file carries a name assigned by tagging.
	StatusRenamed FileStatus = "renamed"
	// StatusRenamedAway means the file's name was the source of a rename
	// whose result now lives under a different name.
	StatusRenamedAway FileStatus = "renamed-away"
	// StatusUnknown means the file was explicitly marked don't-know.
	StatusUnknown FileStatus = "don't-know"
)

// View describes the file at a queue position.
type View struct {
	Name   string
	Path   string
	Index  int
	Total  int
	Status FileStatus
	// Original is the counterpart name for rename records: the prior name
	// when Status is StatusRenamed, or the name the file now lives under
	// when Status is StatusRenamedAway.
	Original string
	SaveErr  error
}

// TagResult reports a completed tag operation.
type TagResult struct {
	Description string
	OldName     string
	NewName     string
	Renamed     bool // false when the file already carried the derived name
	SaveErr     error
}

// UndoResult reports a completed undo.
type UndoResult struct {
	Restored string
	From     string
	SaveErr  error
}

// UnknownResult reports a don't-know marking.
type UnknownResult struct {
	File          string
	AlreadyMarked bool
	SaveErr       error
}

// Snapshot is a read-only copy of the engine's state for reporting.
type Snapshot struct {
	UsedTags      []string
	Renamed       map[string]string
	DontKnowFiles []string
	Index         int
	QueueLen      int
}

// Snapshot copies the current tagging history.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		UsedTags:      sortedKeys(e.usedTags),
		Renamed:       make(map[string]string, len(e.renamed)),
		DontKnowFiles: sortedKeys(e.unknown),
		Index:         e.index,
		QueueLen:      e.queue.Len(),
	}
	for from, to := range e.renamed {
		snap.Renamed[from] = to
	}
	return snap
}

// StatusOf reports how a file name relates to the tagging history.
// Don't-know wins over rename records.
func (e *Engine) StatusOf(name string) (FileStatus, string) {
	if _, ok := e.unknown[name]; ok {
		return StatusUnknown, ""
	}
	for from, to := range e.renamed {
		if strings.EqualFold(to, name) {
			return StatusRenamed, from
		}
	}
	for from, to := range e.renamed {
		if strings.EqualFold(from, name) && !strings.EqualFold(to, from) {
			return StatusRenamedAway, to
		}
	}
	return StatusUntouched, ""
}

func (e *Engine) viewAt(index int) View {
	name := e.queue.At(index)
	status, original := e.StatusOf(name)
	return View{
		Name:     name,
		Path:     e.queue.PathAt(index),
		Index:    index,
		Total:    e.queue.Len(),
		Status:   status,
		Original: original,
	}
}
