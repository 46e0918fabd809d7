package tagging

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/catalog"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/config"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/fileutil"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/imagequeue"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/logging"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/progress"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/textutil"
)

// OverwriteApprover decides whether an undo may overwrite an existing file
// occupying the original name. Presentation layers supply it; a nil approver
// declines.
type OverwriteApprover interface {
	ApproveOverwrite(target string) bool
}

// OverwriteApproverFunc adapts a function to the OverwriteApprover interface.
type OverwriteApproverFunc func(target string) bool

func (f OverwriteApproverFunc) ApproveOverwrite(target string) bool { return f(target) }

// Engine is the tagging state machine. All operations run synchronously and
// persist the whole progress record after every successful mutation.
type Engine struct {
	cfg     *config.Config
	catalog *catalog.Store
	queue   *imagequeue.Queue
	store   *progress.Store
	logger  *slog.Logger

	usedTags map[string]struct{}
	renamed  map[string]string
	unknown  map[string]struct{}
	index    int
}

// NewEngine loads the persisted progress, reconciles it with the image
// directory, and returns a ready engine.
func NewEngine(cfg *config.Config, cat *catalog.Store, store *progress.Store, logger *slog.Logger) (*Engine, error) {
	state, err := store.Load()
	if err != nil {
		return nil, err
	}

	queue := imagequeue.New(cfg.Paths.ImagesDir)
	if err := queue.Load(state.ImageFilesOrder); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		catalog:  cat,
		queue:    queue,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "tagging"),
		usedTags: make(map[string]struct{}, len(state.UsedTags)),
		renamed:  make(map[string]string, len(state.Renamed)),
		unknown:  make(map[string]struct{}, len(state.DontKnowFiles)),
		index:    state.Index,
	}
	for _, tag := range state.UsedTags {
		e.usedTags[tag] = struct{}{}
	}
	for original, current := range state.Renamed {
		e.renamed[original] = current
	}
	for _, name := range state.DontKnowFiles {
		e.unknown[name] = struct{}{}
	}
	if e.index < 0 || e.index >= queue.Len() {
		e.index = 0
	}
	return e, nil
}

// Queue exposes the browsing queue for read-only inspection.
func (e *Engine) Queue() *imagequeue.Queue { return e.queue }

// Index returns the current queue position.
func (e *Engine) Index() int { return e.index }

// Current resolves the current position to an existing file, skipping
// forward past missing entries, and returns its view.
func (e *Engine) Current() (View, error) {
	idx, err := e.queue.ResolveExisting(e.index)
	if err != nil {
		return View{}, err
	}
	e.index = idx
	return e.viewAt(idx), nil
}

// Next advances to the nearest existing file after the current position and
// persists the new index.
func (e *Engine) Next() (View, error) {
	return e.navigate(+1)
}

// Prev steps back to the nearest existing file before the current position
// and persists the new index.
func (e *Engine) Prev() (View, error) {
	return e.navigate(-1)
}

func (e *Engine) navigate(direction int) (View, error) {
	idx, err := e.queue.Navigate(e.index, direction)
	if err != nil {
		return View{}, err
	}
	e.index = idx
	view := e.viewAt(idx)
	view.SaveErr = e.persist()
	return view, nil
}

// JumpTo moves directly to the given queue position (clamped), resolving
// forward to an existing file, and persists the new index.
func (e *Engine) JumpTo(index int) (View, error) {
	if n := e.queue.Len(); n > 0 {
		if index < 0 {
			index = 0
		}
		if index >= n {
			index = n - 1
		}
	}
	idx, err := e.queue.ResolveExisting(index)
	if err != nil {
		return View{}, err
	}
	e.index = idx
	view := e.viewAt(idx)
	view.SaveErr = e.persist()
	return view, nil
}

// Tag resolves the description, renames the current file to its sanitized
// object number, records the mapping, and advances to the next existing
// file. A file already carrying the derived name is marked used without a
// filesystem change.
func (e *Engine) Tag(ctx context.Context, key string) (TagResult, error) {
	if e.queue.Len() == 0 {
		return TagResult{}, ErrEmptyQueue
	}

	entry, err := e.catalog.Lookup(ctx, key)
	if err != nil {
		return TagResult{}, Wrap(ErrInvalidDescription, "tag", fmt.Sprintf("lookup %q", strings.TrimSpace(key)), err)
	}

	current := e.queue.At(e.index)
	base := textutil.SanitizeObjectNumber(entry.ObjectNumber)
	if base == "" {
		return TagResult{}, Wrap(ErrInvalidDescription, "tag",
			fmt.Sprintf("object number %q yields no usable filename", entry.ObjectNumber), nil)
	}
	ext := strings.ToLower(filepath.Ext(current))

	result := TagResult{Description: entry.Description, OldName: current}

	// Already carrying the derived name: no filesystem change.
	if strings.EqualFold(base+ext, current) {
		result.NewName = current
		e.usedTags[entry.Description] = struct{}{}
		delete(e.unknown, current)
		result.SaveErr = e.persist()
		e.advanceAfterMutation(&result.SaveErr)
		return result, nil
	}

	target := e.resolveCollision(base, ext, current)
	oldPath := filepath.Join(e.queue.Dir(), current)
	newPath := filepath.Join(e.queue.Dir(), target)

	if !fileutil.Exists(oldPath) {
		return TagResult{}, Wrap(ErrRenameIO, "tag", fmt.Sprintf("source %s is missing", current), nil)
	}
	if err := fileutil.MoveFile(oldPath, newPath); err != nil {
		return TagResult{}, Wrap(ErrRenameIO, "tag", fmt.Sprintf("move %s to %s", current, target), err)
	}

	result.Renamed = true
	result.NewName = target
	e.renamed[current] = target
	e.usedTags[entry.Description] = struct{}{}
	delete(e.unknown, current)
	delete(e.unknown, target)
	e.queue.ReplaceAt(e.index, target)
	result.SaveErr = e.persist()
	e.advanceAfterMutation(&result.SaveErr)

	e.logger.Info("tagged image",
		logging.String("description", entry.Description),
		logging.String("from", current),
		logging.String("to", target))
	return result, nil
}

// resolveCollision finds the first free target name, trying base+ext then
// base_1+ext, base_2+ext, and so on. A name occupied by the current file
// itself (compared case-insensitively) never counts as blocking.
func (e *Engine) resolveCollision(base, ext, current string) string {
	candidate := base + ext
	for suffix := 1; ; suffix++ {
		if strings.EqualFold(candidate, current) {
			return candidate
		}
		if !fileutil.Exists(filepath.Join(e.queue.Dir(), candidate)) {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d%s", base, suffix, ext)
	}
}

// UndoRename restores the current file to the name it had before its most
// recent rename. The position does not advance; the caller redisplays the
// restored file.
func (e *Engine) UndoRename(approver OverwriteApprover) (UndoResult, error) {
	if e.queue.Len() == 0 {
		return UndoResult{}, ErrEmptyQueue
	}

	current := e.queue.At(e.index)

	original := ""
	for from, to := range e.renamed {
		if strings.EqualFold(to, current) {
			original = from
			break
		}
	}
	if original == "" {
		for from, to := range e.renamed {
			if strings.EqualFold(from, current) && !strings.EqualFold(to, from) {
				return UndoResult{}, Wrap(ErrSupersededElsewhere, "undo",
					fmt.Sprintf("%s now lives at %s", current, to), nil)
			}
		}
		return UndoResult{}, Wrap(ErrNotRenamed, "undo", current, nil)
	}

	oldPath := filepath.Join(e.queue.Dir(), current)
	newPath := filepath.Join(e.queue.Dir(), original)

	if !fileutil.Exists(oldPath) {
		// The rename this entry describes can no longer be reasoned about.
		if mapped, ok := e.renamed[original]; ok && strings.EqualFold(mapped, current) {
			delete(e.renamed, original)
			if err := e.persist(); err != nil {
				e.logger.Warn("persist after pruning stale mapping", logging.Error(err))
			}
		}
		return UndoResult{}, Wrap(ErrRenameIO, "undo", fmt.Sprintf("current file %s is missing", current), nil)
	}

	if fileutil.Exists(newPath) && !strings.EqualFold(original, current) {
		if approver == nil || !approver.ApproveOverwrite(original) {
			return UndoResult{}, Wrap(ErrOverwriteDeclined, "undo",
				fmt.Sprintf("a file named %s already exists", original), nil)
		}
	}

	if err := fileutil.MoveFile(oldPath, newPath); err != nil {
		return UndoResult{}, Wrap(ErrRenameIO, "undo", fmt.Sprintf("move %s back to %s", current, original), err)
	}

	delete(e.renamed, original)
	delete(e.unknown, current)
	delete(e.unknown, original)
	e.queue.ReplaceAt(e.index, original)

	result := UndoResult{Restored: original, From: current}
	result.SaveErr = e.persist()

	e.logger.Info("undid rename",
		logging.String("from", current),
		logging.String("to", original))
	return result, nil
}

// MarkUnknown flags the current file as don't-know and moves it to the tail
// of the queue. Marking a file that is already flagged is a soft success:
// nothing changes except the position advancing.
func (e *Engine) MarkUnknown() (UnknownResult, error) {
	if e.queue.Len() == 0 {
		return UnknownResult{}, ErrEmptyQueue
	}

	current := e.queue.At(e.index)

	if _, marked := e.unknown[current]; marked {
		result := UnknownResult{File: current, AlreadyMarked: true}
		e.advanceAfterMutation(&result.SaveErr)
		return result, nil
	}

	e.unknown[current] = struct{}{}
	// Don't-know overrides a prior tag.
	for from, to := range e.renamed {
		if strings.EqualFold(to, current) {
			delete(e.renamed, from)
			break
		}
	}

	e.index = e.queue.SendToEnd(e.index, e.index)
	result := UnknownResult{File: current}
	result.SaveErr = e.persist()

	e.logger.Info("marked don't-know", logging.String("file", current))
	return result, nil
}

// ResetForNewCatalog clears the tagging history and rescans the image
// directory into alphabetical order. Importing new catalog data invalidates
// any prior history.
func (e *Engine) ResetForNewCatalog() error {
	e.usedTags = make(map[string]struct{})
	e.renamed = make(map[string]string)
	e.unknown = make(map[string]struct{})
	if err := e.queue.Rescan(); err != nil {
		return err
	}
	e.index = 0
	return e.persist()
}

// advanceAfterMutation moves to the next existing file, treating queue
// exhaustion as a non-error (the operation itself succeeded). Persistence
// failures accumulate into saveErr.
func (e *Engine) advanceAfterMutation(saveErr *error) {
	idx, err := e.queue.Navigate(e.index, +1)
	if err != nil {
		return
	}
	e.index = idx
	if err := e.persist(); err != nil && *saveErr == nil {
		*saveErr = err
	}
}

// persist rewrites the full progress record. Failures are logged and
// returned for the caller to surface; applied mutations are never rolled
// back.
func (e *Engine) persist() error {
	state := progress.State{
		UsedTags:        sortedKeys(e.usedTags),
		Renamed:         make(map[string]string, len(e.renamed)),
		Index:           e.index,
		ImageFilesOrder: e.queue.Names(),
		DontKnowFiles:   sortedKeys(e.unknown),
	}
	for from, to := range e.renamed {
		state.Renamed[from] = to
	}
	if err := e.store.Save(state); err != nil {
		e.logger.Warn("progress write failed", logging.Error(err))
		return err
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
