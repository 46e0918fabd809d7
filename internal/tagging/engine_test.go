package tagging

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/catalog"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/config"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/logging"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/progress"
)

func newTestEngine(t *testing.T, images []string, entries []catalog.Entry) (*Engine, string) {
	t.Helper()

	root := t.TempDir()
	imagesDir := filepath.Join(root, "Images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		t.Fatalf("mkdir images: %v", err)
	}
	for _, name := range images {
		if err := os.WriteFile(filepath.Join(imagesDir, name), []byte("img"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	store, err := catalog.Open(filepath.Join(root, "catalog.db"))
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if len(entries) > 0 {
		if _, err := store.Replace(context.Background(), entries); err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}

	cfg := &config.Config{}
	cfg.Paths.ImagesDir = imagesDir
	cfg.Paths.ProgressFile = filepath.Join(root, "progress.json")

	logger := logging.NewNop()
	engine, err := NewEngine(cfg, store, progress.NewStore(cfg.Paths.ProgressFile, logger), logger)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine, imagesDir
}

func TestTagRenamesAndAdvances(t *testing.T) {
	engine, imagesDir := newTestEngine(t,
		[]string{"IMG_0001.JPG", "IMG_0002.jpg"},
		[]catalog.Entry{{Description: "Ship's Bell", ObjectNumber: "STM 1984.12"}},
	)

	result, err := engine.Tag(context.Background(), "Ship's Bell")
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	if result.SaveErr != nil {
		t.Fatalf("save: %v", result.SaveErr)
	}
	if !result.Renamed {
		t.Fatal("expected a rename")
	}
	if result.NewName != "STM_1984.12.jpg" {
		t.Fatalf("new name = %q", result.NewName)
	}
	if _, err := os.Stat(filepath.Join(imagesDir, "STM_1984.12.jpg")); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(imagesDir, "IMG_0001.JPG")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("old file still present")
	}

	view, err := engine.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if view.Name != "IMG_0002.jpg" {
		t.Fatalf("expected advance to next file, at %q", view.Name)
	}

	snap := engine.Snapshot()
	if snap.Renamed["IMG_0001.JPG"] != "STM_1984.12.jpg" {
		t.Fatalf("mapping = %v", snap.Renamed)
	}
	if len(snap.UsedTags) != 1 || snap.UsedTags[0] != "Ship's Bell" {
		t.Fatalf("used tags = %v", snap.UsedTags)
	}
}

func TestTagCollisionSuffixes(t *testing.T) {
	engine, _ := newTestEngine(t,
		[]string{"a.jpg", "b.jpg", "c.jpg"},
		[]catalog.Entry{{Description: "Anchor", ObjectNumber: "X"}},
	)

	ctx := context.Background()
	names := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		result, err := engine.Tag(ctx, "Anchor")
		if err != nil {
			t.Fatalf("tag %d: %v", i, err)
		}
		names = append(names, result.NewName)
	}
	want := []string{"X.jpg", "X_1.jpg", "X_2.jpg"}
	for i, name := range names {
		if name != want[i] {
			t.Fatalf("rename %d = %q, want %q", i, name, want[i])
		}
	}
}

func TestTagSelfMatchNoRename(t *testing.T) {
	engine, imagesDir := newTestEngine(t,
		[]string{"STM_7.jpg"},
		[]catalog.Entry{{Description: "Oar", ObjectNumber: "STM 7"}},
	)

	result, err := engine.Tag(context.Background(), "Oar")
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	if result.Renamed {
		t.Fatal("expected no filesystem rename")
	}
	if result.NewName != "STM_7.jpg" {
		t.Fatalf("new name = %q", result.NewName)
	}
	if _, err := os.Stat(filepath.Join(imagesDir, "STM_7.jpg")); err != nil {
		t.Fatalf("file missing after self-match tag: %v", err)
	}
	snap := engine.Snapshot()
	if len(snap.Renamed) != 0 {
		t.Fatalf("self-match recorded a mapping: %v", snap.Renamed)
	}
	if len(snap.UsedTags) != 1 {
		t.Fatalf("used tags = %v", snap.UsedTags)
	}
}

func TestTagUnknownDescription(t *testing.T) {
	engine, _ := newTestEngine(t, []string{"a.jpg"}, nil)

	_, err := engine.Tag(context.Background(), "No Such Thing")
	if !errors.Is(err, ErrInvalidDescription) {
		t.Fatalf("err = %v, want ErrInvalidDescription", err)
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("err = %v, want wrapped catalog.ErrNotFound", err)
	}
}

func TestUndoRestoresOriginalName(t *testing.T) {
	engine, imagesDir := newTestEngine(t,
		[]string{"orig.jpg"},
		[]catalog.Entry{{Description: "Lamp", ObjectNumber: "L1"}},
	)

	ctx := context.Background()
	if _, err := engine.Tag(ctx, "Lamp"); err != nil {
		t.Fatalf("tag: %v", err)
	}

	result, err := engine.UndoRename(nil)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if result.Restored != "orig.jpg" || result.From != "L1.jpg" {
		t.Fatalf("undo result = %+v", result)
	}
	if _, err := os.Stat(filepath.Join(imagesDir, "orig.jpg")); err != nil {
		t.Fatalf("restored file missing: %v", err)
	}

	view, err := engine.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if view.Name != "orig.jpg" {
		t.Fatalf("position after undo at %q", view.Name)
	}
	if len(engine.Snapshot().Renamed) != 0 {
		t.Fatal("mapping survived undo")
	}
}

func TestUndoWithoutRename(t *testing.T) {
	engine, _ := newTestEngine(t, []string{"plain.jpg"}, nil)

	_, err := engine.UndoRename(nil)
	if !errors.Is(err, ErrNotRenamed) {
		t.Fatalf("err = %v, want ErrNotRenamed", err)
	}
}

func TestUndoSupersededName(t *testing.T) {
	engine, imagesDir := newTestEngine(t,
		[]string{"first.jpg", "second.jpg"},
		[]catalog.Entry{{Description: "Bell", ObjectNumber: "first"}},
	)

	ctx := context.Background()
	// second.jpg is at index 1; tag it so it becomes first_1.jpg, then put a
	// fresh file back at the old name and try undoing from there.
	if _, err := engine.JumpTo(1); err != nil {
		t.Fatalf("jump: %v", err)
	}
	if _, err := engine.Tag(ctx, "Bell"); err != nil {
		t.Fatalf("tag: %v", err)
	}
	if err := os.WriteFile(filepath.Join(imagesDir, "second.jpg"), []byte("new"), 0o644); err != nil {
		t.Fatalf("recreate: %v", err)
	}
	if err := engine.Queue().Rescan(); err != nil {
		t.Fatalf("rescan: %v", err)
	}
	idx := engine.Queue().IndexOf("second.jpg")
	if idx < 0 {
		t.Fatal("second.jpg not in queue")
	}
	if _, err := engine.JumpTo(idx); err != nil {
		t.Fatalf("jump: %v", err)
	}

	view, err := engine.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if view.Status != StatusRenamedAway {
		t.Fatalf("status = %q, want %q", view.Status, StatusRenamedAway)
	}
	if view.Original != "first_1.jpg" {
		t.Fatalf("view.Original = %q, want the name the file now lives under", view.Original)
	}

	renamedIdx := engine.Queue().IndexOf("first_1.jpg")
	if renamedIdx < 0 {
		t.Fatal("first_1.jpg not in queue")
	}
	renamedView, err := engine.JumpTo(renamedIdx)
	if err != nil {
		t.Fatalf("jump: %v", err)
	}
	if renamedView.Status != StatusRenamed || renamedView.Original != "second.jpg" {
		t.Fatalf("renamed view = %+v, want prior name second.jpg", renamedView)
	}
	if _, err := engine.JumpTo(idx); err != nil {
		t.Fatalf("jump back: %v", err)
	}

	if _, err := engine.UndoRename(nil); !errors.Is(err, ErrSupersededElsewhere) {
		t.Fatalf("err = %v, want ErrSupersededElsewhere", err)
	}
}

func TestUndoOverwriteNeedsApproval(t *testing.T) {
	engine, imagesDir := newTestEngine(t,
		[]string{"taken.jpg", "other.jpg"},
		[]catalog.Entry{{Description: "Net", ObjectNumber: "N"}},
	)

	ctx := context.Background()
	if _, err := engine.JumpTo(engine.Queue().IndexOf("taken.jpg")); err != nil {
		t.Fatalf("jump: %v", err)
	}
	if _, err := engine.Tag(ctx, "Net"); err != nil {
		t.Fatalf("tag: %v", err)
	}
	// Recreate the original name so undo would overwrite it.
	if err := os.WriteFile(filepath.Join(imagesDir, "taken.jpg"), []byte("squatter"), 0o644); err != nil {
		t.Fatalf("recreate: %v", err)
	}
	idx := engine.Queue().IndexOf("N.jpg")
	if idx < 0 {
		t.Fatal("N.jpg not in queue")
	}
	if _, err := engine.JumpTo(idx); err != nil {
		t.Fatalf("jump: %v", err)
	}

	if _, err := engine.UndoRename(nil); !errors.Is(err, ErrOverwriteDeclined) {
		t.Fatalf("nil approver: err = %v, want ErrOverwriteDeclined", err)
	}
	declined := false
	_, err := engine.UndoRename(OverwriteApproverFunc(func(string) bool {
		declined = true
		return false
	}))
	if !errors.Is(err, ErrOverwriteDeclined) {
		t.Fatalf("declining approver: err = %v", err)
	}
	if !declined {
		t.Fatal("approver was not consulted")
	}

	result, err := engine.UndoRename(OverwriteApproverFunc(func(string) bool { return true }))
	if err != nil {
		t.Fatalf("approved undo: %v", err)
	}
	if result.Restored != "taken.jpg" {
		t.Fatalf("restored = %q", result.Restored)
	}
	data, err := os.ReadFile(filepath.Join(imagesDir, "taken.jpg"))
	if err != nil {
		t.Fatalf("read restored: %v", err)
	}
	if string(data) != "img" {
		t.Fatalf("restored contents = %q", data)
	}
}

func TestMarkUnknownSendsToEnd(t *testing.T) {
	engine, _ := newTestEngine(t, []string{"a.jpg", "b.jpg", "c.jpg"}, nil)

	result, err := engine.MarkUnknown()
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if result.File != "a.jpg" || result.AlreadyMarked {
		t.Fatalf("result = %+v", result)
	}

	names := engine.Queue().Names()
	want := []string{"b.jpg", "c.jpg", "a.jpg"}
	for i, name := range names {
		if name != want[i] {
			t.Fatalf("queue = %v, want %v", names, want)
		}
	}
	view, err := engine.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if view.Name != "b.jpg" {
		t.Fatalf("position at %q, want b.jpg", view.Name)
	}

	status, _ := engine.StatusOf("a.jpg")
	if status != StatusUnknown {
		t.Fatalf("status = %q", status)
	}
}

func TestMarkUnknownTwiceIsSoft(t *testing.T) {
	engine, _ := newTestEngine(t, []string{"a.jpg", "b.jpg"}, nil)

	if _, err := engine.MarkUnknown(); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	// Move back onto a.jpg, now at the tail.
	idx := engine.Queue().IndexOf("a.jpg")
	if _, err := engine.JumpTo(idx); err != nil {
		t.Fatalf("jump: %v", err)
	}

	result, err := engine.MarkUnknown()
	if err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if !result.AlreadyMarked {
		t.Fatal("expected AlreadyMarked")
	}
	if got := engine.Queue().Names(); got[len(got)-1] != "a.jpg" {
		t.Fatalf("queue reordered on repeat mark: %v", got)
	}
}

func TestMarkUnknownClearsTag(t *testing.T) {
	engine, _ := newTestEngine(t,
		[]string{"x.jpg"},
		[]catalog.Entry{{Description: "Rope", ObjectNumber: "R"}},
	)

	if _, err := engine.Tag(context.Background(), "Rope"); err != nil {
		t.Fatalf("tag: %v", err)
	}
	if _, err := engine.JumpTo(0); err != nil {
		t.Fatalf("jump: %v", err)
	}
	if _, err := engine.MarkUnknown(); err != nil {
		t.Fatalf("mark: %v", err)
	}

	snap := engine.Snapshot()
	if len(snap.Renamed) != 0 {
		t.Fatalf("rename record survived don't-know: %v", snap.Renamed)
	}
	status, _ := engine.StatusOf("R.jpg")
	if status != StatusUnknown {
		t.Fatalf("status = %q", status)
	}
}

func TestReTagUnknownByCurrentName(t *testing.T) {
	engine, imagesDir := newTestEngine(t,
		[]string{"m.jpg", "n.jpg"},
		[]catalog.Entry{{Description: "Compass", ObjectNumber: "C"}},
	)

	if _, err := engine.MarkUnknown(); err != nil {
		t.Fatalf("mark: %v", err)
	}
	idx := engine.Queue().IndexOf("m.jpg")
	if _, err := engine.JumpTo(idx); err != nil {
		t.Fatalf("jump: %v", err)
	}
	result, err := engine.Tag(context.Background(), "Compass")
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	if result.OldName != "m.jpg" || result.NewName != "C.jpg" {
		t.Fatalf("result = %+v", result)
	}
	if _, err := os.Stat(filepath.Join(imagesDir, "C.jpg")); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	status, _ := engine.StatusOf("C.jpg")
	if status != StatusRenamed {
		t.Fatalf("status = %q, don't-know flag should be cleared", status)
	}
}

func TestEmptyQueueOperations(t *testing.T) {
	engine, _ := newTestEngine(t, nil, nil)

	if _, err := engine.Tag(context.Background(), "anything"); !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("tag: %v", err)
	}
	if _, err := engine.UndoRename(nil); !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("undo: %v", err)
	}
	if _, err := engine.MarkUnknown(); !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("mark: %v", err)
	}
	if _, err := engine.Current(); !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("current: %v", err)
	}
}

func TestProgressSurvivesRestart(t *testing.T) {
	engine, _ := newTestEngine(t,
		[]string{"one.jpg", "two.jpg"},
		[]catalog.Entry{{Description: "Flag", ObjectNumber: "F"}},
	)

	if _, err := engine.Tag(context.Background(), "Flag"); err != nil {
		t.Fatalf("tag: %v", err)
	}

	logger := logging.NewNop()
	reloaded, err := NewEngine(engine.cfg, engine.catalog,
		progress.NewStore(engine.cfg.Paths.ProgressFile, logger), logger)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	snap := reloaded.Snapshot()
	if snap.Renamed["one.jpg"] != "F.jpg" {
		t.Fatalf("mapping lost across restart: %v", snap.Renamed)
	}
	if snap.Index != 1 {
		t.Fatalf("index = %d, want 1", snap.Index)
	}
	view, err := reloaded.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if view.Name != "two.jpg" {
		t.Fatalf("resumed at %q", view.Name)
	}
}

func TestResetForNewCatalog(t *testing.T) {
	engine, _ := newTestEngine(t,
		[]string{"p.jpg", "q.jpg"},
		[]catalog.Entry{{Description: "Buoy", ObjectNumber: "B"}},
	)

	if _, err := engine.Tag(context.Background(), "Buoy"); err != nil {
		t.Fatalf("tag: %v", err)
	}
	if err := engine.ResetForNewCatalog(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	snap := engine.Snapshot()
	if len(snap.UsedTags) != 0 || len(snap.Renamed) != 0 || len(snap.DontKnowFiles) != 0 {
		t.Fatalf("history survived reset: %+v", snap)
	}
	if snap.Index != 0 {
		t.Fatalf("index = %d", snap.Index)
	}
	names := engine.Queue().Names()
	want := []string{"B.jpg", "q.jpg"}
	for i, name := range names {
		if name != want[i] {
			t.Fatalf("queue = %v, want %v", names, want)
		}
	}
}
