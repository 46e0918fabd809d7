package imagequeue

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeImages(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanDirFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "b.jpg", "a.PNG", "c.jpeg", "notes.txt", "d.tiff")

	names, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}
	want := []string{"a.PNG", "b.jpg", "c.jpeg"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("ScanDir = %v, want %v", names, want)
	}
}

func TestLoadKeepsPriorOrderAndAppendsNew(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "a.jpg", "b.jpg", "c.jpg", "new2.jpg", "new1.jpg")

	q := New(dir)
	// Prior session browsed c, a, b; "gone.jpg" has been deleted since.
	if err := q.Load([]string{"c.jpg", "gone.jpg", "a.jpg", "b.jpg"}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := []string{"c.jpg", "a.jpg", "b.jpg", "new1.jpg", "new2.jpg"}
	if !reflect.DeepEqual(q.Names(), want) {
		t.Fatalf("queue = %v, want %v", q.Names(), want)
	}
}

func TestNavigateSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "a.jpg", "c.jpg")

	q := New(dir)
	if err := q.Load(nil); err != nil {
		t.Fatal(err)
	}
	// Insert a missing entry between the two existing files.
	q.names = []string{"a.jpg", "missing.jpg", "c.jpg"}

	next, err := q.Navigate(0, +1)
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if next != 2 {
		t.Fatalf("Navigate(+1) = %d, want 2", next)
	}

	prev, err := q.Navigate(0, -1)
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if prev != 2 {
		t.Fatalf("Navigate(-1) from 0 should wrap to 2, got %d", prev)
	}
}

func TestNavigateExhaustionClearsQueue(t *testing.T) {
	dir := t.TempDir()
	q := New(dir)
	q.names = []string{"gone1.jpg", "gone2.jpg"}

	_, err := q.Navigate(0, +1)
	if !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("expected ErrEmptyQueue, got %v", err)
	}
	if q.Len() != 0 {
		t.Fatalf("queue not cleared: %v", q.Names())
	}
}

func TestResolveExistingPrefersCurrent(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "b.jpg")

	q := New(dir)
	q.names = []string{"a.jpg", "b.jpg"}

	idx, err := q.ResolveExisting(0)
	if err != nil {
		t.Fatalf("ResolveExisting failed: %v", err)
	}
	if idx != 1 {
		t.Fatalf("ResolveExisting = %d, want 1", idx)
	}

	idx, err = q.ResolveExisting(1)
	if err != nil || idx != 1 {
		t.Fatalf("ResolveExisting at existing entry = %d, %v", idx, err)
	}
}

func TestSendToEndReorders(t *testing.T) {
	q := New(t.TempDir())
	q.names = []string{"a.jpg", "b.jpg", "c.jpg"}

	current := q.SendToEnd(0, 0)
	want := []string{"b.jpg", "c.jpg", "a.jpg"}
	if !reflect.DeepEqual(q.Names(), want) {
		t.Fatalf("queue = %v, want %v", q.Names(), want)
	}
	if current != 0 {
		t.Fatalf("current index should stay 0, got %d", current)
	}
}

func TestReplaceAtPreservesPosition(t *testing.T) {
	q := New(t.TempDir())
	q.names = []string{"a.jpg", "b.jpg"}
	q.ReplaceAt(0, "SSESM.2019.338.jpg")
	if q.At(0) != "SSESM.2019.338.jpg" || q.At(1) != "b.jpg" {
		t.Fatalf("queue = %v", q.Names())
	}
}
