package testsupport

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/catalog"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/config"
)

// WriteImageFile writes a flat-color image of the given dimensions. The
// encoding follows the path's extension.
func WriteImageFile(t testing.TB, path string, width, height int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	img := imaging.New(width, height, color.NRGBA{R: 60, G: 110, B: 160, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

// WritePlaceholderImages fills the config's image directory with zero-pixel
// placeholder files carrying the given names. Contents are not decodable;
// use WriteImageFile when pixels matter.
func WritePlaceholderImages(t testing.TB, cfg *config.Config, names ...string) {
	t.Helper()

	if err := os.MkdirAll(cfg.Paths.ImagesDir, 0o755); err != nil {
		t.Fatalf("mkdir images: %v", err)
	}
	for _, name := range names {
		path := filepath.Join(cfg.Paths.ImagesDir, name)
		if err := os.WriteFile(path, []byte("placeholder"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// SeedCatalog opens the config's catalog database, replaces its contents
// with the given entries, and closes it again.
func SeedCatalog(t testing.TB, cfg *config.Config, entries ...catalog.Entry) {
	t.Helper()

	store, err := catalog.Open(cfg.Paths.CatalogDB)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close catalog: %v", err)
		}
	}()
	if _, err := store.Replace(context.Background(), entries); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
}
