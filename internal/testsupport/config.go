package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ImagesDir = filepath.Join(base, "Images")
	cfgVal.Paths.CatalogDB = filepath.Join(base, "catalog.db")
	cfgVal.Paths.ProgressFile = filepath.Join(base, "progress.json")
	cfgVal.Paths.LockFile = filepath.Join(base, "phototag.lock")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Processing.OutputDir = filepath.Join(base, "ProcessedImages")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithThumbnailWidths overrides the thumbnail target widths.
func WithThumbnailWidths(tiny, small int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Processing.TinyWidth = tiny
		b.cfg.Processing.SmallWidth = small
	}
}

// WithLogFormat sets the logging format on the test config.
func WithLogFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Format = format
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.ImagesDir)
}
