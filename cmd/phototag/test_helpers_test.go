package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/config"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	if err := os.MkdirAll(cfg.Paths.ImagesDir, 0o755); err != nil {
		t.Fatalf("mkdir images: %v", err)
	}

	configPath := filepath.Join(base, "phototag.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
images_dir = %q
catalog_db = %q
progress_file = %q
lock_file = %q
log_dir = %q

[processing]
output_dir = %q
tiny_width = %d
small_width = %d

[logging]
format = "console"
level = "error"
`,
		cfg.Paths.ImagesDir,
		cfg.Paths.CatalogDB,
		cfg.Paths.ProgressFile,
		cfg.Paths.LockFile,
		cfg.Paths.LogDir,
		cfg.Processing.OutputDir,
		cfg.Processing.TinyWidth,
		cfg.Processing.SmallWidth,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
