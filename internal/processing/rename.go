package processing

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/fileutil"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/logging"
)

const tempPrefix = "temp_"

// RenameReport tallies a temp-file rename sweep.
type RenameReport struct {
	Renamed  int
	Skipped  int
	Failures []Failure
}

// RenameTempFiles rewrites provisional accession names of the form
// TEMP_123.jpg to TEMP.123.jpg throughout the input tree. Files whose target
// name is already taken are skipped, not overwritten.
func RenameTempFiles(inputDir string, logger *slog.Logger) (RenameReport, error) {
	log := logging.NewComponentLogger(logger, "processing")

	var report RenameReport
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		newName, ok := tempRename(d.Name())
		if !ok {
			report.Skipped++
			return nil
		}
		newPath := filepath.Join(filepath.Dir(path), newName)
		if fileutil.Exists(newPath) {
			log.Warn("rename target already exists",
				logging.String("file", d.Name()),
				logging.String("target", newName))
			report.Skipped++
			return nil
		}
		if err := os.Rename(path, newPath); err != nil {
			report.Failures = append(report.Failures, Failure{Path: path, Err: err})
			return nil
		}
		report.Renamed++
		log.Debug("renamed temp file",
			logging.String("from", d.Name()),
			logging.String("to", newName))
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("walk %s: %w", inputDir, err)
	}
	return report, nil
}

// tempRename maps TEMP_<digits><ext> to TEMP.<digits><ext>, preserving the
// original casing of the prefix. Names that do not match report false.
func tempRename(name string) (string, bool) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	if !strings.HasPrefix(strings.ToLower(base), tempPrefix) {
		return "", false
	}
	digits := base[len(tempPrefix):]
	if digits == "" {
		return "", false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return strings.Replace(base, "_", ".", 1) + ext, true
}
