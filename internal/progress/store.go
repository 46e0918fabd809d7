package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/logging"
)

// State is the persisted workflow record. Collections are never nil after
// Load or NewState.
type State struct {
	UsedTags        []string          `json:"used_tags"`
	Renamed         map[string]string `json:"renamed"`
	Index           int               `json:"index"`
	ImageFilesOrder []string          `json:"image_files_order"`
	DontKnowFiles   []string          `json:"dont_know_files"`
}

// NewState returns a State with all-empty collections.
func NewState() State {
	return State{
		UsedTags:        []string{},
		Renamed:         map[string]string{},
		ImageFilesOrder: []string{},
		DontKnowFiles:   []string{},
	}
}

func (s *State) fillDefaults() {
	if s.UsedTags == nil {
		s.UsedTags = []string{}
	}
	if s.Renamed == nil {
		s.Renamed = map[string]string{}
	}
	if s.ImageFilesOrder == nil {
		s.ImageFilesOrder = []string{}
	}
	if s.DontKnowFiles == nil {
		s.DontKnowFiles = []string{}
	}
}

// Store reads and writes the progress file.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store for the given progress file path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "progress"),
	}
}

// Path returns the progress file location.
func (s *Store) Path() string { return s.path }

// Load reads the persisted state. A missing file yields the all-empty state;
// fields absent from an older file default to empty collections.
func (s *Store) Load() (State, error) {
	state := NewState()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return state, nil
		}
		return state, fmt.Errorf("read progress file: %w", err)
	}
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return NewState(), fmt.Errorf("parse progress file %s: %w", s.path, err)
	}
	state.fillDefaults()

	s.logger.Debug("loaded progress",
		logging.Int("images", len(state.ImageFilesOrder)),
		logging.Int("renamed", len(state.Renamed)),
		logging.Int("index", state.Index))
	return state, nil
}

// Save rewrites the whole document atomically via a temp file in the same
// directory.
func (s *Store) Save(state State) error {
	state.fillDefaults()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create progress directory: %w", err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), uuid.NewString()))
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp progress file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}
