package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/catalog"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/config"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/logging"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/progress"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/tagging"
)

// ErrWorkspaceLocked reports that another process holds the workspace lock.
var ErrWorkspaceLocked = errors.New("workspace is locked by another process")

// Session owns the open workspace and enforces single-instance access.
type Session struct {
	ID       string
	Config   *config.Config
	Catalog  *catalog.Store
	Progress *progress.Store
	Engine   *tagging.Engine
	Logger   *slog.Logger

	lockPath string
	lock     *flock.Flock
}

// Open prepares the workspace directories, acquires the lock, opens the
// catalog, and builds an engine resumed from the persisted progress. The
// caller must Close the returned session.
func Open(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("session requires config and logger")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	lock := flock.New(cfg.Paths.LockFile)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire workspace lock: %w", err)
	}
	if !ok {
		return nil, ErrWorkspaceLocked
	}

	cat, err := catalog.Open(cfg.Paths.CatalogDB)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	store := progress.NewStore(cfg.Paths.ProgressFile, logger)
	engine, err := tagging.NewEngine(cfg, cat, store, logger)
	if err != nil {
		_ = lock.Unlock()
		_ = cat.Close()
		return nil, err
	}

	sess := &Session{
		ID:       uuid.NewString(),
		Config:   cfg,
		Catalog:  cat,
		Progress: store,
		Engine:   engine,
		Logger:   logging.NewComponentLogger(logger, "session"),
		lockPath: cfg.Paths.LockFile,
		lock:     lock,
	}
	sess.Logger.Debug("workspace opened",
		logging.String(logging.FieldSessionID, sess.ID),
		logging.String("lock", sess.lockPath),
		logging.Int("images", engine.Queue().Len()))
	return sess, nil
}

// Close releases the catalog and the workspace lock.
func (s *Session) Close() error {
	var errs []error
	if s.Catalog != nil {
		if err := s.Catalog.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close catalog: %w", err))
		}
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			errs = append(errs, fmt.Errorf("release workspace lock: %w", err))
		}
	}
	return errors.Join(errs...)
}
