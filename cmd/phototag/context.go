package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/config"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/logging"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/session"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			LogDir: cfg.Paths.LogDir,
		})
	})
	return c.logger, c.loggerErr
}

// withSession opens the locked workspace, runs fn, and releases it. Lock
// contention is reported with a hint rather than the raw sentinel.
func (c *commandContext) withSession(fn func(*session.Session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	sess, err := session.Open(cfg, logger)
	if err != nil {
		if errors.Is(err, session.ErrWorkspaceLocked) {
			return fmt.Errorf("workspace %s is in use by another phototag process", cfg.Paths.LockFile)
		}
		return err
	}
	defer sess.Close()
	return fn(sess)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
