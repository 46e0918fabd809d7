package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeProcessing(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ImagesDir) == "" {
		c.Paths.ImagesDir = defaultImagesDir
	}
	if c.Paths.ImagesDir, err = expandPath(c.Paths.ImagesDir); err != nil {
		return fmt.Errorf("paths.images_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CatalogDB) == "" {
		c.Paths.CatalogDB = defaultCatalogDB
	}
	if c.Paths.CatalogDB, err = expandPath(c.Paths.CatalogDB); err != nil {
		return fmt.Errorf("paths.catalog_db: %w", err)
	}
	if strings.TrimSpace(c.Paths.ProgressFile) == "" {
		c.Paths.ProgressFile = defaultProgressFile
	}
	if c.Paths.ProgressFile, err = expandPath(c.Paths.ProgressFile); err != nil {
		return fmt.Errorf("paths.progress_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockFile) == "" {
		c.Paths.LockFile = defaultLockFile
	}
	if c.Paths.LockFile, err = expandPath(c.Paths.LockFile); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeProcessing() error {
	var err error
	if strings.TrimSpace(c.Processing.OutputDir) == "" {
		c.Processing.OutputDir = defaultOutputDir
	}
	if c.Processing.OutputDir, err = expandPath(c.Processing.OutputDir); err != nil {
		return fmt.Errorf("processing.output_dir: %w", err)
	}
	if c.Processing.TinyWidth == 0 {
		c.Processing.TinyWidth = defaultTinyWidth
	}
	if c.Processing.SmallWidth == 0 {
		c.Processing.SmallWidth = defaultSmallWidth
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
