package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateProcessing(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.ImagesDir == "" {
		return errors.New("paths.images_dir must be set")
	}
	if c.Paths.CatalogDB == "" {
		return errors.New("paths.catalog_db must be set")
	}
	if c.Paths.ProgressFile == "" {
		return errors.New("paths.progress_file must be set")
	}
	return nil
}

func (c *Config) validateProcessing() error {
	if c.Processing.TinyWidth <= 0 {
		return fmt.Errorf("processing.tiny_width must be positive, got %d", c.Processing.TinyWidth)
	}
	if c.Processing.SmallWidth <= 0 {
		return fmt.Errorf("processing.small_width must be positive, got %d", c.Processing.SmallWidth)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
