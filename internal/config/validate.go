package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDefaults(); err != nil {
		return err
	}
	if err := c.validateApps(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	if strings.TrimSpace(c.Paths.RegistryPath) == "" {
		return errors.New("paths.registry_path must be set")
	}
	return nil
}

func (c *Config) validateDefaults() error {
	if c.Defaults.FPS <= 0 {
		return fmt.Errorf("defaults.fps must be positive, got %d", c.Defaults.FPS)
	}
	if len(c.Defaults.Resolution) != 2 {
		return errors.New("defaults.resolution must be [width, height]")
	}
	for _, dim := range c.Defaults.Resolution {
		if dim <= 0 {
			return errors.New("defaults.resolution values must be positive")
		}
	}
	if len(c.Defaults.TaskStatuses) == 0 {
		return errors.New("defaults.task_statuses must not be empty")
	}
	return nil
}

func (c *Config) validateApps() error {
	for name, app := range c.Apps {
		if strings.TrimSpace(name) == "" {
			return errors.New("dcc app name must not be empty")
		}
		if strings.TrimSpace(app.Executable) == "" {
			return fmt.Errorf("dcc.%s.executable must be set", name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Format) {
	case "text", "console", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
