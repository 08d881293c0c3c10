package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDefaults()
	c.normalizeApps()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.RegistryPath) == "" {
		c.Paths.RegistryPath = defaultRegistryPath
	}
	if c.Paths.RegistryPath, err = expandPath(c.Paths.RegistryPath); err != nil {
		return fmt.Errorf("paths.registry_path: %w", err)
	}
	roots := make([]string, 0, len(c.Paths.LibraryRoots))
	for _, root := range c.Paths.LibraryRoots {
		if strings.TrimSpace(root) == "" {
			continue
		}
		expanded, err := expandPath(root)
		if err != nil {
			return fmt.Errorf("paths.library_roots: %w", err)
		}
		roots = append(roots, expanded)
	}
	if len(roots) == 0 {
		expanded, err := expandPath(defaultLibraryRoot)
		if err != nil {
			return fmt.Errorf("paths.library_roots: %w", err)
		}
		roots = append(roots, expanded)
	}
	c.Paths.LibraryRoots = roots
	return nil
}

func (c *Config) normalizeDefaults() {
	if c.Defaults.FPS == 0 {
		c.Defaults.FPS = defaultFPS
	}
	if len(c.Defaults.Resolution) == 0 {
		c.Defaults.Resolution = defaultResolution()
	}
	if len(c.Defaults.Departments) == 0 {
		c.Defaults.Departments = defaultDepartments()
	}
	if len(c.Defaults.TaskStatuses) == 0 {
		c.Defaults.TaskStatuses = defaultTaskStatuses()
	}
}

func (c *Config) normalizeApps() {
	if len(c.Apps) == 0 {
		c.Apps = defaultApps()
		return
	}
	for name, app := range c.Apps {
		if strings.TrimSpace(app.DisplayName) == "" {
			app.DisplayName = name
		}
		if strings.TrimSpace(app.Executable) == "" {
			app.Executable = name
		}
		c.Apps[name] = app
	}
}

func (c *Config) normalizeLogging() {
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
}
