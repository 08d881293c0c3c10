package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"vogue/internal/config"
	"vogue/internal/logging"
	"vogue/internal/manager"
	"vogue/internal/pipeline"
	"vogue/internal/registry"
)

type commandContext struct {
	configFlag  *string
	projectFlag *string

	configOnce sync.Once
	config     *config.Config
	logger     *slog.Logger
	configErr  error

	managerOnce sync.Once
	mgr         *manager.Manager
	reg         *registry.Store
	managerErr  error
}

func newCommandContext(configFlag, projectFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		projectFlag: projectFlag,
	}
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
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.configErr
}

// ensureManager builds the façade once. A registry that fails to open
// degrades to no recent-project bookkeeping rather than blocking the CLI.
func (c *commandContext) ensureManager() (*manager.Manager, error) {
	c.managerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.managerErr = err
			return
		}
		reg, err := registry.Open(cfg.Paths.RegistryPath)
		if err != nil {
			c.logger.Warn("recent-projects registry unavailable",
				logging.String("path", cfg.Paths.RegistryPath),
				logging.Error(err))
			reg = nil
		}
		c.reg = reg
		c.mgr = manager.New(cfg, c.logger, reg)
	})
	return c.mgr, c.managerErr
}

// ensureProject returns a manager with the working project loaded. The
// project root comes from --project, falling back to the current directory
// when it holds a pipeline document.
func (c *commandContext) ensureProject(cmd *cobra.Command) (*manager.Manager, error) {
	mgr, err := c.ensureManager()
	if err != nil {
		return nil, err
	}
	if mgr.Project() != nil {
		return mgr, nil
	}

	root, err := c.projectRoot()
	if err != nil {
		return nil, err
	}
	if _, err := mgr.LoadProject(cmd.Context(), root); err != nil {
		return nil, err
	}
	return mgr, nil
}

func (c *commandContext) projectRoot() (string, error) {
	if c.projectFlag != nil && strings.TrimSpace(*c.projectFlag) != "" {
		return config.ExpandPath(strings.TrimSpace(*c.projectFlag))
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}
	if _, err := os.Stat(pipeline.DocumentPath(cwd)); err == nil {
		return cwd, nil
	}
	return "", errors.New("no project specified; pass --project or run inside a project root")
}

func (c *commandContext) closeRegistry() {
	if c.reg != nil {
		_ = c.reg.Close()
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
