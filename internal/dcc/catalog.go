package dcc

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"vogue/internal/config"
)

// App describes one launchable editing application.
type App struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Executable  string   `json:"executable"`
	Extensions  []string `json:"extensions"`
	Args        []string `json:"args,omitempty"`
	Available   bool     `json:"available"`
}

// Catalog resolves configured applications to installed executables.
type Catalog struct {
	apps map[string]App
}

// NewCatalog probes every configured app once and records availability.
// Relative executables are resolved through PATH; absolute paths are checked
// directly. Config keys are folded to lower case so lookups are
// case-insensitive.
func NewCatalog(entries map[string]config.App) *Catalog {
	apps := make(map[string]App, len(entries))
	for name, entry := range entries {
		name = strings.ToLower(strings.TrimSpace(name))
		app := App{
			Name:        name,
			DisplayName: entry.DisplayName,
			Executable:  entry.Executable,
			Extensions:  append([]string(nil), entry.Extensions...),
			Args:        append([]string(nil), entry.Args...),
		}
		if resolved, ok := resolveExecutable(entry.Executable); ok {
			app.Executable = resolved
			app.Available = true
		}
		apps[name] = app
	}
	return &Catalog{apps: apps}
}

// Get returns the app registered under name.
func (c *Catalog) Get(name string) (App, bool) {
	app, ok := c.apps[strings.ToLower(strings.TrimSpace(name))]
	return app, ok
}

// Apps lists all registered apps sorted by name.
func (c *Catalog) Apps() []App {
	out := make([]App, 0, len(c.apps))
	for _, app := range c.apps {
		out = append(out, app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AppForExtension returns the first available app claiming the extension.
func (c *Catalog) AppForExtension(ext string) (App, bool) {
	ext = strings.ToLower(ext)
	for _, app := range c.Apps() {
		for _, claimed := range app.Extensions {
			if strings.ToLower(claimed) == ext {
				return app, true
			}
		}
	}
	return App{}, false
}

func resolveExecutable(executable string) (string, bool) {
	executable = strings.TrimSpace(executable)
	if executable == "" {
		return "", false
	}
	if filepath.IsAbs(executable) {
		info, err := os.Stat(executable)
		if err != nil || info.IsDir() {
			return "", false
		}
		return executable, true
	}
	resolved, err := exec.LookPath(executable)
	if err != nil {
		return "", false
	}
	return resolved, true
}
