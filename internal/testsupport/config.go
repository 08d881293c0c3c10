package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"vogue/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryRoots = []string{filepath.Join(base, "library")}
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.RegistryPath = filepath.Join(base, "registry", "registry.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := os.MkdirAll(cfgVal.Paths.LibraryRoots[0], 0o755); err != nil {
		t.Fatalf("mkdir library root: %v", err)
	}

	return builder.cfg
}

// WithLibraryRoots replaces the library roots on the test config.
func WithLibraryRoots(roots ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LibraryRoots = roots
	}
}

// WithDefaults overrides the new-project defaults on the test config.
func WithDefaults(d config.Defaults) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Defaults = d
	}
}

// WithApp registers an application entry on the test config.
func WithApp(name string, app config.App) ConfigOption {
	return func(b *configBuilder) {
		if b.cfg.Apps == nil {
			b.cfg.Apps = map[string]config.App{}
		}
		b.cfg.Apps[name] = app
	}
}

// WithStubbedApps writes stub executables for the provided app names,
// registers them on the config, and prepends the stub directory to PATH.
func WithStubbedApps(names ...string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		if b.cfg.Apps == nil {
			b.cfg.Apps = map[string]config.App{}
		}
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
			b.cfg.Apps[name] = config.App{
				DisplayName: name,
				Executable:  target,
				Extensions:  []string{".ma"},
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
