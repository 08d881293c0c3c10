package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vogue/internal/config"
	"vogue/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t, testsupport.WithStubbedApps("maya"))
	configPath := filepath.Join(homeDir, ".config", "vogue", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("[paths]\n")
	fmt.Fprintf(&sb, "library_roots = [%q]\n", cfg.Paths.LibraryRoots[0])
	fmt.Fprintf(&sb, "log_dir = %q\n", cfg.Paths.LogDir)
	fmt.Fprintf(&sb, "registry_path = %q\n\n", cfg.Paths.RegistryPath)
	sb.WriteString("[logging]\nformat = \"text\"\nlevel = \"error\"\n\n")
	for name, app := range cfg.Apps {
		if !filepath.IsAbs(app.Executable) {
			continue
		}
		fmt.Fprintf(&sb, "[dcc.%s]\n", name)
		fmt.Fprintf(&sb, "display_name = %q\n", app.DisplayName)
		fmt.Fprintf(&sb, "executable = %q\n", app.Executable)
		if len(app.Extensions) > 0 {
			fmt.Fprintf(&sb, "extensions = [%q]\n", app.Extensions[0])
		}
		sb.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
