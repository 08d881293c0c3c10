package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("second init without --overwrite should fail")
	}
	if _, err := runCLI(t, env, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("init with --overwrite: %v", err)
	}
}

func TestProjectCreateAndInfo(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "project", "create", "Hollow")
	if err != nil {
		t.Fatalf("project create: %v", err)
	}
	requireContains(t, out, "Created project Hollow")

	root := filepath.Join(env.cfg.Paths.LibraryRoots[0], "Hollow")
	out, err = runCLI(t, env, "--project", root, "project", "info")
	if err != nil {
		t.Fatalf("project info: %v", err)
	}
	requireContains(t, out, "Hollow")
	requireContains(t, out, root)
}

func TestAssetAndShotLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "project", "create", "Hollow"); err != nil {
		t.Fatalf("project create: %v", err)
	}
	root := filepath.Join(env.cfg.Paths.LibraryRoots[0], "Hollow")

	out, err := runCLI(t, env, "--project", root, "asset", "add", "char_A", "--type", "Characters")
	if err != nil {
		t.Fatalf("asset add: %v", err)
	}
	requireContains(t, out, "Added asset char_A (Characters)")

	out, err = runCLI(t, env, "--project", root, "asset", "list")
	if err != nil {
		t.Fatalf("asset list: %v", err)
	}
	requireContains(t, out, "char_A")
	requireContains(t, out, "Characters")

	out, err = runCLI(t, env, "--project", root, "shot", "add", "SEQ010", "SH010")
	if err != nil {
		t.Fatalf("shot add: %v", err)
	}
	requireContains(t, out, "Added shot SEQ010/SH010")

	out, err = runCLI(t, env, "--project", root, "shot", "list", "--json")
	if err != nil {
		t.Fatalf("shot list: %v", err)
	}
	requireContains(t, out, `"sequence": "SEQ010"`)
}

func TestVersionCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "project", "create", "Hollow"); err != nil {
		t.Fatalf("project create: %v", err)
	}
	root := filepath.Join(env.cfg.Paths.LibraryRoots[0], "Hollow")
	if _, err := runCLI(t, env, "--project", root, "asset", "add", "char_A", "--type", "Characters"); err != nil {
		t.Fatalf("asset add: %v", err)
	}

	source := filepath.Join(env.baseDir, "wip.ma")
	if err := os.WriteFile(source, []byte("//Maya ASCII scene\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	out, err := runCLI(t, env, "--project", root,
		"version", "add", "char_A", source, "--user", "mel", "--comment", "first pass")
	if err != nil {
		t.Fatalf("version add: %v", err)
	}
	requireContains(t, out, "Published v001 of char_A")

	out, err = runCLI(t, env, "--project", root, "version", "placeholder", "char_A", "--user", "mel")
	if err != nil {
		t.Fatalf("version placeholder: %v", err)
	}
	requireContains(t, out, "Reserved v002 of char_A")

	out, err = runCLI(t, env, "--project", root, "version", "list", "char_A")
	if err != nil {
		t.Fatalf("version list: %v", err)
	}
	requireContains(t, out, "v001")
	requireContains(t, out, "v002")
	requireContains(t, out, "mel")
}

func TestFolderAddMaterializesShots(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "project", "create", "Hollow"); err != nil {
		t.Fatalf("project create: %v", err)
	}
	root := filepath.Join(env.cfg.Paths.LibraryRoots[0], "Hollow")

	out, err := runCLI(t, env, "--project", root,
		"folder", "add", "SEQ010", "SH010", "SH020", "--kind", "shot")
	if err != nil {
		t.Fatalf("folder add: %v", err)
	}
	requireContains(t, out, "Added shot folder SEQ010 with 2 member(s)")

	out, err = runCLI(t, env, "--project", root, "shot", "list")
	if err != nil {
		t.Fatalf("shot list: %v", err)
	}
	requireContains(t, out, "SH010")
	requireContains(t, out, "SH020")
}

func TestScanCommandReportsDiscoveries(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "project", "create", "Hollow"); err != nil {
		t.Fatalf("project create: %v", err)
	}
	root := filepath.Join(env.cfg.Paths.LibraryRoots[0], "Hollow")

	out, err := runCLI(t, env, "--project", root, "scan")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "in sync")

	if err := os.MkdirAll(filepath.Join(root, "01_Assets", "Props", "sword"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	out, err = runCLI(t, env, "--project", root, "scan")
	if err != nil {
		t.Fatalf("scan after change: %v", err)
	}
	requireContains(t, out, "sword")
}

func TestRecentAndDiscover(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "project", "create", "Hollow"); err != nil {
		t.Fatalf("project create: %v", err)
	}

	out, err := runCLI(t, env, "project", "recent")
	if err != nil {
		t.Fatalf("project recent: %v", err)
	}
	requireContains(t, out, "Hollow")

	out, err = runCLI(t, env, "project", "discover")
	if err != nil {
		t.Fatalf("project discover: %v", err)
	}
	requireContains(t, out, "Hollow")

	if _, err := runCLI(t, env, "project", "recent", "--clear"); err != nil {
		t.Fatalf("project recent --clear: %v", err)
	}
	out, err = runCLI(t, env, "project", "recent")
	if err != nil {
		t.Fatalf("project recent after clear: %v", err)
	}
	requireContains(t, out, "No recent projects")
}

func TestAppsCommandShowsAvailability(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "apps")
	if err != nil {
		t.Fatalf("apps: %v", err)
	}
	requireContains(t, out, "maya")
	requireContains(t, out, "yes")
}

func TestCommandsRequireProject(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "asset", "list"); err == nil {
		t.Fatal("asset list without a project should fail")
	}
}
