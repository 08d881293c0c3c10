package registry_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"vogue/internal/project"
	"vogue/internal/registry"
)

func openStore(t *testing.T) *registry.Store {
	t.Helper()
	store, err := registry.Open(filepath.Join(t.TempDir(), "registry.db"))
	if err != nil {
		t.Fatalf("open registry: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestTouchAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.Touch(ctx, "Alpha", "/lib/alpha"); err != nil {
		t.Fatalf("touch alpha: %v", err)
	}
	if err := store.Touch(ctx, "Beta", "/lib/beta"); err != nil {
		t.Fatalf("touch beta: %v", err)
	}

	entries, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Beta" {
		t.Fatalf("newest first expected, got %q", entries[0].Name)
	}
	if entries[0].LastOpened.IsZero() {
		t.Fatal("last opened timestamp missing")
	}
}

func TestTouchRefreshesExistingEntry(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.Touch(ctx, "Alpha", "/lib/alpha"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if err := store.Touch(ctx, "Beta", "/lib/beta"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if err := store.Touch(ctx, "Alpha Renamed", "/lib/alpha"); err != nil {
		t.Fatalf("touch again: %v", err)
	}

	entries, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("refresh must not duplicate, got %d entries", len(entries))
	}
	if entries[0].Path != "/lib/alpha" || entries[0].Name != "Alpha Renamed" {
		t.Fatalf("refreshed entry not first: %+v", entries[0])
	}
}

func TestTouchPrunesOldEntries(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		path := fmt.Sprintf("/lib/project-%02d", i)
		if err := store.Touch(ctx, filepath.Base(path), path); err != nil {
			t.Fatalf("touch %s: %v", path, err)
		}
	}

	entries, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 20 {
		t.Fatalf("expected retention bound of 20, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Path == "/lib/project-00" {
			t.Fatal("oldest entry should have been pruned")
		}
	}
}

func TestRemoveAndClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.Touch(ctx, "Alpha", "/lib/alpha"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if err := store.Remove(ctx, "/lib/alpha"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove(ctx, "/lib/never-existed"); err != nil {
		t.Fatalf("remove unknown path must not fail: %v", err)
	}

	if err := store.Touch(ctx, "Beta", "/lib/beta"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	entries, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty registry, got %d entries", len(entries))
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "registry.db")
	ctx := context.Background()

	store, err := registry.Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Touch(ctx, "Alpha", "/lib/alpha"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := registry.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	entries, err := reopened.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Alpha" {
		t.Fatalf("entries lost on reopen: %+v", entries)
	}
}

func TestDiscoverFindsProjectsUnderRoots(t *testing.T) {
	root := t.TempDir()

	writeProject(t, filepath.Join(root, "alpha"), "Alpha")
	writeProject(t, filepath.Join(root, "beta"), "Beta")
	if err := os.MkdirAll(filepath.Join(root, "not-a-project"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	entries := registry.Discover([]string{root, filepath.Join(root, "missing-root")})
	if len(entries) != 2 {
		t.Fatalf("expected 2 projects, got %+v", entries)
	}
	if entries[0].Name != "Alpha" || entries[1].Name != "Beta" {
		t.Fatalf("unexpected order: %+v", entries)
	}
	if entries[0].Path != filepath.Join(root, "alpha") {
		t.Fatalf("unexpected path: %q", entries[0].Path)
	}
}

func TestDiscoverFallsBackToDirectoryName(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "gamma")
	if err := os.MkdirAll(filepath.Join(dir, "00_Pipeline"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	doc := filepath.Join(dir, "00_Pipeline", "pipeline.json")
	if err := os.WriteFile(doc, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	entries := registry.Discover([]string{root})
	if len(entries) != 1 || entries[0].Name != "gamma" {
		t.Fatalf("expected fallback name gamma, got %+v", entries)
	}
}

func writeProject(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, "00_Pipeline"), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	p, err := project.New(name, dir, 24, [2]int{1920, 1080})
	if err != nil {
		t.Fatalf("new project: %v", err)
	}
	data := fmt.Sprintf(`{"name":%q,"path":%q,"fps":24,"resolution":[1920,1080]}`, p.Name, p.Path)
	doc := filepath.Join(dir, "00_Pipeline", "pipeline.json")
	if err := os.WriteFile(doc, []byte(data), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
}
