package versions_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"vogue/internal/project"
	"vogue/internal/versions"
)

func newTestProject(t *testing.T) *project.Project {
	t.Helper()
	p, err := project.New("Demo", t.TempDir(), 24, [2]int{1920, 1080})
	if err != nil {
		t.Fatalf("new project: %v", err)
	}
	if err := p.AddAsset(project.Asset{Name: "char_A", Type: "Characters"}); err != nil {
		t.Fatalf("add asset: %v", err)
	}
	if err := p.AddShot(project.Shot{Sequence: "SEQ01", Name: "SH010"}); err != nil {
		t.Fatalf("add shot: %v", err)
	}
	return p
}

func TestCreatePlaceholderSequence(t *testing.T) {
	p := newTestProject(t)
	engine := versions.NewEngine(p, nil)

	first, err := engine.CreatePlaceholder("char_A", "bob", "wip")
	if err != nil {
		t.Fatalf("first placeholder: %v", err)
	}
	if first.Version != "v001" {
		t.Fatalf("first identifier = %q, want v001", first.Version)
	}
	if first.Status != project.StatusWIP {
		t.Fatalf("unexpected status: %q", first.Status)
	}
	if _, err := os.Stat(first.Path); err != nil {
		t.Fatalf("placeholder file not touched: %v", err)
	}

	second, err := engine.CreatePlaceholder("char_A", "bob", "more wip")
	if err != nil {
		t.Fatalf("second placeholder: %v", err)
	}
	if second.Version != "v002" {
		t.Fatalf("second identifier = %q, want v002", second.Version)
	}
}

func TestCreatePlaceholderUnknownEntity(t *testing.T) {
	p := newTestProject(t)
	engine := versions.NewEngine(p, nil)

	if _, err := engine.CreatePlaceholder("ghost", "bob", ""); !errors.Is(err, project.ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestCreateFromFileMissingSource(t *testing.T) {
	p := newTestProject(t)
	engine := versions.NewEngine(p, nil)

	_, err := engine.CreateFromFile("char_A", "maya", "model", "bob", "", filepath.Join(t.TempDir(), "absent.ma"))
	if !errors.Is(err, versions.ErrSourceFileMissing) {
		t.Fatalf("expected ErrSourceFileMissing, got %v", err)
	}
	list, err := engine.List("char_A", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("version list changed after failed creation: %+v", list)
	}
}

func TestCreateFromFileCopiesToCanonicalPath(t *testing.T) {
	p := newTestProject(t)
	engine := versions.NewEngine(p, nil)

	source := filepath.Join(t.TempDir(), "scene.ma")
	if err := os.WriteFile(source, []byte("scene data"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	v, err := engine.CreateFromFile("SEQ01/SH010", "maya", "anim", "alice", "blocking", source)
	if err != nil {
		t.Fatalf("create from file: %v", err)
	}
	wantPath := filepath.Join(p.Path, "06_Scenes", "Shots", "SEQ01", "SH010", "SH010_v001.ma")
	if v.Path != wantPath {
		t.Fatalf("canonical path = %q, want %q", v.Path, wantPath)
	}
	data, err := os.ReadFile(v.Path)
	if err != nil {
		t.Fatalf("read canonical file: %v", err)
	}
	if string(data) != "scene data" {
		t.Fatalf("unexpected canonical content: %q", data)
	}
	if v.WorkfilePath != source {
		t.Fatalf("workfile path = %q, want %q", v.WorkfilePath, source)
	}
	if v.TaskName != "anim" || v.AppName != "maya" {
		t.Fatalf("task/app not recorded: %+v", v)
	}
}

func TestCreateFromFileRollsBackOnCopyFailure(t *testing.T) {
	p := newTestProject(t)
	engine := versions.NewEngine(p, nil)

	source := filepath.Join(t.TempDir(), "scene.ma")
	if err := os.WriteFile(source, []byte("scene data"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	// Blocks canonical directory creation by occupying 06_Scenes with a file.
	if err := os.WriteFile(filepath.Join(p.Path, "06_Scenes"), []byte(""), 0o644); err != nil {
		t.Fatalf("occupy scenes path: %v", err)
	}

	_, err := engine.CreateFromFile("char_A", "maya", "model", "bob", "", source)
	if !errors.Is(err, versions.ErrCopyFailed) {
		t.Fatalf("expected ErrCopyFailed, got %v", err)
	}
	list, err := engine.List("char_A", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("orphan record survived failed copy: %+v", list)
	}
}

func TestExplicitIdentifier(t *testing.T) {
	p := newTestProject(t)
	engine := versions.NewEngine(p, nil)

	v, err := engine.CreatePlaceholder("char_A", "bob", "", versions.WithIdentifier("v010"))
	if err != nil {
		t.Fatalf("explicit identifier: %v", err)
	}
	if v.Version != "v010" {
		t.Fatalf("identifier = %q, want v010", v.Version)
	}

	// Auto-increment continues from the explicit maximum.
	next, err := engine.CreatePlaceholder("char_A", "bob", "")
	if err != nil {
		t.Fatalf("next placeholder: %v", err)
	}
	if next.Version != "v011" {
		t.Fatalf("identifier = %q, want v011", next.Version)
	}

	if _, err := engine.CreatePlaceholder("char_A", "bob", "", versions.WithIdentifier("v010")); !errors.Is(err, versions.ErrDuplicateVersion) {
		t.Fatalf("expected ErrDuplicateVersion, got %v", err)
	}
	if _, err := engine.CreatePlaceholder("char_A", "bob", "", versions.WithIdentifier("vNaN")); !errors.Is(err, versions.ErrInvalidVersionFormat) {
		t.Fatalf("expected ErrInvalidVersionFormat, got %v", err)
	}
}

func TestListFiltersByTask(t *testing.T) {
	p := newTestProject(t)
	engine := versions.NewEngine(p, nil)

	if _, err := engine.CreatePlaceholder("char_A", "bob", "", versions.WithTask("model")); err != nil {
		t.Fatalf("placeholder: %v", err)
	}
	if _, err := engine.CreatePlaceholder("char_A", "bob", "", versions.WithTask("rig")); err != nil {
		t.Fatalf("placeholder: %v", err)
	}
	if _, err := engine.CreatePlaceholder("char_A", "bob", "", versions.WithTask("model")); err != nil {
		t.Fatalf("placeholder: %v", err)
	}

	all, err := engine.List("char_A", "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 versions, got %d", len(all))
	}
	for i, want := range []string{"v001", "v002", "v003"} {
		if all[i].Version != want {
			t.Fatalf("creation order broken at %d: %q", i, all[i].Version)
		}
	}

	model, err := engine.List("char_A", "model")
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(model) != 2 || model[0].Version != "v001" || model[1].Version != "v003" {
		t.Fatalf("unexpected filtered list: %+v", model)
	}

	// Mutating the returned slice must not affect the stored list.
	model[0].Comment = "mutated"
	again, err := engine.List("char_A", "model")
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	if again[0].Comment == "mutated" {
		t.Fatal("List must return a copy")
	}
}

func TestVersionMonotonicity(t *testing.T) {
	p := newTestProject(t)
	engine := versions.NewEngine(p, nil)

	for i := 0; i < 15; i++ {
		if _, err := engine.CreatePlaceholder("char_A", "bob", ""); err != nil {
			t.Fatalf("placeholder %d: %v", i, err)
		}
	}
	list, err := engine.List("char_A", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	seen := map[string]struct{}{}
	prev := 0
	for _, v := range list {
		if _, dup := seen[v.Version]; dup {
			t.Fatalf("duplicate identifier %s", v.Version)
		}
		seen[v.Version] = struct{}{}
		n, err := strconv.Atoi(strings.TrimPrefix(v.Version, "v"))
		if err != nil {
			t.Fatalf("parse %q: %v", v.Version, err)
		}
		if n <= prev {
			t.Fatalf("identifiers not strictly increasing: %s after v%03d", v.Version, prev)
		}
		prev = n
	}
}
