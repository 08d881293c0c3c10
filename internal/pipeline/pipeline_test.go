package pipeline_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"vogue/internal/pipeline"
	"vogue/internal/project"
)

func buildProject(t *testing.T, root string) *project.Project {
	t.Helper()
	p, err := project.New("Demo", root, 24, [2]int{1920, 1080})
	if err != nil {
		t.Fatalf("new project: %v", err)
	}
	p.AddDepartment(project.Department{Name: "Model", Color: "#3498db", Description: "modeling"})
	p.AddDepartment(project.Department{Name: "Anim", Color: "#e74c3c"})
	if err := p.AddAsset(project.Asset{
		Name: "char_A",
		Type: "Characters",
		Path: filepath.Join(root, "01_Assets", "Characters", "char_A"),
		Meta: map[string]any{"description": "hero character"},
		Versions: []project.Version{{
			Version:  "v001",
			User:     "bob",
			Comment:  "first pass",
			Date:     time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
			Path:     filepath.Join(root, "06_Scenes", "Assets", "Characters", "char_A", "char_A_v001.ma"),
			AppName:  "maya",
			Status:   project.StatusWIP,
			TaskName: "model",
		}},
	}); err != nil {
		t.Fatalf("add asset: %v", err)
	}
	if err := p.AddShot(project.Shot{Sequence: "SEQ01", Name: "SH010"}); err != nil {
		t.Fatalf("add shot: %v", err)
	}
	if err := p.AddFolder(project.Folder{Name: project.MainFolder, Kind: project.KindAsset, Members: []string{"char_A"}}); err != nil {
		t.Fatalf("add folder: %v", err)
	}
	if err := p.AddFolder(project.Folder{Name: "SEQ01", Kind: project.KindShot, Members: []string{"SH010"}}); err != nil {
		t.Fatalf("add folder: %v", err)
	}
	if err := p.AddTask(project.Task{Name: "model", Department: "Model", Status: project.StatusReview, EntityKey: "char_A", EntityKind: project.KindAsset}); err != nil {
		t.Fatalf("add task: %v", err)
	}
	return p
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	p := buildProject(t, root)
	if err := pipeline.EnsureLayout(root); err != nil {
		t.Fatalf("ensure layout: %v", err)
	}
	path := pipeline.DocumentPath(root)

	if err := pipeline.Save(p, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := pipeline.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(p, loaded) {
		t.Fatalf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", p, loaded)
	}
}

func TestLoadMissingDocument(t *testing.T) {
	_, err := pipeline.Load(filepath.Join(t.TempDir(), "pipeline.json"))
	if !errors.Is(err, pipeline.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.json")

	cases := map[string]string{
		"not json":        "{{{",
		"wrong structure": `[1, 2, 3]`,
		"missing name":    `{"path": "/tmp/p", "fps": 24, "resolution": [1920, 1080]}`,
		"bad fps":         `{"name": "P", "path": "/tmp/p", "fps": 0, "resolution": [1920, 1080]}`,
		"bad folder kind": `{"name": "P", "path": "/tmp/p", "fps": 24, "resolution": [1920, 1080], "folders": [{"name": "X", "kind": "group"}]}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := pipeline.Load(path); !errors.Is(err, pipeline.ErrCorruptDocument) {
				t.Fatalf("expected ErrCorruptDocument, got %v", err)
			}
		})
	}
}

func TestLoadToleratesUnknownAndMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.json")
	content := `{
  "name": "Old",
  "path": "/tmp/old",
  "fps": 25,
  "resolution": [2048, 858],
  "schema_revision": 9,
  "assets": [{"name": "char_A", "type": "Characters", "future_field": true}]
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := pipeline.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(p.Assets) != 1 || p.Assets[0].Name != "char_A" {
		t.Fatalf("unexpected assets: %+v", p.Assets)
	}
	if p.Folders != nil && len(p.Folders) != 0 {
		t.Fatalf("missing folders should default empty, got %+v", p.Folders)
	}
}

func TestSaveFailureLeavesDocumentUntouched(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	root := t.TempDir()
	p := buildProject(t, root)
	if err := pipeline.EnsureLayout(root); err != nil {
		t.Fatalf("ensure layout: %v", err)
	}
	path := pipeline.DocumentPath(root)
	if err := pipeline.Save(p, path); err != nil {
		t.Fatalf("initial save: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read before: %v", err)
	}

	// Make the pipeline directory read-only so the temp-file create fails
	// ahead of the atomic rename.
	dir := filepath.Dir(path)
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	p.Name = "Changed"
	err = pipeline.Save(p, path)
	if !errors.Is(err, pipeline.ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}

	after, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read after: %v", readErr)
	}
	if string(before) != string(after) {
		t.Fatal("document changed despite failed save")
	}
}

func TestEnsureLayoutIdempotent(t *testing.T) {
	root := t.TempDir()
	if err := pipeline.EnsureLayout(root); err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := pipeline.EnsureLayout(root); err != nil {
		t.Fatalf("second: %v", err)
	}
	for _, dir := range []string{"00_Pipeline", "01_Assets/Characters", "02_Shots", "06_Scenes/Shots"} {
		if info, err := os.Stat(filepath.Join(root, dir)); err != nil || !info.IsDir() {
			t.Fatalf("missing layout dir %s: %v", dir, err)
		}
	}
}
