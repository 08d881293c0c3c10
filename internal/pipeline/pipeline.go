package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"vogue/internal/fileutil"
	"vogue/internal/project"
)

var (
	// ErrNotFound indicates the pipeline document does not exist.
	ErrNotFound = errors.New("pipeline document not found")
	// ErrCorruptDocument indicates the document could not be parsed as the
	// expected structure.
	ErrCorruptDocument = errors.New("corrupt pipeline document")
	// ErrWriteFailed indicates the save could not complete. The failure
	// happens before the atomic rename, so the prior document is untouched.
	ErrWriteFailed = errors.New("pipeline write failed")
)

// PipelineDir is the project subdirectory holding the pipeline document.
const PipelineDir = "00_Pipeline"

// DocumentName is the pipeline document filename.
const DocumentName = "pipeline.json"

// DocumentPath returns the pipeline document location for a project root.
func DocumentPath(root string) string {
	return filepath.Join(root, PipelineDir, DocumentName)
}

// Save serializes the whole project graph to path using a write-temp-then-
// rename protocol, so a crash or concurrent reader never observes a partial
// document.
func Save(p *project.Project, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrWriteFailed, err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// Load parses the pipeline document at path into a project. Unknown fields
// are ignored and missing optional fields default to empty collections, so
// documents written by older or newer schema revisions load cleanly.
func Load(path string) (*project.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read pipeline document: %w", err)
	}

	var p project.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if err := validate(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return &p, nil
}

// validate applies the structural checks a document must satisfy. Optional
// collections may be absent; identity fields may not.
func validate(p *project.Project) error {
	if p.Name == "" {
		return errors.New("name must be a non-empty string")
	}
	if p.Path == "" {
		return errors.New("path must be a non-empty string")
	}
	if p.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", p.FPS)
	}
	if p.Resolution[0] <= 0 || p.Resolution[1] <= 0 {
		return fmt.Errorf("resolution must be positive, got %v", p.Resolution)
	}
	for _, folder := range p.Folders {
		if folder.Kind != project.KindAsset && folder.Kind != project.KindShot {
			return fmt.Errorf("folder %q has unknown kind %q", folder.Name, folder.Kind)
		}
	}
	for i := range p.Assets {
		if p.Assets[i].Name == "" {
			return fmt.Errorf("asset %d has no name", i)
		}
	}
	for i := range p.Shots {
		if p.Shots[i].Name == "" || p.Shots[i].Sequence == "" {
			return fmt.Errorf("shot %d is missing sequence or name", i)
		}
	}
	return nil
}
