package manager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"vogue/internal/hierarchy"
	"vogue/internal/logging"
	"vogue/internal/project"
)

const (
	assetsDir = "01_Assets"
	shotsDir  = "02_Shots"
)

// ListAssets returns the loaded project's assets in display order.
func (m *Manager) ListAssets() []project.Asset {
	if m.project == nil {
		return nil
	}
	return append([]project.Asset(nil), m.project.Assets...)
}

// ListShots returns the loaded project's shots in display order.
func (m *Manager) ListShots() []project.Shot {
	if m.project == nil {
		return nil
	}
	return append([]project.Shot(nil), m.project.Shots...)
}

// GetAsset looks up an asset by name.
func (m *Manager) GetAsset(name string) (*project.Asset, error) {
	if m.project == nil {
		return nil, ErrNoProject
	}
	a := m.project.Asset(name)
	if a == nil {
		return nil, fmt.Errorf("%w: %s", project.ErrEntityNotFound, name)
	}
	return a, nil
}

// GetShot looks up a shot by sequence and name.
func (m *Manager) GetShot(sequence, name string) (*project.Shot, error) {
	if m.project == nil {
		return nil, ErrNoProject
	}
	s := m.project.Shot(sequence, name)
	if s == nil {
		return nil, fmt.Errorf("%w: %s/%s", project.ErrEntityNotFound, sequence, name)
	}
	return s, nil
}

// AddAsset registers a new asset, creates its working directory, and saves
// the project.
func (m *Manager) AddAsset(ctx context.Context, assetType, name string, meta map[string]any) (*project.Asset, error) {
	if m.project == nil {
		return nil, ErrNoProject
	}
	if assetType == "" {
		assetType = hierarchy.DefaultAssetType
	}

	dir := filepath.Join(m.project.Path, assetsDir, assetType, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}

	if err := m.project.AddAsset(project.Asset{
		Name: name,
		Type: assetType,
		Path: dir,
		Meta: meta,
	}); err != nil {
		return nil, err
	}
	hierarchy.Normalize(m.project, m.logger)
	if err := m.SaveProject(ctx); err != nil {
		return nil, err
	}

	m.logger.Info("added asset",
		logging.String(logging.FieldEntity, name),
		logging.String("type", assetType))
	return m.project.Asset(name), nil
}

// AddShot registers a new shot, creates its working directory, and saves the
// project.
func (m *Manager) AddShot(ctx context.Context, sequence, name string, meta map[string]any) (*project.Shot, error) {
	if m.project == nil {
		return nil, ErrNoProject
	}

	dir := filepath.Join(m.project.Path, shotsDir, sequence, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create shot dir: %w", err)
	}

	if err := m.project.AddShot(project.Shot{
		Sequence: sequence,
		Name:     name,
		Path:     dir,
		Meta:     meta,
	}); err != nil {
		return nil, err
	}
	hierarchy.Normalize(m.project, m.logger)
	if err := m.SaveProject(ctx); err != nil {
		return nil, err
	}

	m.logger.Info("added shot",
		logging.String(logging.FieldEntity, sequence+"/"+name))
	return m.project.Shot(sequence, name), nil
}

// AddFolder registers a grouping folder. Members naming entities that do not
// exist yet are materialized during normalization.
func (m *Manager) AddFolder(ctx context.Context, kind project.Kind, name string, members []string) error {
	if m.project == nil {
		return ErrNoProject
	}
	if err := m.project.AddFolder(project.Folder{
		Name:    name,
		Kind:    kind,
		Members: members,
	}); err != nil {
		return err
	}
	hierarchy.Normalize(m.project, m.logger)
	if err := m.SaveProject(ctx); err != nil {
		return err
	}

	m.logger.Info("added folder",
		logging.String("folder", name),
		logging.String("kind", string(kind)),
		logging.Int("members", len(members)))
	return nil
}

// AddTask attaches a task to an entity and saves the project.
func (m *Manager) AddTask(ctx context.Context, t project.Task) error {
	if m.project == nil {
		return ErrNoProject
	}
	if err := m.project.AddTask(t); err != nil {
		return err
	}
	return m.SaveProject(ctx)
}

// Departments returns the loaded project's department list.
func (m *Manager) Departments() []project.Department {
	if m.project == nil {
		return nil
	}
	return append([]project.Department(nil), m.project.Departments...)
}

// Tasks returns the loaded project's tasks.
func (m *Manager) Tasks() []project.Task {
	if m.project == nil {
		return nil
	}
	return append([]project.Task(nil), m.project.Tasks...)
}
