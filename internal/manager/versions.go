package manager

import (
	"context"

	"vogue/internal/project"
	"vogue/internal/versions"
)

// AddVersion registers a new version of entityKey backed by sourcePath and
// saves the project. The version identifier is auto-assigned unless
// overridden via versions.WithIdentifier.
func (m *Manager) AddVersion(ctx context.Context, entityKey, appName, taskName, user, comment, sourcePath string, opts ...versions.Option) (project.Version, error) {
	if m.project == nil {
		return project.Version{}, ErrNoProject
	}
	v, err := m.engine.CreateFromFile(entityKey, appName, taskName, user, comment, sourcePath, opts...)
	if err != nil {
		return project.Version{}, err
	}
	if err := m.SaveProject(ctx); err != nil {
		return project.Version{}, err
	}
	return v, nil
}

// AddPlaceholder registers a version of entityKey with no source file and
// saves the project.
func (m *Manager) AddPlaceholder(ctx context.Context, entityKey, user, comment string, opts ...versions.Option) (project.Version, error) {
	if m.project == nil {
		return project.Version{}, ErrNoProject
	}
	v, err := m.engine.CreatePlaceholder(entityKey, user, comment, opts...)
	if err != nil {
		return project.Version{}, err
	}
	if err := m.SaveProject(ctx); err != nil {
		return project.Version{}, err
	}
	return v, nil
}

// ListVersions returns entityKey's versions in creation order, optionally
// filtered by task name.
func (m *Manager) ListVersions(entityKey, taskName string) ([]project.Version, error) {
	if m.project == nil {
		return nil, ErrNoProject
	}
	return m.engine.List(entityKey, taskName)
}
