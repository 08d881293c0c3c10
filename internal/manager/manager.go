package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"vogue/internal/config"
	"vogue/internal/dcc"
	"vogue/internal/hierarchy"
	"vogue/internal/logging"
	"vogue/internal/pipeline"
	"vogue/internal/project"
	"vogue/internal/registry"
	"vogue/internal/scan"
	"vogue/internal/versions"
)

var (
	// ErrNoProject indicates an operation that needs a loaded project.
	ErrNoProject = errors.New("no project loaded")
	// ErrProjectExists indicates a create target already holds a project.
	ErrProjectExists = errors.New("project already exists")
)

// Manager ties the project document, version engine, application catalog,
// and registry together behind one façade. It owns at most one loaded
// project at a time.
type Manager struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *registry.Store

	project  *project.Project
	engine   *versions.Engine
	catalog  *dcc.Catalog
	launcher *dcc.Launcher
	scanner  *scan.Scanner
}

// New constructs a manager. reg may be nil when no registry is available;
// recent-project bookkeeping is then skipped.
func New(cfg *config.Config, logger *slog.Logger, reg *registry.Store) *Manager {
	catalog := dcc.NewCatalog(cfg.Apps)
	return &Manager{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "manager"),
		registry: reg,
		catalog:  catalog,
		launcher: dcc.NewLauncher(catalog, logger),
		scanner:  scan.New(logger),
	}
}

// Project returns the loaded project, or nil.
func (m *Manager) Project() *project.Project {
	return m.project
}

// CreateProject scaffolds a new project directory under parentDir, writes
// its initial pipeline document, and loads it. FPS, resolution, and
// departments come from the configured defaults.
func (m *Manager) CreateProject(ctx context.Context, name, parentDir string) (*project.Project, error) {
	name = strings.TrimSpace(name)
	root := filepath.Join(parentDir, name)

	if _, err := os.Stat(pipeline.DocumentPath(root)); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, root)
	}

	resolution := [2]int{1920, 1080}
	if len(m.cfg.Defaults.Resolution) == 2 {
		resolution = [2]int{m.cfg.Defaults.Resolution[0], m.cfg.Defaults.Resolution[1]}
	}
	p, err := project.New(name, root, m.cfg.Defaults.FPS, resolution)
	if err != nil {
		return nil, err
	}
	for _, d := range m.cfg.Defaults.Departments {
		p.AddDepartment(project.Department{Name: d})
	}

	if err := pipeline.EnsureLayout(root); err != nil {
		return nil, err
	}
	hierarchy.Normalize(p, m.logger)
	if err := pipeline.Save(p, pipeline.DocumentPath(root)); err != nil {
		return nil, err
	}

	m.attach(p)
	m.touchRegistry(ctx)
	m.logger.Info("created project",
		logging.String(logging.FieldProject, p.Name),
		logging.String("path", p.Path))
	return p, nil
}

// LoadProject reads the pipeline document for the project at path. path may
// be the project root or the document itself. The project graph is
// normalized once on load.
func (m *Manager) LoadProject(ctx context.Context, path string) (*project.Project, error) {
	docPath := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		docPath = pipeline.DocumentPath(path)
	}

	p, err := pipeline.Load(docPath)
	if err != nil {
		return nil, err
	}
	hierarchy.Normalize(p, m.logger)

	m.attach(p)
	m.touchRegistry(ctx)
	m.logger.Info("loaded project",
		logging.String(logging.FieldProject, p.Name),
		logging.String("path", p.Path))
	return p, nil
}

// SaveProject writes the loaded project back to its pipeline document.
func (m *Manager) SaveProject(ctx context.Context) error {
	if m.project == nil {
		return ErrNoProject
	}
	if err := pipeline.Save(m.project, pipeline.DocumentPath(m.project.Path)); err != nil {
		return err
	}
	m.touchRegistry(ctx)
	return nil
}

// Info summarizes the loaded project.
func (m *Manager) Info() (project.Info, error) {
	if m.project == nil {
		return project.Info{}, ErrNoProject
	}
	return m.project.Summary(), nil
}

// Recent lists remembered projects, newest first.
func (m *Manager) Recent(ctx context.Context, limit int) ([]registry.Entry, error) {
	if m.registry == nil {
		return nil, nil
	}
	return m.registry.Recent(ctx, limit)
}

// Discover scans the configured library roots for project directories.
func (m *Manager) Discover() []registry.Entry {
	return registry.Discover(m.cfg.Paths.LibraryRoots)
}

// Apps lists the configured applications with availability.
func (m *Manager) Apps() []dcc.App {
	return m.catalog.Apps()
}

// LaunchApp starts the named application, optionally opening the workfile of
// entityKey's version. A false return means the launch was skipped; the
// in-memory project is never affected.
func (m *Manager) LaunchApp(appName, entityKey, taskName, version string) bool {
	return m.launcher.Launch(m.project, appName, entityKey, taskName, version)
}

// Scan reconciles the loaded project with its directory tree, adding
// entities and versions found on disk, and saves when anything changed.
func (m *Manager) Scan(ctx context.Context) (scan.Report, error) {
	if m.project == nil {
		return scan.Report{}, ErrNoProject
	}
	report := m.scanner.Apply(m.project)
	if report.Empty() {
		return report, nil
	}
	hierarchy.Normalize(m.project, m.logger)
	if err := m.SaveProject(ctx); err != nil {
		return report, err
	}
	m.logger.Info("filesystem scan completed",
		logging.String(logging.FieldProject, m.project.Name),
		logging.Int("records", report.Total()))
	return report, nil
}

func (m *Manager) attach(p *project.Project) {
	m.project = p
	m.engine = versions.NewEngine(p, m.logger)
}

func (m *Manager) touchRegistry(ctx context.Context) {
	if m.registry == nil || m.project == nil {
		return
	}
	if err := m.registry.Touch(ctx, m.project.Name, m.project.Path); err != nil {
		m.logger.Warn("registry update failed",
			logging.String(logging.FieldProject, m.project.Name),
			logging.Error(err))
	}
}
