package versions

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"vogue/internal/fileutil"
	"vogue/internal/logging"
	"vogue/internal/project"
)

// DefaultExtension is used for canonical version files when no application
// extension is known.
const DefaultExtension = ".ma"

// scenesDir is the project subtree holding canonical version files.
const scenesDir = "06_Scenes"

// Engine allocates and records versions against one project.
type Engine struct {
	project *project.Project
	logger  *slog.Logger
	now     func() time.Time
}

// NewEngine binds an engine to a project.
func NewEngine(p *project.Project, logger *slog.Logger) *Engine {
	return &Engine{
		project: p,
		logger:  logging.NewComponentLogger(logger, "versions"),
		now:     time.Now,
	}
}

// SetClockForTests overrides the engine's clock and returns a restore func.
func (e *Engine) SetClockForTests(now func() time.Time) func() {
	previous := e.now
	e.now = now
	return func() { e.now = previous }
}

// Option adjusts version creation.
type Option func(*createParams)

type createParams struct {
	identifier string
	taskName   string
	appName    string
	status     string
	extension  string
	workfile   string
}

// WithIdentifier supplies an explicit identifier instead of auto-increment.
func WithIdentifier(id string) Option {
	return func(p *createParams) { p.identifier = id }
}

// WithTask associates the version with a task by name.
func WithTask(name string) Option {
	return func(p *createParams) { p.taskName = name }
}

// WithApp records the authoring application.
func WithApp(name string) Option {
	return func(p *createParams) { p.appName = name }
}

// WithStatus overrides the initial status (default WIP).
func WithStatus(status string) Option {
	return func(p *createParams) { p.status = status }
}

// WithExtension overrides the canonical file extension.
func WithExtension(ext string) Option {
	return func(p *createParams) { p.extension = ext }
}

// WithWorkfile records the original workfile path alongside the canonical one.
func WithWorkfile(path string) Option {
	return func(p *createParams) { p.workfile = path }
}

// CreatePlaceholder registers a version without a source file. An empty file
// is touched at the canonical path so callers have a real path to open later;
// an unwritable path degrades to a pathless record rather than failing.
func (e *Engine) CreatePlaceholder(entityKey, user, comment string, opts ...Option) (project.Version, error) {
	params := applyOptions(opts)

	entity, err := e.project.Entity(entityKey)
	if err != nil {
		return project.Version{}, err
	}
	identifier, err := e.resolveIdentifier(entityKey, params.identifier)
	if err != nil {
		return project.Version{}, err
	}

	canonical := CanonicalPath(e.project.Path, entity, identifier, params.ext())
	if err := touchFile(canonical); err != nil {
		e.logger.Warn("canonical path not writable, registering pathless version",
			logging.String(logging.FieldEntity, entityKey),
			logging.String(logging.FieldVersion, identifier),
			logging.Error(err))
		canonical = ""
	}

	version := project.Version{
		Version:      identifier,
		User:         user,
		Comment:      comment,
		Date:         e.now().UTC(),
		Path:         canonical,
		AppName:      params.appName,
		WorkfilePath: params.workfile,
		Status:       params.statusOrDefault(),
		TaskName:     params.taskName,
	}
	if err := e.project.AppendVersion(entityKey, version); err != nil {
		return project.Version{}, err
	}

	e.logger.Info("created placeholder version",
		logging.String(logging.FieldEntity, entityKey),
		logging.String(logging.FieldVersion, identifier),
		logging.String("user", user))
	return version, nil
}

// CreateFromFile registers a version backed by sourcePath, copying it into
// the canonical location. On copy failure the appended record is rolled back
// so no orphan metadata survives.
func (e *Engine) CreateFromFile(entityKey, appName, taskName, user, comment, sourcePath string, opts ...Option) (project.Version, error) {
	params := applyOptions(opts)
	if params.appName == "" {
		params.appName = appName
	}
	if params.taskName == "" {
		params.taskName = taskName
	}
	if params.extension == "" {
		if ext := filepath.Ext(sourcePath); ext != "" {
			params.extension = ext
		}
	}

	entity, err := e.project.Entity(entityKey)
	if err != nil {
		return project.Version{}, err
	}
	if _, err := os.Stat(sourcePath); err != nil {
		return project.Version{}, fmt.Errorf("%w: %s", ErrSourceFileMissing, sourcePath)
	}
	identifier, err := e.resolveIdentifier(entityKey, params.identifier)
	if err != nil {
		return project.Version{}, err
	}

	canonical := CanonicalPath(e.project.Path, entity, identifier, params.ext())
	version := project.Version{
		Version:      identifier,
		User:         user,
		Comment:      comment,
		Date:         e.now().UTC(),
		Path:         canonical,
		AppName:      params.appName,
		WorkfilePath: params.workfileOr(sourcePath),
		Status:       params.statusOrDefault(),
		TaskName:     params.taskName,
	}
	if err := e.project.AppendVersion(entityKey, version); err != nil {
		return project.Version{}, err
	}

	if err := fileutil.LinkOrCopy(sourcePath, canonical); err != nil {
		if rb := e.project.RemoveVersion(entityKey, identifier); rb != nil {
			e.logger.Error("rollback after failed copy",
				logging.String(logging.FieldEntity, entityKey),
				logging.String(logging.FieldVersion, identifier),
				logging.Error(rb))
		}
		return project.Version{}, fmt.Errorf("%w: %s: %v", ErrCopyFailed, canonical, err)
	}

	e.logger.Info("created version from file",
		logging.String(logging.FieldEntity, entityKey),
		logging.String(logging.FieldVersion, identifier),
		logging.String("source", sourcePath))
	return version, nil
}

// List returns the entity's versions in creation order, optionally filtered
// to those associated with taskName. The returned slice is a copy; repeated
// calls are side-effect free.
func (e *Engine) List(entityKey, taskName string) ([]project.Version, error) {
	all, err := e.project.Versions(entityKey)
	if err != nil {
		return nil, err
	}
	out := make([]project.Version, 0, len(all))
	for _, v := range all {
		if taskName != "" && v.TaskName != taskName {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// resolveIdentifier validates an explicit identifier or allocates the next
// number scoped to the entity.
func (e *Engine) resolveIdentifier(entityKey, explicit string) (string, error) {
	existing, err := e.project.Versions(entityKey)
	if err != nil {
		return "", err
	}
	if explicit == "" {
		ids := make([]string, len(existing))
		for i, v := range existing {
			ids[i] = v.Version
		}
		return NextNumber(ids), nil
	}
	if err := ValidateIdentifier(explicit); err != nil {
		return "", err
	}
	for _, v := range existing {
		if v.Version == explicit {
			return "", fmt.Errorf("%w: %s on %s", ErrDuplicateVersion, explicit, entityKey)
		}
	}
	return explicit, nil
}

// CanonicalPath derives the deterministic on-disk location for a version file
// from the entity identity and version identifier.
func CanonicalPath(root string, entity project.Entity, identifier, ext string) string {
	file := entity.Name + "_" + identifier + ext
	if entity.Kind == project.KindShot {
		return filepath.Join(root, scenesDir, "Shots", entity.Sequence, entity.Name, file)
	}
	assetType := entity.Type
	if assetType == "" {
		assetType = "Misc"
	}
	return filepath.Join(root, scenesDir, "Assets", assetType, entity.Name, file)
}

func applyOptions(opts []Option) createParams {
	var params createParams
	for _, opt := range opts {
		opt(&params)
	}
	return params
}

func (p createParams) ext() string {
	if p.extension != "" {
		return p.extension
	}
	return DefaultExtension
}

func (p createParams) statusOrDefault() string {
	if p.status != "" {
		return p.status
	}
	return project.StatusWIP
}

func (p createParams) workfileOr(fallback string) string {
	if p.workfile != "" {
		return p.workfile
	}
	return fallback
}

func touchFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return file.Close()
}
