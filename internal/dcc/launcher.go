package dcc

import (
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	"vogue/internal/logging"
	"vogue/internal/project"
)

// startProcess spawns a detached process. Package-level so tests can override.
var startProcess = startDetached

// Launcher starts external editing applications, fire-and-forget. It reports
// only whether the spawn succeeded; the spawned process is never supervised.
type Launcher struct {
	catalog *Catalog
	logger  *slog.Logger
}

// NewLauncher builds a launcher over the given catalog.
func NewLauncher(catalog *Catalog, logger *slog.Logger) *Launcher {
	return &Launcher{
		catalog: catalog,
		logger:  logging.NewComponentLogger(logger, "dcc"),
	}
}

// Launch starts appName, optionally pointed at the workfile of the given
// entity/task/version triple. Every failure is soft: an unknown or missing
// application, a missing workfile, or a spawn error yields false, never an
// error, so callers keep their in-memory state.
func (l *Launcher) Launch(p *project.Project, appName, entityKey, taskName, version string) bool {
	app, ok := l.catalog.Get(appName)
	if !ok || !app.Available {
		l.logger.Warn("application not available",
			logging.String("app", appName))
		return false
	}

	args := append([]string(nil), app.Args...)
	if workfile := l.resolveWorkfile(p, appName, entityKey, taskName, version); workfile != "" {
		args = append(args, workfile)
	}

	if err := startProcess(app.Executable, args); err != nil {
		l.logger.Warn("spawn failed",
			logging.String("app", appName),
			logging.String("executable", app.Executable),
			logging.Error(err))
		return false
	}

	l.logger.Info("launched application",
		logging.String("app", appName),
		logging.String(logging.FieldEntity, entityKey),
		logging.String(logging.FieldVersion, version))
	return true
}

// resolveWorkfile finds the file to open: the version's recorded workfile,
// falling back to its canonical path. A missing file degrades to a bare
// launch rather than failing.
func (l *Launcher) resolveWorkfile(p *project.Project, appName, entityKey, taskName, version string) string {
	if p == nil || entityKey == "" || version == "" {
		return ""
	}
	list, err := p.Versions(entityKey)
	if err != nil {
		l.logger.Warn("entity not found for launch",
			logging.String(logging.FieldEntity, entityKey),
			logging.Error(err))
		return ""
	}
	for _, v := range list {
		if v.Version != version {
			continue
		}
		if taskName != "" && v.TaskName != "" && v.TaskName != taskName {
			continue
		}
		if v.AppName != "" && v.AppName != appName {
			continue
		}
		path := v.WorkfilePath
		if path == "" {
			path = v.Path
		}
		if path == "" {
			return ""
		}
		if _, err := os.Stat(path); err != nil {
			l.logger.Warn("workfile missing, launching bare application",
				logging.String(logging.FieldEntity, entityKey),
				logging.String(logging.FieldVersion, version),
				logging.String("workfile", path))
			return ""
		}
		return path
	}
	return ""
}

// startDetached starts the executable in its own session so it outlives the
// caller. The child is released immediately; no exit status is collected.
func startDetached(executable string, args []string) error {
	cmd := exec.Command(executable, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
