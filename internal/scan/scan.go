package scan

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"vogue/internal/logging"
	"vogue/internal/project"
	"vogue/internal/versions"
)

const (
	assetsDir = "01_Assets"
	shotsDir  = "02_Shots"
	scenesDir = "06_Scenes"
	metaFile  = "meta.json"
)

// Scanner discovers entities and version files that exist on disk but are
// missing from a project document. It never removes anything.
type Scanner struct {
	logger *slog.Logger
	titler cases.Caser
}

func New(logger *slog.Logger) *Scanner {
	return &Scanner{
		logger: logging.NewComponentLogger(logger, "scan"),
		titler: cases.Title(language.English),
	}
}

// Report lists what a scan added to the project.
type Report struct {
	AssetsAdded   []string            `json:"assets_added"`
	ShotsAdded    []string            `json:"shots_added"`
	VersionsAdded map[string][]string `json:"versions_added"`
}

// Empty reports whether the scan found nothing new.
func (r Report) Empty() bool {
	return len(r.AssetsAdded) == 0 && len(r.ShotsAdded) == 0 && len(r.VersionsAdded) == 0
}

// Total returns the number of records the scan added.
func (r Report) Total() int {
	n := len(r.AssetsAdded) + len(r.ShotsAdded)
	for _, ids := range r.VersionsAdded {
		n += len(ids)
	}
	return n
}

// Apply scans the project's directory tree and appends every asset, shot, and
// version found on disk that the document does not already record. The caller
// is responsible for normalizing and saving afterwards.
func (s *Scanner) Apply(p *project.Project) Report {
	report := Report{VersionsAdded: map[string][]string{}}

	for _, a := range s.Assets(p.Path) {
		if p.Asset(a.Name) != nil {
			continue
		}
		if err := p.AddAsset(a); err != nil {
			s.logger.Warn("skipping scanned asset",
				logging.String(logging.FieldEntity, a.Name),
				logging.Error(err))
			continue
		}
		report.AssetsAdded = append(report.AssetsAdded, a.Name)
		s.logger.Info("found asset on disk",
			logging.String(logging.FieldEntity, a.Name),
			logging.String("type", a.Type))
	}

	for _, sh := range s.Shots(p.Path) {
		if p.Shot(sh.Sequence, sh.Name) != nil {
			continue
		}
		key := sh.Key()
		if err := p.AddShot(sh); err != nil {
			s.logger.Warn("skipping scanned shot",
				logging.String(logging.FieldEntity, key),
				logging.Error(err))
			continue
		}
		report.ShotsAdded = append(report.ShotsAdded, key)
		s.logger.Info("found shot on disk",
			logging.String(logging.FieldEntity, key))
	}

	for key, found := range s.Versions(p.Path) {
		existing, err := p.Versions(key)
		if err != nil {
			s.logger.Warn("version files for unknown entity",
				logging.String(logging.FieldEntity, key),
				logging.Error(err))
			continue
		}
		known := make(map[string]bool, len(existing))
		for _, v := range existing {
			known[v.Version] = true
		}
		for _, v := range found {
			if known[v.Version] {
				continue
			}
			if err := p.AppendVersion(key, v); err != nil {
				s.logger.Warn("skipping scanned version",
					logging.String(logging.FieldEntity, key),
					logging.String(logging.FieldVersion, v.Version),
					logging.Error(err))
				continue
			}
			known[v.Version] = true
			report.VersionsAdded[key] = append(report.VersionsAdded[key], v.Version)
			s.logger.Info("found version on disk",
				logging.String(logging.FieldEntity, key),
				logging.String(logging.FieldVersion, v.Version))
		}
	}
	if len(report.VersionsAdded) == 0 {
		report.VersionsAdded = nil
	}
	return report
}

// Assets walks <root>/01_Assets/<type>/<name> and returns one asset per
// directory. A meta.json inside the asset directory is loaded when readable;
// unreadable or malformed metadata is dropped, not fatal.
func (s *Scanner) Assets(root string) []project.Asset {
	var found []project.Asset
	base := filepath.Join(root, assetsDir)
	for _, typeDir := range s.readDirs(base) {
		assetType := s.normalizeType(typeDir)
		for _, name := range s.readDirs(filepath.Join(base, typeDir)) {
			path := filepath.Join(base, typeDir, name)
			found = append(found, project.Asset{
				Name: name,
				Type: assetType,
				Path: path,
				Meta: s.readMeta(filepath.Join(path, metaFile)),
			})
		}
	}
	return found
}

// Shots walks <root>/02_Shots/<sequence>/<name> and returns one shot per
// directory.
func (s *Scanner) Shots(root string) []project.Shot {
	var found []project.Shot
	base := filepath.Join(root, shotsDir)
	for _, seqDir := range s.readDirs(base) {
		for _, name := range s.readDirs(filepath.Join(base, seqDir)) {
			path := filepath.Join(base, seqDir, name)
			found = append(found, project.Shot{
				Sequence: seqDir,
				Name:     name,
				Path:     path,
				Meta:     s.readMeta(filepath.Join(path, metaFile)),
			})
		}
	}
	return found
}

// Versions walks the canonical scene tree under <root>/06_Scenes and returns
// version records keyed by entity. Only files named <entity>_<vNNN>.<ext>
// count; anything else in the directory is ignored. User and comment cannot
// be recovered from the filesystem, so user is recorded as "unknown".
func (s *Scanner) Versions(root string) map[string][]project.Version {
	found := map[string][]project.Version{}

	assetBase := filepath.Join(root, scenesDir, "Assets")
	for _, typeDir := range s.readDirs(assetBase) {
		for _, name := range s.readDirs(filepath.Join(assetBase, typeDir)) {
			dir := filepath.Join(assetBase, typeDir, name)
			if list := s.versionFiles(dir, name); len(list) > 0 {
				found[name] = append(found[name], list...)
			}
		}
	}

	shotBase := filepath.Join(root, scenesDir, "Shots")
	for _, seqDir := range s.readDirs(shotBase) {
		for _, name := range s.readDirs(filepath.Join(shotBase, seqDir)) {
			dir := filepath.Join(shotBase, seqDir, name)
			if list := s.versionFiles(dir, name); len(list) > 0 {
				key := seqDir + "/" + name
				found[key] = append(found[key], list...)
			}
		}
	}
	return found
}

func (s *Scanner) versionFiles(dir, entityName string) []project.Version {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	prefix := entityName + "_"
	var list []project.Version
	for _, entry := range entries {
		if entry.IsDir() || hidden(entry.Name()) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !strings.HasPrefix(stem, prefix) {
			continue
		}
		identifier := strings.TrimPrefix(stem, prefix)
		if versions.ValidateIdentifier(identifier) != nil {
			continue
		}
		v := project.Version{
			Version: identifier,
			User:    "unknown",
			Path:    filepath.Join(dir, entry.Name()),
		}
		if info, err := entry.Info(); err == nil {
			v.Date = info.ModTime().UTC()
		}
		list = append(list, v)
	}
	return list
}

// normalizeType merges ad-hoc all-lowercase type directories with their
// configured spelling ("characters" becomes "Characters"). Mixed-case names
// pass through untouched so deliberate spellings like LookDev survive.
func (s *Scanner) normalizeType(name string) string {
	if name != strings.ToLower(name) {
		return name
	}
	return s.titler.String(name)
}

// readDirs lists the non-hidden subdirectories of dir, in directory order.
// A missing or unreadable dir yields nil.
func (s *Scanner) readDirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || hidden(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names
}

func (s *Scanner) readMeta(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		s.logger.Warn("ignoring malformed metadata file",
			logging.String("path", path),
			logging.Error(err))
		return nil
	}
	return meta
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
