package project

import (
	"fmt"
	"strings"
)

// Project is the root aggregate. Exactly one project is open at a time; the
// manager replaces it wholesale on load.
type Project struct {
	Name        string       `json:"name"`
	Path        string       `json:"path"`
	FPS         int          `json:"fps"`
	Resolution  [2]int       `json:"resolution"`
	Departments []Department `json:"departments"`
	Tasks       []Task       `json:"tasks"`
	Assets      []Asset      `json:"assets"`
	Shots       []Shot       `json:"shots"`
	Folders     []Folder     `json:"folders"`
}

// New builds a validated empty project.
func New(name, path string, fps int, resolution [2]int) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: project name must not be empty", ErrInvalid)
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: project path must not be empty", ErrInvalid)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, fps)
	}
	if resolution[0] <= 0 || resolution[1] <= 0 {
		return nil, fmt.Errorf("%w: resolution must be positive, got %v", ErrInvalid, resolution)
	}
	return &Project{
		Name:       name,
		Path:       path,
		FPS:        fps,
		Resolution: resolution,
	}, nil
}

// Asset returns the asset with the given name, or nil.
func (p *Project) Asset(name string) *Asset {
	for i := range p.Assets {
		if p.Assets[i].Name == name {
			return &p.Assets[i]
		}
	}
	return nil
}

// Shot returns the shot with the given sequence and name, or nil.
func (p *Project) Shot(sequence, name string) *Shot {
	for i := range p.Shots {
		if p.Shots[i].Sequence == sequence && p.Shots[i].Name == name {
			return &p.Shots[i]
		}
	}
	return nil
}

// Folder returns the folder of the given kind and name, or nil.
func (p *Project) Folder(kind Kind, name string) *Folder {
	for i := range p.Folders {
		if p.Folders[i].Kind == kind && p.Folders[i].Name == name {
			return &p.Folders[i]
		}
	}
	return nil
}

// Entity resolves an entity key to a read-only view. Asset keys are bare
// names; shot keys are "sequence/name".
func (p *Project) Entity(key string) (Entity, error) {
	if sequence, name, ok := SplitShotKey(key); ok {
		if shot := p.Shot(sequence, name); shot != nil {
			return Entity{
				Key:      key,
				Kind:     KindShot,
				Name:     shot.Name,
				Sequence: shot.Sequence,
				Path:     shot.Path,
			}, nil
		}
		return Entity{}, fmt.Errorf("%w: shot %q", ErrEntityNotFound, key)
	}
	if asset := p.Asset(key); asset != nil {
		return Entity{
			Key:  key,
			Kind: KindAsset,
			Name: asset.Name,
			Type: asset.Type,
			Path: asset.Path,
		}, nil
	}
	return Entity{}, fmt.Errorf("%w: asset %q", ErrEntityNotFound, key)
}

// Versions returns the entity's version list in creation order.
func (p *Project) Versions(key string) ([]Version, error) {
	list, err := p.versionsRef(key)
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// AppendVersion appends a version record to the entity's list.
func (p *Project) AppendVersion(key string, v Version) error {
	list, err := p.versionsRef(key)
	if err != nil {
		return err
	}
	*list = append(*list, v)
	return nil
}

// RemoveVersion deletes the version with the given identifier from the
// entity's list. Used to roll back a failed file-backed creation.
func (p *Project) RemoveVersion(key, identifier string) error {
	list, err := p.versionsRef(key)
	if err != nil {
		return err
	}
	for i := range *list {
		if (*list)[i].Version == identifier {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: version %s for %s", ErrEntityNotFound, identifier, key)
}

func (p *Project) versionsRef(key string) (*[]Version, error) {
	if sequence, name, ok := SplitShotKey(key); ok {
		if shot := p.Shot(sequence, name); shot != nil {
			return &shot.Versions, nil
		}
		return nil, fmt.Errorf("%w: shot %q", ErrEntityNotFound, key)
	}
	if asset := p.Asset(key); asset != nil {
		return &asset.Versions, nil
	}
	return nil, fmt.Errorf("%w: asset %q", ErrEntityNotFound, key)
}

// AddAsset appends a new asset. The name must be unique among assets.
func (p *Project) AddAsset(a Asset) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: asset name must not be empty", ErrInvalid)
	}
	if strings.TrimSpace(a.Type) == "" {
		return fmt.Errorf("%w: asset type must not be empty", ErrInvalid)
	}
	if p.Asset(a.Name) != nil {
		return fmt.Errorf("%w: asset %q", ErrDuplicateEntity, a.Name)
	}
	p.Assets = append(p.Assets, a)
	return nil
}

// AddShot appends a new shot. The sequence/name pair must be unique.
func (p *Project) AddShot(s Shot) error {
	if strings.TrimSpace(s.Sequence) == "" {
		return fmt.Errorf("%w: shot sequence must not be empty", ErrInvalid)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: shot name must not be empty", ErrInvalid)
	}
	if p.Shot(s.Sequence, s.Name) != nil {
		return fmt.Errorf("%w: shot %q", ErrDuplicateEntity, s.Key())
	}
	p.Shots = append(p.Shots, s)
	return nil
}

// AddFolder appends a new folder. The name must be unique within its kind.
func (p *Project) AddFolder(f Folder) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: folder name must not be empty", ErrInvalid)
	}
	if f.Kind != KindAsset && f.Kind != KindShot {
		return fmt.Errorf("%w: folder kind must be asset or shot, got %q", ErrInvalid, f.Kind)
	}
	if p.Folder(f.Kind, f.Name) != nil {
		return fmt.Errorf("%w: %s folder %q", ErrDuplicateEntity, f.Kind, f.Name)
	}
	p.Folders = append(p.Folders, f)
	return nil
}

// AddDepartment attaches a department to the project. Re-adding an existing
// name is a no-op; attachment to entities is by name reference only.
func (p *Project) AddDepartment(d Department) {
	for _, existing := range p.Departments {
		if existing.Name == d.Name {
			return
		}
	}
	p.Departments = append(p.Departments, d)
}

// AddTask records a task against its owning entity.
func (p *Project) AddTask(t Task) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: task name must not be empty", ErrInvalid)
	}
	if t.Status == "" {
		t.Status = StatusWIP
	}
	valid := false
	for _, status := range TaskStatuses() {
		if t.Status == status {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: task status %q", ErrInvalid, t.Status)
	}
	if t.EntityKey != "" {
		if _, err := p.Entity(t.EntityKey); err != nil {
			return err
		}
	}
	p.Tasks = append(p.Tasks, t)
	return nil
}

// RemoveTasksFor drops every task owned by the given entity key. A task
// exists only in the context of one entity.
func (p *Project) RemoveTasksFor(key string) {
	kept := p.Tasks[:0]
	for _, t := range p.Tasks {
		if t.EntityKey != key {
			kept = append(kept, t)
		}
	}
	p.Tasks = kept
}

// Info summarizes the project for display.
type Info struct {
	Name          string `json:"name"`
	Path          string `json:"path"`
	FPS           int    `json:"fps"`
	Resolution    [2]int `json:"resolution"`
	AssetCount    int    `json:"asset_count"`
	ShotCount     int    `json:"shot_count"`
	FolderCount   int    `json:"folder_count"`
	TaskCount     int    `json:"task_count"`
	TotalVersions int    `json:"total_versions"`
}

// Summary returns display-oriented counts for the project.
func (p *Project) Summary() Info {
	total := 0
	for i := range p.Assets {
		total += len(p.Assets[i].Versions)
	}
	for i := range p.Shots {
		total += len(p.Shots[i].Versions)
	}
	return Info{
		Name:          p.Name,
		Path:          p.Path,
		FPS:           p.FPS,
		Resolution:    p.Resolution,
		AssetCount:    len(p.Assets),
		ShotCount:     len(p.Shots),
		FolderCount:   len(p.Folders),
		TaskCount:     len(p.Tasks),
		TotalVersions: total,
	}
}
