package hierarchy

import (
	"log/slog"

	"vogue/internal/logging"
	"vogue/internal/project"
)

// DefaultAssetType is assigned to assets materialized from dangling folder
// members, where no richer type information exists.
const DefaultAssetType = "Misc"

// Normalize repairs folder membership so that every asset and shot belongs to
// exactly one folder of its kind. It never fails and never touches versions
// or tasks; inconsistent input is healed in place.
//
// The operation is idempotent: a second pass over normalized state is a no-op.
func Normalize(p *project.Project, logger *slog.Logger) {
	logger = logging.NewComponentLogger(logger, "hierarchy")

	ensureMainFolders(p)
	dedupeMembers(p, logger)
	materializeMissing(p, logger)
	assignUnfoldered(p)
	deriveEntityOrder(p)
}

// ensureMainFolders guarantees the reserved Main folder exists for each kind.
func ensureMainFolders(p *project.Project) {
	for _, kind := range []project.Kind{project.KindAsset, project.KindShot} {
		if p.Folder(kind, project.MainFolder) == nil {
			p.Folders = append(p.Folders, project.Folder{
				Name: project.MainFolder,
				Kind: kind,
			})
		}
	}
}

// dedupeMembers removes members denoting the same entity, keeping the first
// occurrence. Repeats are dropped both within one folder and across folders
// of the same kind, since an entity may belong to at most one folder per
// kind. Shot members are compared by the composite key they resolve to, so
// same-named shots in different sequences are distinct entities, never
// duplicates.
func dedupeMembers(p *project.Project, logger *slog.Logger) {
	seen := map[project.Kind]map[string]string{
		project.KindAsset: {},
		project.KindShot:  {},
	}
	for i := range p.Folders {
		folder := &p.Folders[i]
		taken, tracked := seen[folder.Kind]
		kept := folder.Members[:0]
		for _, member := range folder.Members {
			if member == "" {
				continue
			}
			if !tracked {
				kept = append(kept, member)
				continue
			}
			key := member
			if folder.Kind == project.KindShot {
				key = shotMemberKey(p, folder, member)
			}
			if owner, dup := taken[key]; dup {
				if owner != folder.Name {
					logger.Warn("member claimed by multiple folders, keeping first",
						logging.String("member", member),
						logging.String("kind", string(folder.Kind)),
						logging.String("kept_in", owner),
						logging.String("dropped_from", folder.Name))
				}
				continue
			}
			taken[key] = folder.Name
			kept = append(kept, member)
		}
		folder.Members = kept
	}
}

// materializeMissing creates a minimal entity for every folder member that has
// no backing asset or shot. Fabricated shots take their sequence from the
// member key when composite, the folder's name otherwise; fabricated assets
// receive DefaultAssetType.
func materializeMissing(p *project.Project, logger *slog.Logger) {
	for i := range p.Folders {
		folder := &p.Folders[i]
		for _, member := range folder.Members {
			switch folder.Kind {
			case project.KindAsset:
				if p.Asset(member) != nil {
					continue
				}
				p.Assets = append(p.Assets, project.Asset{Name: member, Type: DefaultAssetType})
			case project.KindShot:
				if resolveShot(p, folder, member) != nil {
					continue
				}
				sequence, name, ok := project.SplitShotKey(member)
				if !ok {
					sequence, name = folder.Name, member
				}
				p.Shots = append(p.Shots, project.Shot{Sequence: sequence, Name: name})
			default:
				continue
			}
			logger.Warn("materialized entity for dangling folder member",
				logging.String("member", member),
				logging.String("kind", string(folder.Kind)),
				logging.String("folder", folder.Name))
		}
	}
}

// assignUnfoldered appends every entity absent from all folders to Main.
func assignUnfoldered(p *project.Project) {
	assetMembers, shotMembers := memberSets(p)

	for i := range p.Assets {
		if _, ok := assetMembers[p.Assets[i].Name]; !ok {
			main := p.Folder(project.KindAsset, project.MainFolder)
			main.Members = append(main.Members, p.Assets[i].Name)
		}
	}
	for i := range p.Shots {
		if _, ok := shotMembers[p.Shots[i].Key()]; !ok {
			main := p.Folder(project.KindShot, project.MainFolder)
			main.Members = append(main.Members, p.Shots[i].Key())
		}
	}
}

// deriveEntityOrder rebuilds the entity lists strictly from folder membership,
// making folders the source of truth for grouping and order.
func deriveEntityOrder(p *project.Project) {
	assets := make([]project.Asset, 0, len(p.Assets))
	shots := make([]project.Shot, 0, len(p.Shots))
	for i := range p.Folders {
		folder := &p.Folders[i]
		for _, member := range folder.Members {
			switch folder.Kind {
			case project.KindAsset:
				if asset := p.Asset(member); asset != nil {
					assets = append(assets, *asset)
				}
			case project.KindShot:
				if shot := resolveShot(p, folder, member); shot != nil {
					shots = append(shots, *shot)
				}
			}
		}
	}
	p.Assets = assets
	p.Shots = shots
}

func memberSets(p *project.Project) (assets, shots map[string]struct{}) {
	assets = make(map[string]struct{})
	shots = make(map[string]struct{})
	for i := range p.Folders {
		folder := &p.Folders[i]
		for _, member := range folder.Members {
			switch folder.Kind {
			case project.KindAsset:
				assets[member] = struct{}{}
			case project.KindShot:
				shots[shotMemberKey(p, folder, member)] = struct{}{}
			}
		}
	}
	return assets, shots
}

// shotMemberKey resolves a shot folder member to the composite key of the
// shot it denotes. Members may carry the full "sequence/name" key or a bare
// name; bare names prefer a shot in the folder's own sequence, then the
// first shot with that name. Unresolvable bare members key under the
// folder's name, matching the shot materializeMissing would fabricate.
func shotMemberKey(p *project.Project, folder *project.Folder, member string) string {
	if _, _, ok := project.SplitShotKey(member); ok {
		return member
	}
	if shot := resolveShot(p, folder, member); shot != nil {
		return shot.Key()
	}
	return folder.Name + "/" + member
}

// resolveShot finds the shot a folder member denotes, or nil.
func resolveShot(p *project.Project, folder *project.Folder, member string) *project.Shot {
	if sequence, name, ok := project.SplitShotKey(member); ok {
		return p.Shot(sequence, name)
	}
	if shot := p.Shot(folder.Name, member); shot != nil {
		return shot
	}
	return shotByName(p, member)
}

// shotByName finds a shot by bare name, first occurrence wins.
func shotByName(p *project.Project, name string) *project.Shot {
	for i := range p.Shots {
		if p.Shots[i].Name == name {
			return &p.Shots[i]
		}
	}
	return nil
}
