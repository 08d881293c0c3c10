package pipeline

import (
	"os"
	"path/filepath"
)

// layoutDirs is the standard on-disk tree created for every project.
var layoutDirs = []string{
	PipelineDir,
	PipelineDir + "/templates",
	"01_Assets/Characters",
	"01_Assets/Props",
	"01_Assets/Environments",
	"02_Shots",
	"03_Textures",
	"04_Designs",
	"05_Publish",
	"06_Scenes/Assets/Characters",
	"06_Scenes/Assets/Props",
	"06_Scenes/Assets/Environments",
	"06_Scenes/Shots",
	"07_Renders",
}

// EnsureLayout creates the standard project folder tree under root. Existing
// directories are left alone, so it is safe to call on every save.
func EnsureLayout(root string) error {
	for _, dir := range layoutDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return err
		}
	}
	return nil
}
