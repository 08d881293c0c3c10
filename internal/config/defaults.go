package config

const (
	defaultLogDir       = "~/.local/share/vogue/logs"
	defaultRegistryPath = "~/.local/share/vogue/registry.db"
	defaultLibraryRoot  = "~/VogueProjects"
	defaultLogFormat    = "text"
	defaultLogLevel     = "info"
	defaultFPS          = 24
)

func defaultResolution() []int {
	return []int{1920, 1080}
}

func defaultDepartments() []string {
	return []string{"Model", "Rig", "Anim", "LookDev", "FX", "Lighting", "Comp"}
}

func defaultTaskStatuses() []string {
	return []string{"WIP", "Review", "Final", "Blocked", "Complete"}
}

// defaultApps lists well-known DCC applications probed when no [dcc] section
// is configured. Executables are resolved through PATH at catalog build time.
func defaultApps() map[string]App {
	return map[string]App{
		"maya": {
			DisplayName: "Autodesk Maya",
			Executable:  "maya",
			Extensions:  []string{".ma", ".mb"},
		},
		"blender": {
			DisplayName: "Blender",
			Executable:  "blender",
			Extensions:  []string{".blend"},
		},
		"houdini": {
			DisplayName: "Houdini",
			Executable:  "houdini",
			Extensions:  []string{".hip", ".hipnc"},
		},
		"nuke": {
			DisplayName: "Nuke",
			Executable:  "nuke",
			Extensions:  []string{".nk"},
		},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryRoots: []string{defaultLibraryRoot},
			LogDir:       defaultLogDir,
			RegistryPath: defaultRegistryPath,
		},
		Defaults: Defaults{
			FPS:          defaultFPS,
			Resolution:   defaultResolution(),
			Departments:  defaultDepartments(),
			TaskStatuses: defaultTaskStatuses(),
		},
		Apps: defaultApps(),
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
