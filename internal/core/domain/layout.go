package domain

import "path/filepath"

const (
	// ModuleFileName is the name of the per-module descriptor.
	ModuleFileName = "module.yaml"

	// CatalogFileName is the default version catalog file.
	CatalogFileName = "versions.toml"

	// SettingsFileName is the optional settings file in the root directory.
	SettingsFileName = "buildsrc.settings.yaml"

	// DependenciesDirName is the default directory of preloaded dependencies.
	DependenciesDirName = "dependencies"

	// SDKDirName is the default root of a vendored SDK.
	SDKDirName = "ideaSdk"

	// SDKLibSubdir is the default SDK subdirectory.
	SDKLibSubdir = "lib"

	// SDKCoreSubdir is the SDK core subdirectory.
	SDKCoreSubdir = "core"

	// StateDirName holds state written by the configuration pass.
	StateDirName = ".buildsrc"

	// LockFileName is the name of the artifact lock file.
	LockFileName = "artifacts.lock.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout tells the core where preloaded artifact directories live.
type Layout struct {
	RootDir         string
	DependenciesDir string
	SDKDir          string
}

// DefaultLayout returns the conventional layout under root.
func DefaultLayout(root string) Layout {
	return Layout{
		RootDir:         root,
		DependenciesDir: filepath.Join(root, DependenciesDirName),
		SDKDir:          filepath.Join(root, SDKDirName),
	}
}

// DefaultLockPath returns the default lock file path under root.
func DefaultLockPath(root string) string {
	return filepath.Join(root, StateDirName, LockFileName)
}
