package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidCoordinate is returned when a dependency reference cannot be turned into a coordinate.
	ErrInvalidCoordinate = zerr.New("invalid dependency coordinate")

	// ErrUnknownVersion is returned when the version catalog has no entry for a key.
	ErrUnknownVersion = zerr.New("unknown version catalog key")

	// ErrMissingDirectory is returned when an artifact directory is absent or not a directory.
	ErrMissingDirectory = zerr.New("invalid artifact directory")

	// ErrMissingArtifacts is returned when fewer artifacts are found than were requested.
	ErrMissingArtifacts = zerr.New("not all requested artifacts found")

	// ErrArtifactListFailed is returned when an artifact directory cannot be listed.
	ErrArtifactListFailed = zerr.New("failed to list artifact directory")

	// ErrModuleNotFound is returned when a module id or path does not exist in the tree.
	ErrModuleNotFound = zerr.New("module not found")

	// ErrDuplicateModule is returned when a module is added twice under the same parent.
	ErrDuplicateModule = zerr.New("module already exists")

	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrTaskNotFound is returned when a requested task is not found in a module.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrConfigReadFailed is returned when a configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidCatalogValue is returned when a catalog entry is not a string.
	ErrInvalidCatalogValue = zerr.New("catalog value must be a string")

	// ErrStoreReadFailed is returned when the lock store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read lock store")

	// ErrStoreWriteFailed is returned when the lock store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write lock store")

	// ErrConfigurationFailed is returned when the configuration pass aborts.
	ErrConfigurationFailed = zerr.New("configuration failed")
)
