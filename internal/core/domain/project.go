package domain

// PreloadRequest declares a group of preloaded artifacts a module needs.
type PreloadRequest struct {
	// Names are the artifact base names.
	Names []string
	// Dir overrides the base directory, relative to the root directory.
	Dir string
	// Subdir is an optional subdirectory of the base directory.
	Subdir string
	// SDK selects the SDK root as base directory.
	SDK bool
	// Core selects the SDK core subdirectory.
	Core bool
}

// LinkMode selects how a link declaration walks the module tree.
type LinkMode string

const (
	// LinkLocal links only inside the declaring module.
	LinkLocal LinkMode = "local"
	// LinkRecursive repeats the link inside every descendant, each module using its own tasks.
	LinkRecursive LinkMode = "recursive"
	// LinkDescendants anchors one task and links it to the target task of every descendant.
	LinkDescendants LinkMode = "descendants"
)

// LinkRequest declares a "From depends on To if present" edge.
type LinkRequest struct {
	From string
	To   string
	Mode LinkMode
}

// Declarations are the configuration-time requests of a single module.
type Declarations struct {
	Dependencies []string
	Toolchain    []string
	Preloaded    []PreloadRequest
	Links        []LinkRequest
}

// Project bundles the module tree with the declarations of each module.
type Project struct {
	Tree         *ModuleTree
	Declarations map[ModuleID]Declarations
}

// Settings configure a configuration pass.
type Settings struct {
	Layout      Layout
	CatalogPath string
	LockPath    string
	Toolchain   Toolchain
}
