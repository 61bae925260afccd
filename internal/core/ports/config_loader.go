// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/buildsrc/internal/core/domain"

// ProjectLoader loads the module tree and its per-module declarations.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ProjectLoader interface {
	// Load reads the descriptor of the root module in rootDir and recursively its submodules.
	Load(rootDir string) (*domain.Project, error)
}

// CatalogLoader loads the version catalog.
type CatalogLoader interface {
	// Load reads the catalog file at path and returns an immutable snapshot.
	Load(path string) (*domain.Catalog, error)
}

// SettingsLoader resolves the settings of a configuration pass.
type SettingsLoader interface {
	// Load reads settings for the given root directory, applying defaults and overrides.
	Load(rootDir string) (domain.Settings, error)
}
