package config

import (
	"errors"
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/buildsrc/internal/core/domain"
	"go.trai.ch/buildsrc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CatalogLoader = (*CatalogLoader)(nil)

// CatalogLoader reads the version catalog from a TOML file.
//
// Nested tables flatten into dotted keys, so
//
//	kotlinVersion = "1.1.50"
//	[versions]
//	junit = "4.12"
//
// yields the keys "kotlinVersion" and "versions.junit".
type CatalogLoader struct{}

// NewCatalogLoader creates a new CatalogLoader.
func NewCatalogLoader() *CatalogLoader {
	return &CatalogLoader{}
}

// Load parses the catalog at path into an immutable snapshot.
func (l *CatalogLoader) Load(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", path)
	}

	entries := make(map[string]string)
	if err := flatten("", raw, entries); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return domain.NewCatalog(entries), nil
}

func flatten(prefix string, table map[string]any, out map[string]string) error {
	for k, v := range table {
		key := prefix + k
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			if err := flatten(key+".", val, out); err != nil {
				return err
			}
		default:
			return zerr.With(zerr.Wrap(domain.ErrInvalidCatalogValue, ""), "key", key)
		}
	}
	return nil
}
