// Package domain contains the core models of the configuration layer:
// the version catalog, dependency coordinates, preloaded artifacts and the module tree.
package domain

import (
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// VersionKeyPrefix namespaces artifact versions inside the catalog.
const VersionKeyPrefix = "versions."

// Catalog is a read-only snapshot of the version catalog.
// It is built once at startup and shared by pointer with every module.
type Catalog struct {
	entries map[string]string
}

// NewCatalog creates a Catalog from the given entries.
// The map is copied, so later changes by the caller are not observed.
func NewCatalog(entries map[string]string) *Catalog {
	return &Catalog{entries: maps.Clone(entries)}
}

// Lookup returns the value stored under key.
// A missing key is an error, never a default.
func (c *Catalog) Lookup(key string) (string, error) {
	if c != nil {
		if v, ok := c.entries[key]; ok {
			return v, nil
		}
	}
	return "", zerr.With(zerr.Wrap(ErrUnknownVersion, ""), "key", key)
}

// Version returns the version registered for name under the "versions." namespace.
func (c *Catalog) Version(name string) (string, error) {
	return c.Lookup(VersionKey(name))
}

// Keys returns all catalog keys in sorted order.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.entries))
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// VersionKey returns the catalog key holding the version of name.
func VersionKey(name string) string {
	return VersionKeyPrefix + name
}
