// Package resolver turns short-hand dependency references into full coordinates.
package resolver

import (
	"slices"
	"strings"

	"go.trai.ch/buildsrc/internal/core/domain"
	"go.trai.ch/buildsrc/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver resolves references against a version catalog.
type Resolver struct {
	versions ports.VersionLookup
}

// New creates a Resolver reading versions from the given lookup.
func New(versions ports.VersionLookup) *Resolver {
	return &Resolver{versions: versions}
}

// Resolve parses ref, which has the form "X", "G:A" or "G:A:V".
//
// One segment uses X as both group and artifact; one and two segments look up
// "versions.<artifact>" in the catalog. Three segments are returned verbatim.
func (r *Resolver) Resolve(ref string) (domain.Coordinate, error) {
	if ref == "" {
		return domain.Coordinate{}, invalid(ref, 0)
	}
	parts := strings.Split(ref, ":")
	if len(parts) > 3 || slices.Contains(parts, "") {
		return domain.Coordinate{}, invalid(ref, len(parts))
	}

	switch len(parts) {
	case 1:
		return r.ResolveArtifact(ref, ref)
	case 2:
		return r.ResolveArtifact(parts[0], parts[1])
	default:
		c, err := domain.NewCoordinate(parts[0], parts[1], parts[2])
		if err != nil {
			return domain.Coordinate{}, zerr.With(err, "coordinate", ref)
		}
		return c, nil
	}
}

// ResolveArtifact builds the coordinate of artifact in group, taking the version from the catalog.
func (r *Resolver) ResolveArtifact(group, artifact string) (domain.Coordinate, error) {
	version, err := r.versions.Lookup(domain.VersionKey(artifact))
	if err != nil {
		return domain.Coordinate{}, zerr.With(err, "artifact", artifact)
	}
	return domain.NewCoordinate(group, artifact, version)
}

// ResolveToolchain builds the coordinate of the toolchain artifact named base,
// e.g. "stdlib" becomes "org.jetbrains.kotlin:kotlin-stdlib:<kotlinVersion>".
func (r *Resolver) ResolveToolchain(tc domain.Toolchain, base string) (domain.Coordinate, error) {
	version, err := r.versions.Lookup(tc.VersionKey)
	if err != nil {
		return domain.Coordinate{}, zerr.With(err, "toolchain_artifact", base)
	}
	return domain.NewCoordinate(tc.Group, tc.ArtifactPrefix+base, version)
}

func invalid(ref string, segments int) error {
	err := zerr.With(zerr.Wrap(domain.ErrInvalidCoordinate, ""), "coordinate", ref)
	return zerr.With(err, "segments", segments)
}
