package domain

import "go.trai.ch/zerr"

// Coordinate identifies an external dependency by group, artifact and version.
// The zero value is not a valid coordinate; use NewCoordinate.
type Coordinate struct {
	group    string
	artifact string
	version  string
}

// NewCoordinate builds a Coordinate, rejecting empty fields.
func NewCoordinate(group, artifact, version string) (Coordinate, error) {
	if group == "" || artifact == "" || version == "" {
		err := zerr.With(zerr.Wrap(ErrInvalidCoordinate, ""), "group", group)
		err = zerr.With(err, "artifact", artifact)
		return Coordinate{}, zerr.With(err, "version", version)
	}
	return Coordinate{group: group, artifact: artifact, version: version}, nil
}

// Group returns the group id.
func (c Coordinate) Group() string { return c.group }

// Artifact returns the artifact id.
func (c Coordinate) Artifact() string { return c.artifact }

// Version returns the version string.
func (c Coordinate) Version() string { return c.version }

// String renders the coordinate in group:artifact:version form.
func (c Coordinate) String() string {
	return c.group + ":" + c.artifact + ":" + c.version
}

// MarshalText implements encoding.TextMarshaler.
func (c Coordinate) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Toolchain describes a family of artifacts versioned together by one catalog key,
// e.g. group "org.jetbrains.kotlin", prefix "kotlin-", key "kotlinVersion".
type Toolchain struct {
	Group          string
	ArtifactPrefix string
	VersionKey     string
}
