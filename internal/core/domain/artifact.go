package domain

import (
	"slices"
	"strings"
)

// ArchiveExtension is the package-archive suffix tolerated when matching artifact names.
const ArchiveExtension = ".jar"

// MatchesArtifact reports whether fileName is a (possibly versioned) artifact named baseName.
// It accepts an exact match, the name with a trailing ".jar" removed, or a "baseName-" prefix
// such as "foo-1.2.3.jar" for "foo". Matching is case-sensitive.
func MatchesArtifact(fileName, baseName string) bool {
	_, ok := artifactRank(fileName, baseName)
	return ok
}

// artifactRank orders the ways a file can match: exact, archive, then versioned.
func artifactRank(fileName, baseName string) (int, bool) {
	switch {
	case fileName == baseName:
		return 0, true
	case strings.TrimSuffix(fileName, ArchiveExtension) == baseName:
		return 1, true
	case strings.HasPrefix(fileName, baseName+"-"):
		return 2, true
	default:
		return 0, false
	}
}

// SelectArtifact picks the file among fileNames that best matches baseName.
// An exact name wins over "<base>.jar", which wins over versioned names; among
// versioned names the shortest wins, so "foo-1.0.jar" beats "foo-1.0-sources.jar".
func SelectArtifact(baseName string, fileNames []string) (string, bool) {
	best, bestRank, found := "", 0, false
	for _, name := range fileNames {
		rank, ok := artifactRank(name, baseName)
		if !ok {
			continue
		}
		if !found || rank < bestRank ||
			(rank == bestRank && (len(name) < len(best) || (len(name) == len(best) && name < best))) {
			best, bestRank, found = name, rank, true
		}
	}
	return best, found
}

// ArtifactSet is the ordered result of locating preloaded artifacts.
type ArtifactSet struct {
	// Dir is the effective directory that was searched.
	Dir string
	// Requested holds the base names asked for.
	Requested []string
	// Paths holds canonical absolute paths of the matched files.
	Paths []string
}

// Len returns the number of resolved files.
func (s ArtifactSet) Len() int {
	return len(s.Paths)
}

// Files returns a copy of the resolved paths.
func (s ArtifactSet) Files() []string {
	return slices.Clone(s.Paths)
}

// UnmatchedNames returns the requested base names that none of fileNames match.
func UnmatchedNames(requested, fileNames []string) []string {
	var missing []string
	for _, base := range requested {
		if !slices.ContainsFunc(fileNames, func(name string) bool {
			return MatchesArtifact(name, base)
		}) {
			missing = append(missing, base)
		}
	}
	return missing
}

// ArtifactLock records the fingerprint of a module's artifact group from a previous pass.
type ArtifactLock struct {
	Key         string   `json:"key"`
	Fingerprint string   `json:"fingerprint"`
	Paths       []string `json:"paths,omitempty"`
}
