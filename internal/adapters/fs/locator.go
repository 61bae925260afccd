// Package fs provides file system adapters for locating and fingerprinting preloaded artifacts.
package fs

import (
	"cmp"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/buildsrc/internal/core/domain"
	"go.trai.ch/buildsrc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactLocator = (*Locator)(nil)

// Locator finds preloaded artifacts by name in a directory, without consulting any repository.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate lists baseDir (or baseDir/subdir) non-recursively and picks one entry per base name.
// It fails if the directory is missing or if any base name has no matching entry.
func (l *Locator) Locate(baseNames []string, baseDir, subdir string) (domain.ArtifactSet, error) {
	dir := baseDir
	if subdir != "" {
		dir = filepath.Join(baseDir, subdir)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return domain.ArtifactSet{}, zerr.With(zerr.Wrap(domain.ErrMissingDirectory, ""), "dir", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return domain.ArtifactSet{}, zerr.With(errors.Join(domain.ErrArtifactListFailed, err), "dir", dir)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}

	picked := assignArtifacts(baseNames, names)

	var (
		found   []string
		missing []string
	)
	for i, base := range baseNames {
		if picked[i] == "" {
			missing = append(missing, base)
			continue
		}
		found = append(found, picked[i])
	}

	if len(missing) > 0 || len(found) < len(baseNames) {
		err := zerr.With(zerr.Wrap(domain.ErrMissingArtifacts, ""), "requested", strings.Join(baseNames, ", "))
		err = zerr.With(err, "dir", dir)
		err = zerr.With(err, "found", strings.Join(found, ", "))
		return domain.ArtifactSet{}, zerr.With(err, "missing", strings.Join(missing, ", "))
	}

	paths := make([]string, 0, len(found))
	for _, name := range found {
		p, err := canonicalPath(filepath.Join(dir, name))
		if err != nil {
			return domain.ArtifactSet{}, err
		}
		paths = append(paths, p)
	}

	return domain.ArtifactSet{
		Dir:       dir,
		Requested: slices.Clone(baseNames),
		Paths:     paths,
	}, nil
}

// assignArtifacts picks a distinct file for each base name, longer names first so that
// "foo" cannot claim the only "foo-bar" entry. Unmatched names get "".
func assignArtifacts(baseNames, fileNames []string) []string {
	order := make([]int, len(baseNames))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(len(baseNames[b]), len(baseNames[a]))
	})

	available := slices.Clone(fileNames)
	picked := make([]string, len(baseNames))
	for _, i := range order {
		name, ok := domain.SelectArtifact(baseNames[i], available)
		if !ok {
			continue
		}
		picked[i] = name
		available = slices.DeleteFunc(available, func(n string) bool { return n == name })
	}
	return picked
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to get absolute path"), "path", path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve symlinks"), "path", abs)
	}
	return resolved, nil
}
