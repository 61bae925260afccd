package ports

import "go.trai.ch/buildsrc/internal/core/domain"

// ArtifactLocator finds preloaded artifacts on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type ArtifactLocator interface {
	// Locate matches baseNames against the files of baseDir, or baseDir/subdir when subdir is set.
	Locate(baseNames []string, baseDir, subdir string) (domain.ArtifactSet, error)
}
