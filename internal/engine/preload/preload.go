// Package preload maps preloaded artifact declarations onto directories of a layout.
package preload

import (
	"path/filepath"

	"go.trai.ch/buildsrc/internal/core/domain"
	"go.trai.ch/buildsrc/internal/core/ports"
)

// SDKLocator applies an ArtifactLocator to the SDK root of a layout.
type SDKLocator struct {
	locator ports.ArtifactLocator
	layout  domain.Layout
}

// NewSDKLocator creates an SDKLocator for the SDK root of layout.
func NewSDKLocator(locator ports.ArtifactLocator, layout domain.Layout) *SDKLocator {
	return &SDKLocator{locator: locator, layout: layout}
}

// Locate searches the SDK root's subdir, defaulting to "lib" when subdir is empty.
func (s *SDKLocator) Locate(baseNames []string, subdir string) (domain.ArtifactSet, error) {
	if subdir == "" {
		subdir = domain.SDKLibSubdir
	}
	return s.locator.Locate(baseNames, s.layout.SDKDir, subdir)
}

// LocateCore searches the SDK root's "core" subdirectory.
func (s *SDKLocator) LocateCore(baseNames []string) (domain.ArtifactSet, error) {
	return s.Locate(baseNames, domain.SDKCoreSubdir)
}

// Preloader resolves PreloadRequests against a layout.
type Preloader struct {
	locator ports.ArtifactLocator
	layout  domain.Layout
	sdk     *SDKLocator
}

// New creates a Preloader.
func New(locator ports.ArtifactLocator, layout domain.Layout) *Preloader {
	return &Preloader{
		locator: locator,
		layout:  layout,
		sdk:     NewSDKLocator(locator, layout),
	}
}

// Locate finds the artifacts of req.
// Core requests search the SDK core directory, SDK requests the SDK root (subdir "lib" by
// default). Other requests search req.Dir, relative to the root directory, or the
// dependencies directory when req.Dir is empty.
func (p *Preloader) Locate(req domain.PreloadRequest) (domain.ArtifactSet, error) {
	switch {
	case req.Core:
		return p.sdk.LocateCore(req.Names)
	case req.SDK:
		return p.sdk.Locate(req.Names, req.Subdir)
	default:
		return p.locator.Locate(req.Names, p.baseDir(req.Dir), req.Subdir)
	}
}

func (p *Preloader) baseDir(dir string) string {
	switch {
	case dir == "":
		return p.layout.DependenciesDir
	case filepath.IsAbs(dir):
		return dir
	default:
		return filepath.Join(p.layout.RootDir, dir)
	}
}
