package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildsrc/internal/adapters/config"
	"go.trai.ch/buildsrc/internal/core/domain"
	"go.trai.ch/buildsrc/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeModule(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ModuleFileName), []byte(content), 0o600))
}

func TestLoad_ModuleTree(t *testing.T) {
	// Structure:
	// root/           (tasks: assemble, dist)
	//   a/            (tasks: assemble)
	//     a1/         (tasks: assemble, compile)
	//   b/
	root := t.TempDir()
	writeModule(t, root, `
name: root
modules: [a, b]
tasks:
  assemble: {}
  dist:
    dependsOn: [assemble]
dependencies: ["junit", "com.google.guava:guava"]
links:
  - from: dist
    to: compile
    mode: descendants
`)
	writeModule(t, filepath.Join(root, "a"), `
modules: [a1]
tasks:
  assemble: {}
`)
	writeModule(t, filepath.Join(root, "a", "a1"), `
tasks:
  assemble: {}
  compile: {}
preloaded:
  - names: [openapi, util]
    sdk: true
  - names: [protobuf]
    subdir: proto
`)
	writeModule(t, filepath.Join(root, "b"), `name: beta`)

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("loaded module descriptor", "path", gomock.Any()).Times(4)

	p, err := config.NewLoader(log).Load(root)
	require.NoError(t, err)

	tree := p.Tree
	assert.Equal(t, 4, tree.Len())
	assert.Equal(t, "root", tree.Root().Name)

	a1, err := tree.FindModule(":a:a1")
	require.NoError(t, err)
	_, ok := tree.Task(a1, "compile")
	assert.True(t, ok)

	_, err = tree.FindModule(":beta")
	require.NoError(t, err)

	dist, ok := tree.Task(domain.RootModule, "dist")
	require.True(t, ok)
	assert.Equal(t, []domain.TaskRef{{Module: domain.RootModule, Name: "assemble"}}, dist.Dependencies())

	rootDecl := p.Declarations[domain.RootModule]
	assert.Equal(t, []string{"junit", "com.google.guava:guava"}, rootDecl.Dependencies)
	assert.Equal(t, []domain.LinkRequest{{From: "dist", To: "compile", Mode: domain.LinkDescendants}}, rootDecl.Links)

	a1Decl := p.Declarations[a1]
	require.Len(t, a1Decl.Preloaded, 2)
	assert.True(t, a1Decl.Preloaded[0].SDK)
	assert.Equal(t, "proto", a1Decl.Preloaded[1].Subdir)
}

func TestLoad_MissingDependency(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, `
tasks:
  build:
    dependsOn: [missing]
`)

	_, err := config.NewLoader(nil).Load(root)
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T: %v", err, err)
	assert.Equal(t, "missing", zErr.Metadata()["missing_dependency"])
}

func TestLoad_MissingSubmoduleDescriptor(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, `modules: [ghost]`)

	_, err := config.NewLoader(nil).Load(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestLoad_RejectsEscapingModulePath(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, `modules: [".."]`)

	_, err := config.NewLoader(nil).Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module path must be a subdirectory")
}

func TestLoad_DuplicateModuleName(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, `modules: [x, y]`)
	writeModule(t, filepath.Join(root, "x"), `name: same`)
	writeModule(t, filepath.Join(root, "y"), `name: same`)

	_, err := config.NewLoader(nil).Load(root)
	assert.ErrorIs(t, err, domain.ErrDuplicateModule)
}

func TestLoad_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "tasks: [unclosed")

	_, err := config.NewLoader(nil).Load(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestLoad_UnknownLinkMode(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, `
links:
  - from: a
    to: b
    mode: sideways
`)

	_, err := config.NewLoader(nil).Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown link mode")
}
