package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildsrc/cmd/buildsrc/commands"
	"go.trai.ch/buildsrc/internal/app"
	"go.trai.ch/buildsrc/internal/core/domain"
)

type mockApp struct {
	root      string
	refs      []string
	toolchain bool
	req       domain.PreloadRequest
	err       error
}

func (m *mockApp) Configure(_ context.Context, root string) (*app.Report, error) {
	m.root = root
	if m.err != nil {
		return nil, m.err
	}
	coord, _ := domain.NewCoordinate("junit", "junit", "4.12")
	return &app.Report{
		Root: root,
		Modules: []app.ModuleReport{{
			Path:         ":",
			Dependencies: []domain.Coordinate{coord},
			Artifacts:    []app.ArtifactReport{{Key: ":#0", Paths: []string{"/x/asm.jar"}, Fingerprint: "f1", Changed: true}},
		}},
		Edges: []app.EdgeReport{{From: ":a:assemble", To: ":a:compile"}},
	}, nil
}

func (m *mockApp) Resolve(root string, refs []string) ([]domain.Coordinate, error) {
	m.root, m.refs = root, refs
	if m.err != nil {
		return nil, m.err
	}
	coord, _ := domain.NewCoordinate("junit", "junit", "4.12")
	return []domain.Coordinate{coord}, nil
}

func (m *mockApp) ResolveToolchain(root string, bases []string) ([]domain.Coordinate, error) {
	m.root, m.refs, m.toolchain = root, bases, true
	coord, _ := domain.NewCoordinate("org.jetbrains.kotlin", "kotlin-stdlib", "1.1.1")
	return []domain.Coordinate{coord}, m.err
}

func (m *mockApp) Locate(root string, req domain.PreloadRequest) (app.ArtifactReport, error) {
	m.root, m.req = root, req
	return app.ArtifactReport{Paths: []string{"/sdk/lib/openapi.jar"}}, m.err
}

func (m *mockApp) Graph(root string) ([]app.EdgeReport, error) {
	m.root = root
	return []app.EdgeReport{{From: ":assemble", To: ":a:compile"}}, m.err
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	out := new(bytes.Buffer)
	cli.SetOutput(out, new(bytes.Buffer))
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Configure(t *testing.T) {
	mock := &mockApp{}
	root := t.TempDir()

	out, err := execute(t, mock, "--root", root, "configure")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(root), mock.root)
	assert.Contains(t, out, "dependency junit:junit:4.12")
	assert.Contains(t, out, "(changed)")
	assert.Contains(t, out, ":a:assemble -> :a:compile")
}

func TestCommands_Configure_JSON(t *testing.T) {
	out, err := execute(t, &mockApp{}, "configure", "--json")
	require.NoError(t, err)

	var report struct {
		Modules []struct {
			Path         string   `json:"path"`
			Dependencies []string `json:"dependencies"`
		} `json:"modules"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Modules, 1)
	assert.Equal(t, []string{"junit:junit:4.12"}, report.Modules[0].Dependencies)
}

func TestCommands_Configure_Error(t *testing.T) {
	_, err := execute(t, &mockApp{err: errors.New("simulated error")}, "configure")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated error")
}

func TestCommands_Resolve(t *testing.T) {
	mock := &mockApp{}
	out, err := execute(t, mock, "resolve", "junit")
	require.NoError(t, err)
	assert.Equal(t, []string{"junit"}, mock.refs)
	assert.False(t, mock.toolchain)
	assert.Equal(t, "junit:junit:4.12\n", out)

	out, err = execute(t, mock, "resolve", "--toolchain", "stdlib")
	require.NoError(t, err)
	assert.True(t, mock.toolchain)
	assert.Equal(t, "org.jetbrains.kotlin:kotlin-stdlib:1.1.1\n", out)
}

func TestCommands_Resolve_RequiresArgs(t *testing.T) {
	_, err := execute(t, &mockApp{}, "resolve")
	require.Error(t, err)
}

func TestCommands_Locate(t *testing.T) {
	mock := &mockApp{}
	out, err := execute(t, mock, "locate", "--sdk", "--subdir", "plugins", "openapi")
	require.NoError(t, err)
	assert.Equal(t, domain.PreloadRequest{Names: []string{"openapi"}, Subdir: "plugins", SDK: true}, mock.req)
	assert.Equal(t, "/sdk/lib/openapi.jar\n", out)
}

func TestCommands_Graph(t *testing.T) {
	out, err := execute(t, &mockApp{}, "graph")
	require.NoError(t, err)
	assert.Equal(t, ":assemble -> :a:compile\n", out)
}

func TestCommands_JSONHook(t *testing.T) {
	var enabled bool
	cli := commands.New(&mockApp{})
	cli.SetJSONHook(func(v bool) { enabled = v })
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"graph", "--json"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, enabled)
}

func TestCommands_ProgressHook(t *testing.T) {
	var jsonEnabled, progressEnabled bool
	cli := commands.New(&mockApp{})
	cli.SetJSONHook(func(v bool) { jsonEnabled = v })
	cli.SetProgressHook(func(v bool) { progressEnabled = v })
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"graph", "--progress"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, progressEnabled)
	assert.False(t, jsonEnabled)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "buildsrc version dev")
}
