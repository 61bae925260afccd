package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildsrc/internal/adapters/telemetry"
	"go.trai.ch/buildsrc/internal/app"
	"go.trai.ch/buildsrc/internal/core/domain"
	"go.trai.ch/buildsrc/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const root = "/repo"

type fixture struct {
	settings *mocks.MockSettingsLoader
	catalogs *mocks.MockCatalogLoader
	projects *mocks.MockProjectLoader
	locator  *mocks.MockArtifactLocator
	hasher   *mocks.MockHasher
	store    *mocks.MockLockStore
	logger   *mocks.MockLogger
	app      *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		settings: mocks.NewMockSettingsLoader(ctrl),
		catalogs: mocks.NewMockCatalogLoader(ctrl),
		projects: mocks.NewMockProjectLoader(ctrl),
		locator:  mocks.NewMockArtifactLocator(ctrl),
		hasher:   mocks.NewMockHasher(ctrl),
		store:    mocks.NewMockLockStore(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

	loaders := app.Loaders{Settings: f.settings, Catalog: f.catalogs, Project: f.projects}
	f.app = app.New(loaders, f.locator, f.hasher, f.store, telemetry.NewNoOpTracer(), f.logger)
	return f
}

func testSettings() domain.Settings {
	return domain.Settings{
		Layout:      domain.DefaultLayout(root),
		CatalogPath: root + "/versions.toml",
		LockPath:    domain.DefaultLockPath(root),
		Toolchain: domain.Toolchain{
			Group:          "org.jetbrains.kotlin",
			ArtifactPrefix: "kotlin-",
			VersionKey:     "kotlinVersion",
		},
	}
}

func testCatalog() *domain.Catalog {
	return domain.NewCatalog(map[string]string{
		"versions.junit": "4.12",
		"kotlinVersion":  "1.1.1",
	})
}

// testProject builds root -> {a -> {a1}}, where every module has "assemble" and only a1 has "compile".
func testProject(t *testing.T) (*domain.Project, domain.ModuleID) {
	t.Helper()
	tree := domain.NewModuleTree("proj", root)
	a, err := tree.AddModule(domain.RootModule, "a", root+"/a")
	require.NoError(t, err)
	a1, err := tree.AddModule(a, "a1", root+"/a/a1")
	require.NoError(t, err)

	for _, id := range []domain.ModuleID{domain.RootModule, a, a1} {
		_, err := tree.AddTask(id, "assemble")
		require.NoError(t, err)
	}
	_, err = tree.AddTask(a1, "compile")
	require.NoError(t, err)

	return &domain.Project{Tree: tree, Declarations: map[domain.ModuleID]domain.Declarations{}}, a
}

func TestApp_Configure(t *testing.T) {
	f := newFixture(t)
	project, _ := testProject(t)
	project.Declarations[domain.RootModule] = domain.Declarations{
		Dependencies: []string{"junit"},
		Toolchain:    []string{"stdlib"},
		Preloaded:    []domain.PreloadRequest{{Names: []string{"asm"}}},
		Links:        []domain.LinkRequest{{From: "assemble", To: "compile", Mode: domain.LinkRecursive}},
	}

	settings := testSettings()
	paths := []string{root + "/dependencies/asm-5.0.jar"}

	f.settings.EXPECT().Load(root).Return(settings, nil)
	f.catalogs.EXPECT().Load(settings.CatalogPath).Return(testCatalog(), nil)
	f.projects.EXPECT().Load(root).Return(project, nil)
	f.store.EXPECT().Open(settings.LockPath).Return(nil)
	f.locator.EXPECT().Locate([]string{"asm"}, settings.Layout.DependenciesDir, "").
		Return(domain.ArtifactSet{Dir: settings.Layout.DependenciesDir, Requested: []string{"asm"}, Paths: paths}, nil)
	f.hasher.EXPECT().Fingerprint(paths).Return("f1", nil)
	f.store.EXPECT().Get(":#0").Return(&domain.ArtifactLock{Key: ":#0", Fingerprint: "f0"}, nil)
	f.logger.EXPECT().Warn("preloaded artifacts changed", gomock.Any()).Times(1)
	f.store.EXPECT().Put(domain.ArtifactLock{Key: ":#0", Fingerprint: "f1", Paths: paths}).Return(nil)

	report, err := f.app.Configure(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, report.Modules, 3)
	assert.Equal(t, []string{":", ":a", ":a:a1"},
		[]string{report.Modules[0].Path, report.Modules[1].Path, report.Modules[2].Path})

	rootReport := report.Modules[0]
	require.Len(t, rootReport.Dependencies, 1)
	assert.Equal(t, "junit:junit:4.12", rootReport.Dependencies[0].String())
	require.Len(t, rootReport.Toolchain, 1)
	assert.Equal(t, "org.jetbrains.kotlin:kotlin-stdlib:1.1.1", rootReport.Toolchain[0].String())
	require.Len(t, rootReport.Artifacts, 1)
	assert.True(t, rootReport.Artifacts[0].Changed)
	assert.Equal(t, "f1", rootReport.Artifacts[0].Fingerprint)
	assert.Equal(t, 1, rootReport.EdgesAdded)

	assert.Equal(t, []app.EdgeReport{{From: ":a:a1:assemble", To: ":a:a1:compile"}}, report.Edges)
}

func TestApp_Configure_UnchangedFingerprint(t *testing.T) {
	f := newFixture(t)
	project, a := testProject(t)
	project.Declarations[a] = domain.Declarations{
		Preloaded: []domain.PreloadRequest{{Names: []string{"openapi"}, SDK: true}},
	}

	settings := testSettings()
	paths := []string{root + "/ideaSdk/lib/openapi.jar"}

	f.settings.EXPECT().Load(root).Return(settings, nil)
	f.catalogs.EXPECT().Load(settings.CatalogPath).Return(testCatalog(), nil)
	f.projects.EXPECT().Load(root).Return(project, nil)
	f.store.EXPECT().Open(settings.LockPath).Return(nil)
	f.locator.EXPECT().Locate([]string{"openapi"}, settings.Layout.SDKDir, "lib").
		Return(domain.ArtifactSet{Paths: paths}, nil)
	f.hasher.EXPECT().Fingerprint(paths).Return("same", nil)
	f.store.EXPECT().Get(":a#0").Return(&domain.ArtifactLock{Key: ":a#0", Fingerprint: "same"}, nil)
	f.store.EXPECT().Put(gomock.Any()).Times(0)

	report, err := f.app.Configure(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, report.Modules[1].Artifacts, 1)
	assert.False(t, report.Modules[1].Artifacts[0].Changed)
	assert.Empty(t, report.Edges)
}

func TestApp_Configure_FailsWithModulePath(t *testing.T) {
	f := newFixture(t)
	project, a := testProject(t)
	project.Declarations[a] = domain.Declarations{Dependencies: []string{"guava"}}

	settings := testSettings()
	f.settings.EXPECT().Load(root).Return(settings, nil)
	f.catalogs.EXPECT().Load(settings.CatalogPath).Return(testCatalog(), nil)
	f.projects.EXPECT().Load(root).Return(project, nil)
	f.store.EXPECT().Open(settings.LockPath).Return(nil)

	report, err := f.app.Configure(context.Background(), root)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrConfigurationFailed)
	assert.ErrorIs(t, err, domain.ErrUnknownVersion)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, ":a", zErr.Metadata()["module"])
}

func TestApp_Configure_SettingsError(t *testing.T) {
	f := newFixture(t)
	f.settings.EXPECT().Load(root).Return(domain.Settings{}, errors.New("boom"))

	_, err := f.app.Configure(context.Background(), root)
	assert.ErrorContains(t, err, "failed to load settings")
}

func TestApp_Configure_Canceled(t *testing.T) {
	f := newFixture(t)
	project, _ := testProject(t)

	settings := testSettings()
	f.settings.EXPECT().Load(root).Return(settings, nil)
	f.catalogs.EXPECT().Load(settings.CatalogPath).Return(testCatalog(), nil)
	f.projects.EXPECT().Load(root).Return(project, nil)
	f.store.EXPECT().Open(settings.LockPath).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.app.Configure(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApp_Resolve(t *testing.T) {
	f := newFixture(t)
	settings := testSettings()
	f.settings.EXPECT().Load(root).Return(settings, nil).Times(2)
	f.catalogs.EXPECT().Load(settings.CatalogPath).Return(testCatalog(), nil).Times(2)

	coords, err := f.app.Resolve(root, []string{"junit", "org.junit:junit", "a:b:c"})
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assert.Equal(t, "junit:junit:4.12", coords[0].String())
	assert.Equal(t, "org.junit:junit:4.12", coords[1].String())
	assert.Equal(t, "a:b:c", coords[2].String())

	coords, err = f.app.ResolveToolchain(root, []string{"reflect"})
	require.NoError(t, err)
	assert.Equal(t, "org.jetbrains.kotlin:kotlin-reflect:1.1.1", coords[0].String())
}

func TestApp_Locate(t *testing.T) {
	f := newFixture(t)
	settings := testSettings()
	paths := []string{root + "/ideaSdk/core/intellij-core.jar"}

	f.settings.EXPECT().Load(root).Return(settings, nil)
	f.locator.EXPECT().Locate([]string{"intellij-core"}, settings.Layout.SDKDir, "core").
		Return(domain.ArtifactSet{Dir: settings.Layout.SDKDir + "/core", Paths: paths}, nil)
	f.hasher.EXPECT().Fingerprint(paths).Return("abc", nil)

	ar, err := f.app.Locate(root, domain.PreloadRequest{Names: []string{"intellij-core"}, Core: true})
	require.NoError(t, err)
	assert.Equal(t, paths, ar.Paths)
	assert.Equal(t, "abc", ar.Fingerprint)
}

func TestApp_Graph(t *testing.T) {
	f := newFixture(t)
	project, a := testProject(t)
	project.Declarations[domain.RootModule] = domain.Declarations{
		Links: []domain.LinkRequest{{From: "assemble", To: "compile", Mode: domain.LinkDescendants}},
	}
	project.Declarations[a] = domain.Declarations{
		Links: []domain.LinkRequest{{From: "assemble", To: "missing"}},
	}
	f.projects.EXPECT().Load(root).Return(project, nil)

	edges, err := f.app.Graph(root)
	require.NoError(t, err)
	assert.Equal(t, []app.EdgeReport{{From: ":assemble", To: ":a:a1:compile"}}, edges)
}

func TestApp_Configure_RecordsSpanErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	settings := mocks.NewMockSettingsLoader(ctrl)
	projects := mocks.NewMockProjectLoader(ctrl)
	catalogs := mocks.NewMockCatalogLoader(ctrl)
	store := mocks.NewMockLockStore(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	passSpan := mocks.NewMockSpan(ctrl)
	moduleSpan := mocks.NewMockSpan(ctrl)

	tree := domain.NewModuleTree("proj", root)
	project := &domain.Project{
		Tree: tree,
		Declarations: map[domain.ModuleID]domain.Declarations{
			domain.RootModule: {Dependencies: []string{"a:b:c:d"}},
		},
	}

	s := testSettings()
	settings.EXPECT().Load(root).Return(s, nil)
	catalogs.EXPECT().Load(s.CatalogPath).Return(testCatalog(), nil)
	projects.EXPECT().Load(root).Return(project, nil)
	store.EXPECT().Open(s.LockPath).Return(nil)

	ctx := context.Background()
	gomock.InOrder(
		tracer.EXPECT().Start(ctx, "configure").Return(ctx, passSpan),
		tracer.EXPECT().EmitPlan(ctx, []string{":"}),
		tracer.EXPECT().Start(ctx, "module :").Return(ctx, moduleSpan),
	)
	moduleSpan.EXPECT().RecordError(gomock.Any())
	moduleSpan.EXPECT().End()
	passSpan.EXPECT().RecordError(gomock.Any())
	passSpan.EXPECT().End()

	a := app.New(
		app.Loaders{Settings: settings, Catalog: catalogs, Project: projects},
		mocks.NewMockArtifactLocator(ctrl),
		mocks.NewMockHasher(ctrl),
		store,
		tracer,
		logger,
	)

	_, err := a.Configure(ctx, root)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
}
