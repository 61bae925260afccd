// Package app implements the configuration pass of buildsrc.
package app

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.trai.ch/buildsrc/internal/core/domain"
	"go.trai.ch/buildsrc/internal/core/ports"
	"go.trai.ch/buildsrc/internal/engine/linker"
	"go.trai.ch/buildsrc/internal/engine/preload"
	"go.trai.ch/buildsrc/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Loaders groups the readers of on-disk configuration.
type Loaders struct {
	Settings ports.SettingsLoader
	Catalog  ports.CatalogLoader
	Project  ports.ProjectLoader
}

// App represents the main application logic.
type App struct {
	loaders Loaders
	locator ports.ArtifactLocator
	hasher  ports.Hasher
	store   ports.LockStore
	tracer  ports.Tracer
	logger  ports.Logger
}

// New creates a new App instance.
func New(
	loaders Loaders,
	locator ports.ArtifactLocator,
	hasher ports.Hasher,
	store ports.LockStore,
	tracer ports.Tracer,
	logger ports.Logger,
) *App {
	return &App{
		loaders: loaders,
		locator: locator,
		hasher:  hasher,
		store:   store,
		tracer:  tracer,
		logger:  logger,
	}
}

// session is the state shared by every module of one pass.
type session struct {
	settings  domain.Settings
	resolver  *resolver.Resolver
	preloader *preload.Preloader
}

func (a *App) openSession(root string) (*session, error) {
	settings, err := a.loaders.Settings.Load(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load settings")
	}

	catalog, err := a.loaders.Catalog.Load(settings.CatalogPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load version catalog")
	}

	return &session{
		settings:  settings,
		resolver:  resolver.New(catalog),
		preloader: preload.New(a.locator, settings.Layout),
	}, nil
}

// Configure runs the configuration pass over the project rooted at root.
// Modules are visited parent before children; the first error aborts the pass.
func (a *App) Configure(ctx context.Context, root string) (*Report, error) {
	ctx, span := a.tracer.Start(ctx, "configure")
	defer span.End()

	report, err := a.configure(ctx, root)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return report, nil
}

func (a *App) configure(ctx context.Context, root string) (*Report, error) {
	sess, err := a.openSession(root)
	if err != nil {
		return nil, err
	}

	project, err := a.loaders.Project.Load(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load module tree")
	}

	if err := a.store.Open(sess.settings.LockPath); err != nil {
		return nil, err
	}

	var plan []string
	for m := range project.Tree.Walk(domain.RootModule) {
		plan = append(plan, m.Path)
	}
	a.tracer.EmitPlan(ctx, plan)

	report := &Report{Root: root}
	for m := range project.Tree.Walk(domain.RootModule) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mr, err := a.configureModule(ctx, sess, project, m)
		if err != nil {
			err = zerr.With(errors.Join(domain.ErrConfigurationFailed, err), "module", m.Path)
			return nil, err
		}
		report.Modules = append(report.Modules, mr)
	}
	report.Edges = edgeReports(project.Tree)

	a.logger.Info("configuration complete",
		"modules", len(report.Modules),
		"edges", len(report.Edges),
	)
	return report, nil
}

func (a *App) configureModule(
	ctx context.Context,
	sess *session,
	project *domain.Project,
	m *domain.Module,
) (ModuleReport, error) {
	_, span := a.tracer.Start(ctx, "module "+m.Path)
	defer span.End()

	mr, err := a.applyDeclarations(sess, project, m)
	if err != nil {
		span.RecordError(err)
		return ModuleReport{}, err
	}

	span.SetAttribute("dependencies", len(mr.Dependencies)+len(mr.Toolchain))
	span.SetAttribute("artifact_groups", len(mr.Artifacts))
	span.SetAttribute("edges_added", mr.EdgesAdded)
	return mr, nil
}

func (a *App) applyDeclarations(sess *session, project *domain.Project, m *domain.Module) (ModuleReport, error) {
	decl := project.Declarations[m.ID]
	mr := ModuleReport{Path: m.Path}

	for _, ref := range decl.Dependencies {
		c, err := sess.resolver.Resolve(ref)
		if err != nil {
			return ModuleReport{}, err
		}
		mr.Dependencies = append(mr.Dependencies, c)
	}

	for _, base := range decl.Toolchain {
		c, err := sess.resolver.ResolveToolchain(sess.settings.Toolchain, base)
		if err != nil {
			return ModuleReport{}, err
		}
		mr.Toolchain = append(mr.Toolchain, c)
	}

	for i, req := range decl.Preloaded {
		ar, err := a.preloadGroup(sess, lockKey(m.Path, i), req)
		if err != nil {
			return ModuleReport{}, err
		}
		mr.Artifacts = append(mr.Artifacts, ar)
	}

	for _, link := range decl.Links {
		mr.EdgesAdded += applyLink(project.Tree, m.ID, link)
	}

	a.logger.Info("configured module",
		"module", m.Path,
		"dependencies", len(mr.Dependencies)+len(mr.Toolchain),
		"artifact_groups", len(mr.Artifacts),
		"edges_added", mr.EdgesAdded,
	)
	return mr, nil
}

func (a *App) preloadGroup(sess *session, key string, req domain.PreloadRequest) (ArtifactReport, error) {
	set, err := sess.preloader.Locate(req)
	if err != nil {
		return ArtifactReport{}, err
	}

	fingerprint, err := a.hasher.Fingerprint(set.Paths)
	if err != nil {
		return ArtifactReport{}, zerr.With(zerr.Wrap(err, "failed to fingerprint artifacts"), "key", key)
	}

	ar := ArtifactReport{
		Key:         key,
		Dir:         set.Dir,
		Paths:       set.Files(),
		Fingerprint: fingerprint,
	}

	previous, err := a.store.Get(key)
	if err != nil {
		return ArtifactReport{}, err
	}
	if previous != nil && previous.Fingerprint == fingerprint {
		return ar, nil
	}
	if previous != nil {
		ar.Changed = true
		a.logger.Warn("preloaded artifacts changed",
			"key", key,
			"previous", previous.Fingerprint,
			"current", fingerprint,
		)
	}

	if err := a.store.Put(domain.ArtifactLock{Key: key, Fingerprint: fingerprint, Paths: set.Files()}); err != nil {
		return ArtifactReport{}, err
	}
	return ar, nil
}

// applyLink adds the edges of one link declaration made by module id.
// Missing tasks are skipped, never reported.
func applyLink(tree *domain.ModuleTree, id domain.ModuleID, link domain.LinkRequest) int {
	switch link.Mode {
	case domain.LinkRecursive:
		return linker.LinkIfPresentRecursive(tree, id, link.From, link.To)
	case domain.LinkDescendants:
		from, ok := tree.Task(id, link.From)
		if !ok {
			return 0
		}
		return linker.LinkDescendants(tree, from, link.To)
	default:
		from, ok := tree.Task(id, link.From)
		if !ok {
			return 0
		}
		if linker.LinkIfPresent(tree, from, link.To) {
			return 1
		}
		return 0
	}
}

// lockKey identifies the i-th preloaded group of a module, e.g. ":a#0".
func lockKey(modulePath string, i int) string {
	return modulePath + "#" + strconv.Itoa(i)
}

// Resolve turns dependency references into coordinates using the project's catalog.
func (a *App) Resolve(root string, refs []string) ([]domain.Coordinate, error) {
	sess, err := a.openSession(root)
	if err != nil {
		return nil, err
	}

	coords := make([]domain.Coordinate, 0, len(refs))
	for _, ref := range refs {
		c, err := sess.resolver.Resolve(ref)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
	}
	return coords, nil
}

// ResolveToolchain builds the coordinates of toolchain artifacts such as "stdlib".
func (a *App) ResolveToolchain(root string, bases []string) ([]domain.Coordinate, error) {
	sess, err := a.openSession(root)
	if err != nil {
		return nil, err
	}

	coords := make([]domain.Coordinate, 0, len(bases))
	for _, base := range bases {
		c, err := sess.resolver.ResolveToolchain(sess.settings.Toolchain, base)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
	}
	return coords, nil
}

// Locate finds one preloaded artifact group and fingerprints it without touching the lock store.
func (a *App) Locate(root string, req domain.PreloadRequest) (ArtifactReport, error) {
	settings, err := a.loaders.Settings.Load(root)
	if err != nil {
		return ArtifactReport{}, zerr.Wrap(err, "failed to load settings")
	}

	set, err := preload.New(a.locator, settings.Layout).Locate(req)
	if err != nil {
		return ArtifactReport{}, err
	}

	fingerprint, err := a.hasher.Fingerprint(set.Paths)
	if err != nil {
		return ArtifactReport{}, zerr.Wrap(err, "failed to fingerprint artifacts")
	}

	return ArtifactReport{
		Key:         strings.Join(req.Names, ","),
		Dir:         set.Dir,
		Paths:       set.Files(),
		Fingerprint: fingerprint,
	}, nil
}

// Graph loads the module tree, applies every link declaration and returns the resulting edges.
// Dependencies and preloaded artifacts are not touched.
func (a *App) Graph(root string) ([]EdgeReport, error) {
	project, err := a.loaders.Project.Load(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load module tree")
	}

	for m := range project.Tree.Walk(domain.RootModule) {
		for _, link := range project.Declarations[m.ID].Links {
			applyLink(project.Tree, m.ID, link)
		}
	}
	return edgeReports(project.Tree), nil
}
