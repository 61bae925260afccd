// Package config provides the loaders for module descriptors, the version catalog and settings.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/buildsrc/internal/core/domain"
	"go.trai.ch/buildsrc/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ProjectLoader = (*Loader)(nil)

// Loader implements ports.ProjectLoader by reading module.yaml files recursively.
type Loader struct {
	Filename string
	Logger   ports.Logger
}

// NewLoader creates a new Loader reading domain.ModuleFileName descriptors.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Filename: domain.ModuleFileName, Logger: log}
}

// Load reads the root descriptor in rootDir and every submodule it lists.
func (l *Loader) Load(rootDir string) (*domain.Project, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to get absolute path of root"), "root", rootDir)
	}

	file, err := l.readModuleFile(root)
	if err != nil {
		return nil, err
	}

	name := file.Name
	if name == "" {
		name = filepath.Base(root)
	}

	project := &domain.Project{
		Tree:         domain.NewModuleTree(name, root),
		Declarations: make(map[domain.ModuleID]domain.Declarations),
	}
	if err := l.populate(project, domain.RootModule, root, file); err != nil {
		return nil, err
	}
	return project, nil
}

func (l *Loader) populate(p *domain.Project, id domain.ModuleID, dir string, file *ModuleFile) error {
	if err := addTasks(p.Tree, id, file.Tasks); err != nil {
		return err
	}

	decl, err := declarations(file)
	if err != nil {
		return zerr.With(err, "dir", dir)
	}
	p.Declarations[id] = decl

	for _, sub := range file.Modules {
		if !filepath.IsLocal(sub) || filepath.Clean(sub) == "." {
			err := zerr.With(zerr.New("module path must be a subdirectory"), "module", sub)
			return zerr.With(err, "dir", dir)
		}

		childDir := filepath.Join(dir, sub)
		childFile, err := l.readModuleFile(childDir)
		if err != nil {
			return err
		}

		name := childFile.Name
		if name == "" {
			name = filepath.Base(childDir)
		}
		childID, err := p.Tree.AddModule(id, name, childDir)
		if err != nil {
			return err
		}

		if err := l.populate(p, childID, childDir, childFile); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) readModuleFile(dir string) (*ModuleFile, error) {
	path := filepath.Join(dir, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	var file ModuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", path)
	}

	if l.Logger != nil {
		l.Logger.Info("loaded module descriptor", "path", path)
	}
	return &file, nil
}

// addTasks declares tasks in sorted order, then wires their explicit dependsOn edges.
func addTasks(tree *domain.ModuleTree, id domain.ModuleID, tasks map[string]TaskDTO) error {
	names := make([]string, 0, len(tasks))
	for name := range tasks {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if _, err := tree.AddTask(id, name); err != nil {
			return err
		}
	}

	for _, name := range names {
		task, _ := tree.Task(id, name)
		for _, dep := range tasks[name].DependsOn {
			target, ok := tree.Task(id, dep)
			if !ok {
				err := zerr.With(zerr.Wrap(domain.ErrTaskNotFound, ""), "missing_dependency", dep)
				return zerr.With(err, "task_name", name)
			}
			task.DependOn(target.Ref())
		}
	}
	return nil
}

func declarations(file *ModuleFile) (domain.Declarations, error) {
	decl := domain.Declarations{
		Dependencies: file.Dependencies,
		Toolchain:    file.Toolchain,
	}

	for _, p := range file.Preloaded {
		if len(p.Names) == 0 {
			return domain.Declarations{}, zerr.New("preloaded group needs at least one name")
		}
		decl.Preloaded = append(decl.Preloaded, domain.PreloadRequest{
			Names:  p.Names,
			Dir:    p.Dir,
			Subdir: p.Subdir,
			SDK:    p.SDK,
			Core:   p.Core,
		})
	}

	for _, link := range file.Links {
		mode := domain.LinkMode(link.Mode)
		switch mode {
		case "":
			mode = domain.LinkLocal
		case domain.LinkLocal, domain.LinkRecursive, domain.LinkDescendants:
		default:
			return domain.Declarations{}, zerr.With(zerr.New("unknown link mode"), "mode", link.Mode)
		}
		if link.From == "" || link.To == "" {
			return domain.Declarations{}, zerr.New("link needs both from and to")
		}
		decl.Links = append(decl.Links, domain.LinkRequest{From: link.From, To: link.To, Mode: mode})
	}

	return decl, nil
}
