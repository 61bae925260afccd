package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ModuleID indexes a module in its ModuleTree.
type ModuleID int

const (
	// RootModule is the id of the root module of every tree.
	RootModule ModuleID = 0
	// NoModule marks the missing parent of the root.
	NoModule ModuleID = -1
)

// PathSeparator separates segments of module and task paths.
const PathSeparator = ":"

// Module is a node of the module tree.
type Module struct {
	ID       ModuleID
	Name     string
	Path     string
	Dir      string
	Parent   ModuleID
	children []ModuleID
	tasks    map[string]*Task
	order    []string
}

// Children returns the ids of the direct submodules.
func (m *Module) Children() []ModuleID {
	return slices.Clone(m.children)
}

// TaskNames returns the module's task names in declaration order.
func (m *Module) TaskNames() []string {
	return slices.Clone(m.order)
}

// ModuleTree is an arena of modules linked by parent and children ids.
// Modules are only ever appended, so the structure is always a tree.
type ModuleTree struct {
	modules []*Module
}

// NewModuleTree creates a tree holding only the root module.
func NewModuleTree(rootName, rootDir string) *ModuleTree {
	return &ModuleTree{
		modules: []*Module{{
			ID:     RootModule,
			Name:   rootName,
			Path:   PathSeparator,
			Dir:    rootDir,
			Parent: NoModule,
			tasks:  make(map[string]*Task),
		}},
	}
}

// Len returns the number of modules.
func (t *ModuleTree) Len() int {
	return len(t.modules)
}

// Module returns the module with the given id.
func (t *ModuleTree) Module(id ModuleID) (*Module, error) {
	if id < 0 || int(id) >= len(t.modules) {
		return nil, zerr.With(zerr.Wrap(ErrModuleNotFound, ""), "module_id", int(id))
	}
	return t.modules[id], nil
}

// Root returns the root module.
func (t *ModuleTree) Root() *Module {
	return t.modules[RootModule]
}

// AddModule appends a child named name under parent.
func (t *ModuleTree) AddModule(parent ModuleID, name, dir string) (ModuleID, error) {
	p, err := t.Module(parent)
	if err != nil {
		return NoModule, err
	}
	for _, c := range p.children {
		if t.modules[c].Name == name {
			err := zerr.With(zerr.Wrap(ErrDuplicateModule, ""), "module", name)
			return NoModule, zerr.With(err, "parent", p.Path)
		}
	}

	id := ModuleID(len(t.modules))
	t.modules = append(t.modules, &Module{
		ID:     id,
		Name:   name,
		Path:   joinPath(p.Path, name),
		Dir:    dir,
		Parent: parent,
		tasks:  make(map[string]*Task),
	})
	p.children = append(p.children, id)
	return id, nil
}

// Children returns the direct submodules of id.
func (t *ModuleTree) Children(id ModuleID) []ModuleID {
	m, err := t.Module(id)
	if err != nil {
		return nil
	}
	return m.Children()
}

// AddTask declares a task in module id.
func (t *ModuleTree) AddTask(id ModuleID, name string) (*Task, error) {
	m, err := t.Module(id)
	if err != nil {
		return nil, err
	}
	if _, exists := m.tasks[name]; exists {
		err := zerr.With(zerr.Wrap(ErrTaskAlreadyExists, ""), "task_name", name)
		return nil, zerr.With(err, "module", m.Path)
	}
	task := &Task{Name: name, Module: id}
	m.tasks[name] = task
	m.order = append(m.order, name)
	return task, nil
}

// Task looks up a task by name in module id.
// The boolean is false when the module has no such task.
func (t *ModuleTree) Task(id ModuleID, name string) (*Task, bool) {
	m, err := t.Module(id)
	if err != nil {
		return nil, false
	}
	task, ok := m.tasks[name]
	return task, ok
}

// FindModule returns the id of the module at path (":", ":a", ":a:a1").
func (t *ModuleTree) FindModule(path string) (ModuleID, error) {
	for _, m := range t.modules {
		if m.Path == path {
			return m.ID, nil
		}
	}
	return NoModule, zerr.With(zerr.Wrap(ErrModuleNotFound, ""), "path", path)
}

// Walk yields start and all of its descendants depth-first, parents before children.
func (t *ModuleTree) Walk(start ModuleID) iter.Seq[*Module] {
	return func(yield func(*Module) bool) {
		if _, err := t.Module(start); err != nil {
			return
		}
		stack := []ModuleID{start}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			m := t.modules[id]
			if !yield(m) {
				return
			}
			for i := len(m.children) - 1; i >= 0; i-- {
				stack = append(stack, m.children[i])
			}
		}
	}
}

// Edges returns every task dependency edge in walk order.
func (t *ModuleTree) Edges() []Edge {
	var edges []Edge
	for m := range t.Walk(RootModule) {
		for _, name := range m.order {
			task := m.tasks[name]
			for _, dep := range task.deps {
				edges = append(edges, Edge{From: task.Ref(), To: dep})
			}
		}
	}
	return edges
}

// TaskPath renders a task reference as ":a:a1:compile".
func (t *ModuleTree) TaskPath(ref TaskRef) string {
	m, err := t.Module(ref.Module)
	if err != nil {
		return ref.Name
	}
	return joinPath(m.Path, ref.Name)
}

func joinPath(parent, name string) string {
	return strings.TrimSuffix(parent, PathSeparator) + PathSeparator + name
}
