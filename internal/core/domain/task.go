package domain

import "slices"

// TaskRef names a task inside a specific module.
type TaskRef struct {
	Module ModuleID
	Name   string
}

// Task represents a named unit of work owned by a module.
// Its dependency edges are additive and deduplicated.
type Task struct {
	Name   string
	Module ModuleID
	deps   []TaskRef
}

// Ref returns the reference identifying this task.
func (t *Task) Ref() TaskRef {
	return TaskRef{Module: t.Module, Name: t.Name}
}

// DependOn adds an edge from t to ref, meaning t runs after ref.
// It reports false when the edge already existed.
func (t *Task) DependOn(ref TaskRef) bool {
	if slices.Contains(t.deps, ref) {
		return false
	}
	t.deps = append(t.deps, ref)
	return true
}

// Dependencies returns the task's edges in insertion order.
func (t *Task) Dependencies() []TaskRef {
	return slices.Clone(t.deps)
}

// Edge is a directed "From runs after To" relation between two tasks.
type Edge struct {
	From TaskRef
	To   TaskRef
}
