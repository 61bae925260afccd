// Package linker retrofits "depends on if present" edges across a module tree.
//
// None of the operations fail: a missing target task is an optional upstream
// phase, not an error. Edges are deduplicated by the tasks themselves, so every
// function returns the number of edges that were actually added.
package linker

import "go.trai.ch/buildsrc/internal/core/domain"

// LinkIfPresent makes from depend on the task named toName in from's own module,
// if such a task exists.
func LinkIfPresent(tree *domain.ModuleTree, from *domain.Task, toName string) bool {
	to, ok := tree.Task(from.Module, toName)
	if !ok {
		return false
	}
	return from.DependOn(to.Ref())
}

// LinkIfPresentRecursive walks module and its descendants, parents first. In each
// module that defines both fromName and toName, fromName gains an edge to toName.
// Modules lacking either task are skipped; their descendants are still visited.
func LinkIfPresentRecursive(tree *domain.ModuleTree, module domain.ModuleID, fromName, toName string) int {
	added := 0
	for m := range tree.Walk(module) {
		from, ok := tree.Task(m.ID, fromName)
		if !ok {
			continue
		}
		if LinkIfPresent(tree, from, toName) {
			added++
		}
	}
	return added
}

// LinkDescendants makes the single task from depend on toName in its own module
// and in every descendant module that defines it.
func LinkDescendants(tree *domain.ModuleTree, from *domain.Task, toName string) int {
	added := 0
	for m := range tree.Walk(from.Module) {
		to, ok := tree.Task(m.ID, toName)
		if !ok || to == from {
			continue
		}
		if from.DependOn(to.Ref()) {
			added++
		}
	}
	return added
}
