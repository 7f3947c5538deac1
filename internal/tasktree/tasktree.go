// Package tasktree reconstructs the display ordering of a flat todo
// collection: top-level tasks newest first, each immediately followed
// by its subtasks, also newest first.
package tasktree

import (
	"sort"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
)

// Group partitions todos into top-level tasks and subtasks and emits
// them in display order. Subtasks whose parent is absent from the
// collection, or whose parent is itself a subtask, are dropped: only
// one level of nesting is supported.
func Group(todos []model.Todo) []model.Todo {
	var topLevel []model.Todo
	children := make(map[string][]model.Todo)

	for _, t := range todos {
		if t.ParentID == nil {
			topLevel = append(topLevel, t)
		} else {
			children[*t.ParentID] = append(children[*t.ParentID], t)
		}
	}

	sortNewestFirst(topLevel)

	out := make([]model.Todo, 0, len(todos))
	for _, parent := range topLevel {
		out = append(out, parent)
		subs := children[parent.ID]
		sortNewestFirst(subs)
		out = append(out, subs...)
	}
	return out
}

func sortNewestFirst(todos []model.Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
}
