package tasktree_test

import (
	"testing"
	"time"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
	"github.com/mindtrackhq/mindtrack-api/internal/tasktree"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func task(id string, parentID *string, minutesAfterBase int) model.Todo {
	return model.Todo{
		ID:        id,
		UserID:    "user-1",
		Text:      "task " + id,
		ParentID:  parentID,
		IsSubtask: parentID != nil,
		CreatedAt: base.Add(time.Duration(minutesAfterBase) * time.Minute),
	}
}

func ptr(s string) *string { return &s }

func ids(todos []model.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

func TestGroup(t *testing.T) {
	tests := []struct {
		name  string
		todos []model.Todo
		want  []string
	}{
		{
			name:  "empty collection",
			todos: nil,
			want:  []string{},
		},
		{
			name: "top-level tasks newest first",
			todos: []model.Todo{
				task("a", nil, 1),
				task("b", nil, 3),
				task("c", nil, 2),
			},
			want: []string{"b", "c", "a"},
		},
		{
			name: "subtask follows its parent",
			todos: []model.Todo{
				task("1", nil, 2),
				task("2", ptr("1"), 3),
				task("3", nil, 1),
			},
			want: []string{"1", "2", "3"},
		},
		{
			name: "subtasks of one parent newest first",
			todos: []model.Todo{
				task("p", nil, 1),
				task("s1", ptr("p"), 2),
				task("s2", ptr("p"), 4),
				task("s3", ptr("p"), 3),
			},
			want: []string{"p", "s2", "s3", "s1"},
		},
		{
			name: "orphaned subtask dropped",
			todos: []model.Todo{
				task("a", nil, 1),
				task("ghost", ptr("gone"), 2),
			},
			want: []string{"a"},
		},
		{
			name: "subtask of a subtask dropped",
			todos: []model.Todo{
				task("p", nil, 1),
				task("s", ptr("p"), 2),
				task("deep", ptr("s"), 3),
			},
			want: []string{"p", "s"},
		},
		{
			name: "interleaved families",
			todos: []model.Todo{
				task("old", nil, 1),
				task("new", nil, 10),
				task("old-sub", ptr("old"), 20),
				task("new-sub", ptr("new"), 11),
			},
			want: []string{"new", "new-sub", "old", "old-sub"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tasktree.Group(tt.todos))
			if len(got) != len(tt.want) {
				t.Fatalf("Group() order = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Group() order = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
