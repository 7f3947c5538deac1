package repository

import (
	"context"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
)

type TodoRepository interface {
	Create(ctx context.Context, todo model.Todo) (model.Todo, error)
	GetByID(ctx context.Context, userID, todoID string) (model.Todo, error)
	Update(ctx context.Context, todo model.Todo) (model.Todo, error)
	// DeleteCascade removes a todo and, in the same transaction, every
	// todo whose parent it is. Children are deleted first; if anything
	// fails the parent survives and the whole cascade is rolled back.
	DeleteCascade(ctx context.Context, userID, todoID string) error
	// List returns one page of the user's top-level todos, newest
	// first, together with every subtask of those todos. Pagination
	// counts top-level todos only, so a subtask always arrives on the
	// same page as its parent.
	List(ctx context.Context, params model.TodoListParams) (model.TodoListResult, error)
	// CountByCheckin reports how many todos were imported from the
	// given check-in.
	CountByCheckin(ctx context.Context, userID, checkinID string) (int, error)
	// ImportFromCheckin creates one todo per text, all referencing the
	// check-in, unless todos for that check-in already exist. The
	// existence check and the inserts run in one transaction holding a
	// row lock on the check-in, so concurrent imports cannot both
	// create. Returns alreadyImported=true (and creates nothing) on a
	// repeat call; sql.ErrNoRows if the check-in isn't the user's.
	ImportFromCheckin(ctx context.Context, userID, checkinID string, texts []string) (created []model.Todo, alreadyImported bool, err error)
	// CreateBatch inserts todos atomically: either every todo in the
	// batch is created or none are.
	CreateBatch(ctx context.Context, todos []model.Todo) ([]model.Todo, error)
}
