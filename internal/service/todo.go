package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
	"github.com/mindtrackhq/mindtrack-api/internal/repository"
	"github.com/mindtrackhq/mindtrack-api/internal/tasktree"
)

type CreateTodoInput struct {
	Text      string
	CheckinID *string
	ParentID  *string
}

type UpdateTodoInput struct {
	Text      *string
	Completed *bool
}

// ImportResult reports the outcome of a goal import. AlreadyImported
// means a previous import created the todos and this call changed
// nothing.
type ImportResult struct {
	AlreadyImported bool         `json:"already_imported"`
	Todos           []model.Todo `json:"todos"`
}

type TodoService struct {
	repo     repository.TodoRepository
	checkins repository.CheckInRepository
}

func NewTodoService(repo repository.TodoRepository, checkins repository.CheckInRepository) *TodoService {
	return &TodoService{repo: repo, checkins: checkins}
}

func (s *TodoService) Create(ctx context.Context, userID string, input CreateTodoInput) (model.Todo, error) {
	if strings.TrimSpace(input.Text) == "" {
		return model.Todo{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}

	if input.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, userID, *input.ParentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.Todo{}, ErrNotFound
			}
			return model.Todo{}, fmt.Errorf("failed to get parent todo: %w", err)
		}
		if parent.IsSubtask {
			return model.Todo{}, fmt.Errorf("%w: a subtask cannot have subtasks of its own", ErrInvalidInput)
		}
	}

	todo := model.Todo{
		UserID:    userID,
		Text:      strings.TrimSpace(input.Text),
		Completed: false,
		CheckinID: input.CheckinID,
		ParentID:  input.ParentID,
	}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return created, nil
}

func (s *TodoService) Update(ctx context.Context, userID, todoID string, input UpdateTodoInput) (model.Todo, error) {
	existing, err := s.repo.GetByID(ctx, userID, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo for update: %w", err)
	}

	if input.Text != nil {
		if strings.TrimSpace(*input.Text) == "" {
			return model.Todo{}, fmt.Errorf("%w: text cannot be empty", ErrInvalidInput)
		}
		existing.Text = strings.TrimSpace(*input.Text)
	}
	if input.Completed != nil {
		existing.Completed = *input.Completed
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}

	return updated, nil
}

// Delete removes a todo. Deleting a top-level task also removes every
// subtask under it; the cascade is atomic.
func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	err := s.repo.DeleteCascade(ctx, userID, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// List returns a page of todos in display order: top-level tasks newest
// first, each followed by its subtasks. The repository attaches the
// subtasks of the page's parents, so grouping never loses a subtask to
// a page boundary.
func (s *TodoService) List(ctx context.Context, params model.TodoListParams) (model.TodoListResult, error) {
	result, err := s.repo.List(ctx, params)
	if err != nil {
		return model.TodoListResult{}, fmt.Errorf("failed to list todos: %w", err)
	}
	result.Todos = tasktree.Group(result.Todos)
	return result, nil
}

// CheckImported reports whether the goals of a check-in have already
// been imported into the todo list.
func (s *TodoService) CheckImported(ctx context.Context, userID, checkinID string) (bool, error) {
	if checkinID == "" {
		return false, fmt.Errorf("%w: checkin_id is required", ErrInvalidInput)
	}
	count, err := s.repo.CountByCheckin(ctx, userID, checkinID)
	if err != nil {
		return false, fmt.Errorf("failed to check imported goals: %w", err)
	}
	return count > 0, nil
}

// ImportGoals converts the goals of the user's check-in into todos,
// at most once per check-in. A repeat call reports AlreadyImported and
// creates nothing.
func (s *TodoService) ImportGoals(ctx context.Context, userID, checkinID string) (ImportResult, error) {
	if checkinID == "" {
		return ImportResult{}, fmt.Errorf("%w: checkin_id is required", ErrInvalidInput)
	}

	checkin, err := s.checkins.GetByID(ctx, userID, checkinID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ImportResult{}, ErrNotFound
		}
		return ImportResult{}, fmt.Errorf("failed to get checkin: %w", err)
	}

	// Goals arrive normalized from the repository read boundary.
	if len(checkin.Goals) == 0 {
		return ImportResult{}, fmt.Errorf("%w: no goals found in the check-in", ErrInvalidInput)
	}

	created, already, err := s.repo.ImportFromCheckin(ctx, userID, checkinID, checkin.Goals)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ImportResult{}, ErrNotFound
		}
		return ImportResult{}, fmt.Errorf("failed to import goals: %w", err)
	}
	if already {
		return ImportResult{AlreadyImported: true, Todos: []model.Todo{}}, nil
	}

	return ImportResult{Todos: created}, nil
}

// Breakdown creates subtasks under a parent todo from the given texts.
// Blank texts are discarded; when none remain the call is a no-op.
func (s *TodoService) Breakdown(ctx context.Context, userID, parentID string, texts []string) ([]model.Todo, error) {
	parent, err := s.repo.GetByID(ctx, userID, parentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get parent todo: %w", err)
	}
	if parent.IsSubtask {
		return nil, fmt.Errorf("%w: a subtask cannot be broken down further", ErrInvalidInput)
	}

	subtasks := make([]model.Todo, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		subtasks = append(subtasks, model.Todo{
			UserID:   userID,
			Text:     text,
			ParentID: &parent.ID,
		})
	}
	if len(subtasks) == 0 {
		return []model.Todo{}, nil
	}

	created, err := s.repo.CreateBatch(ctx, subtasks)
	if err != nil {
		return nil, fmt.Errorf("failed to create subtasks: %w", err)
	}

	return created, nil
}
