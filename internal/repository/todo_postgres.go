package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
)

type PostgresTodoRepository struct {
	db *sql.DB
}

func NewPostgresTodo(db *sql.DB) *PostgresTodoRepository {
	return &PostgresTodoRepository{db: db}
}

const todoColumns = `id, user_id, text, completed, checkin_id, parent_id, is_subtask, created_at, updated_at`

func (r *PostgresTodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	query := `
		INSERT INTO todos (id, user_id, text, completed, checkin_id, parent_id, is_subtask)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + todoColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), todo.UserID, todo.Text, todo.Completed,
		todo.CheckinID, todo.ParentID, todo.ParentID != nil,
	)

	return scanTodo(row)
}

func (r *PostgresTodoRepository) GetByID(ctx context.Context, userID, todoID string) (model.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, todoID, userID)
	return scanTodo(row)
}

func (r *PostgresTodoRepository) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	query := `
		UPDATE todos
		SET text = $1, completed = $2, updated_at = now()
		WHERE id = $3 AND user_id = $4
		RETURNING ` + todoColumns

	row := r.db.QueryRowContext(ctx, query,
		todo.Text, todo.Completed, todo.ID, todo.UserID,
	)

	return scanTodo(row)
}

func (r *PostgresTodoRepository) DeleteCascade(ctx context.Context, userID, todoID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	// Children first. The parent delete below aborts everything if the
	// todo turns out not to exist.
	childQuery := `DELETE FROM todos WHERE parent_id = $1 AND user_id = $2`
	if _, err := tx.ExecContext(ctx, childQuery, todoID, userID); err != nil {
		return fmt.Errorf("failed to delete subtasks: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, todoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// List pages over top-level todos only, then loads the subtasks of the
// page's parents in a second query. Paginating the flat table instead
// would split a subtask from its parent whenever they straddle a page
// boundary, and grouping would drop it.
func (r *PostgresTodoRepository) List(ctx context.Context, params model.TodoListParams) (model.TodoListResult, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = $1 AND parent_id IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, params.UserID, limit, offset)
	if err != nil {
		return model.TodoListResult{}, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	parentIDs := []string{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return model.TodoListResult{}, err
		}
		todos = append(todos, todo)
		parentIDs = append(parentIDs, todo.ID)
	}
	if err := rows.Err(); err != nil {
		return model.TodoListResult{}, fmt.Errorf("failed to iterate todos: %w", err)
	}

	if len(parentIDs) > 0 {
		subtasks, err := r.listSubtasks(ctx, params.UserID, parentIDs)
		if err != nil {
			return model.TodoListResult{}, err
		}
		todos = append(todos, subtasks...)
	}

	var total int
	countQuery := `SELECT count(*) FROM todos WHERE user_id = $1 AND parent_id IS NULL`
	if err := r.db.QueryRowContext(ctx, countQuery, params.UserID).Scan(&total); err != nil {
		return model.TodoListResult{}, fmt.Errorf("failed to count todos: %w", err)
	}

	return model.TodoListResult{
		Todos:      todos,
		Pagination: model.NewPagination(total, page, limit),
	}, nil
}

func (r *PostgresTodoRepository) listSubtasks(ctx context.Context, userID string, parentIDs []string) ([]model.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = $1 AND parent_id = ANY($2)
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, pq.Array(parentIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list subtasks: %w", err)
	}
	defer rows.Close()

	subtasks := []model.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		subtasks = append(subtasks, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subtasks: %w", err)
	}
	return subtasks, nil
}

func (r *PostgresTodoRepository) CountByCheckin(ctx context.Context, userID, checkinID string) (int, error) {
	query := `SELECT count(*) FROM todos WHERE user_id = $1 AND checkin_id = $2`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, checkinID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count imported todos: %w", err)
	}
	return count, nil
}

func (r *PostgresTodoRepository) ImportFromCheckin(ctx context.Context, userID, checkinID string, texts []string) ([]model.Todo, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	// Locking the check-in row serializes concurrent imports of the
	// same check-in: the loser of the race sees the winner's todos.
	var lockedID string
	lockQuery := `SELECT id FROM checkins WHERE id = $1 AND user_id = $2 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, lockQuery, checkinID, userID).Scan(&lockedID); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, sql.ErrNoRows
		}
		return nil, false, fmt.Errorf("failed to lock checkin: %w", err)
	}

	var existing int
	countQuery := `SELECT count(*) FROM todos WHERE user_id = $1 AND checkin_id = $2`
	if err := tx.QueryRowContext(ctx, countQuery, userID, checkinID).Scan(&existing); err != nil {
		return nil, false, fmt.Errorf("failed to check existing imports: %w", err)
	}
	if existing > 0 {
		return nil, true, nil
	}

	created, err := insertBatch(ctx, tx, userID, checkinID, texts)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit import: %w", err)
	}
	return created, false, nil
}

func (r *PostgresTodoRepository) CreateBatch(ctx context.Context, todos []model.Todo) ([]model.Todo, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin batch transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO todos (id, user_id, text, completed, checkin_id, parent_id, is_subtask)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + todoColumns

	created := make([]model.Todo, 0, len(todos))
	for _, todo := range todos {
		row := tx.QueryRowContext(ctx, query,
			uuid.NewString(), todo.UserID, todo.Text, todo.Completed,
			todo.CheckinID, todo.ParentID, todo.ParentID != nil,
		)
		t, err := scanTodo(row)
		if err != nil {
			return nil, err
		}
		created = append(created, t)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}
	return created, nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, userID, checkinID string, texts []string) ([]model.Todo, error) {
	query := `
		INSERT INTO todos (id, user_id, text, completed, checkin_id, is_subtask)
		VALUES ($1, $2, $3, false, $4, false)
		RETURNING ` + todoColumns

	created := make([]model.Todo, 0, len(texts))
	for _, text := range texts {
		row := tx.QueryRowContext(ctx, query, uuid.NewString(), userID, text, checkinID)
		t, err := scanTodo(row)
		if err != nil {
			return nil, err
		}
		created = append(created, t)
	}
	return created, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTodo(row scannable) (model.Todo, error) {
	var t model.Todo
	var checkinID, parentID sql.NullString
	err := row.Scan(
		&t.ID, &t.UserID, &t.Text, &t.Completed,
		&checkinID, &parentID, &t.IsSubtask, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to scan todo: %w", err)
	}
	if checkinID.Valid {
		t.CheckinID = &checkinID.String
	}
	if parentID.Valid {
		t.ParentID = &parentID.String
	}
	return t, nil
}

// ensure compile-time interface compliance
var _ TodoRepository = (*PostgresTodoRepository)(nil)
