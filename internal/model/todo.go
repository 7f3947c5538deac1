package model

import "time"

// Todo is a to-do list item. CheckinID links an item imported from a
// check-in goal back to its source; ParentID links a subtask to its
// parent item. Only one level of nesting is supported.
type Todo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CheckinID *string   `json:"checkin_id,omitempty"`
	ParentID  *string   `json:"parent_id,omitempty"`
	IsSubtask bool      `json:"is_subtask"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TodoListParams struct {
	UserID string
	Page   int
	Limit  int
}

type TodoListResult struct {
	Todos      []Todo     `json:"todos"`
	Pagination Pagination `json:"pagination"`
}
