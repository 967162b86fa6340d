package models

import "time"

// Task represents the structure of a task in the system.
//
// Creator is fixed at creation time from the authenticated caller and never
// changes afterwards. Executor is optional: NULL means nobody is assigned.
type Task struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StatusID    int64     `json:"status_id"`
	CreatorID   int64     `json:"creator_id"`
	ExecutorID  *int64    `json:"executor_id,omitempty"`
	LabelIDs    []int64   `json:"label_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Denormalized display fields, populated by list/detail queries.
	StatusName   string `json:"-"`
	CreatorName  string `json:"-"`
	ExecutorName string `json:"-"`
}

// TaskFilter defines the available parameters for filtering the task list.
// Nil fields impose no constraint; set fields compose with AND.
type TaskFilter struct {
	StatusID   *int64
	ExecutorID *int64
	LabelID    *int64
	CreatorID  *int64 // set from the session when "my tasks" is requested
}
