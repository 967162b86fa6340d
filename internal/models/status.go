package models

import "time"

// Status is a workflow state a task can be in ("new", "in review", ...).
// Names are free text but globally unique.
type Status struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
