package models

import "time"

// Label is a free-form tag attachable to any number of tasks.
type Label struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
