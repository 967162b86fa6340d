package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"` // optional, only used for notifications
	PasswordHash string    `json:"-"`     // never rendered
	CreatedAt    time.Time `json:"created_at"`
}

// FullName is what lists and delete confirmations display; falls back to
// the username when both name parts are empty.
func (u User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
