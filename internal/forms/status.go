package forms

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"taskmanager/internal/repositories"
)

type StatusForm struct {
	Name string

	Errors Errors
}

func ParseStatusForm(v url.Values) *StatusForm {
	return &StatusForm{
		Name:   strings.TrimSpace(v.Get("name")),
		Errors: Errors{},
	}
}

// Validate checks presence and uniqueness. excludeID carries the row being
// updated so a status may keep its own name; pass 0 on create.
func (f *StatusForm) Validate(ctx context.Context, repo repositories.StatusRepository, excludeID int64) bool {
	if f.Name == "" {
		f.Errors.Add("name", msgRequired)
		return false
	}
	existing, err := repo.GetByName(ctx, f.Name)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		f.Errors.Add("", "Could not validate the form, please try again")
		return false
	}
	if existing != nil && existing.ID != excludeID {
		f.Errors.Add("name", "Status with this name already exists")
	}
	return !f.Errors.Any()
}

// AddDuplicateName records the uniqueness message after the store rejected
// the write. Closes the check-then-write race with a concurrent create.
func (f *StatusForm) AddDuplicateName() {
	f.Errors.Add("name", "Status with this name already exists")
}
