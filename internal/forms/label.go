package forms

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"taskmanager/internal/repositories"
)

type LabelForm struct {
	Name string

	Errors Errors
}

func ParseLabelForm(v url.Values) *LabelForm {
	return &LabelForm{
		Name:   strings.TrimSpace(v.Get("name")),
		Errors: Errors{},
	}
}

func (f *LabelForm) Validate(ctx context.Context, repo repositories.LabelRepository, excludeID int64) bool {
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
		f.Errors.Add("name", "Label with this name already exists")
	}
	return !f.Errors.Any()
}

func (f *LabelForm) AddDuplicateName() {
	f.Errors.Add("name", "Label with this name already exists")
}
