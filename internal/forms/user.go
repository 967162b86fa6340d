package forms

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"taskmanager/internal/repositories"
)

// RegisterForm validates self-registration. Password rules follow the
// login form they feed: minimum three characters, confirmation must match.
type RegisterForm struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password1 string
	Password2 string

	Errors Errors
}

func ParseRegisterForm(v url.Values) *RegisterForm {
	return &RegisterForm{
		Username:  strings.TrimSpace(v.Get("username")),
		FirstName: strings.TrimSpace(v.Get("first_name")),
		LastName:  strings.TrimSpace(v.Get("last_name")),
		Email:     strings.TrimSpace(v.Get("email")),
		Password1: v.Get("password1"),
		Password2: v.Get("password2"),
		Errors:    Errors{},
	}
}

func (f *RegisterForm) Validate(ctx context.Context, users repositories.UserRepository) bool {
	if f.Username == "" {
		f.Errors.Add("username", msgRequired)
	} else {
		existing, err := users.GetByUsername(ctx, f.Username)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			f.Errors.Add("", "Could not validate the form, please try again")
			return false
		}
		if existing != nil {
			f.AddDuplicateUsername()
		}
	}
	if f.FirstName == "" {
		f.Errors.Add("first_name", msgRequired)
	}
	if f.LastName == "" {
		f.Errors.Add("last_name", msgRequired)
	}

	validatePassword(f.Errors, f.Password1, f.Password2, true)

	return !f.Errors.Any()
}

func (f *RegisterForm) AddDuplicateUsername() {
	f.Errors.Add("username", "A user with that username already exists")
}

// UserUpdateForm edits an existing account. Password fields are optional:
// both empty means "keep the current password".
type UserUpdateForm struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password1 string
	Password2 string

	Errors Errors
}

func ParseUserUpdateForm(v url.Values) *UserUpdateForm {
	return &UserUpdateForm{
		Username:  strings.TrimSpace(v.Get("username")),
		FirstName: strings.TrimSpace(v.Get("first_name")),
		LastName:  strings.TrimSpace(v.Get("last_name")),
		Email:     strings.TrimSpace(v.Get("email")),
		Password1: v.Get("password1"),
		Password2: v.Get("password2"),
		Errors:    Errors{},
	}
}

// ChangesPassword reports whether the caller supplied a new password.
func (f *UserUpdateForm) ChangesPassword() bool {
	return f.Password1 != "" || f.Password2 != ""
}

func (f *UserUpdateForm) Validate(ctx context.Context, users repositories.UserRepository, selfID int64) bool {
	if f.Username == "" {
		f.Errors.Add("username", msgRequired)
	} else {
		existing, err := users.GetByUsername(ctx, f.Username)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			f.Errors.Add("", "Could not validate the form, please try again")
			return false
		}
		if existing != nil && existing.ID != selfID {
			f.AddDuplicateUsername()
		}
	}
	if f.FirstName == "" {
		f.Errors.Add("first_name", msgRequired)
	}
	if f.LastName == "" {
		f.Errors.Add("last_name", msgRequired)
	}

	if f.ChangesPassword() {
		validatePassword(f.Errors, f.Password1, f.Password2, true)
	}

	return !f.Errors.Any()
}

func (f *UserUpdateForm) AddDuplicateUsername() {
	f.Errors.Add("username", "A user with that username already exists")
}

func validatePassword(errs Errors, password1, password2 string, required bool) {
	if password1 == "" {
		if required {
			errs.Add("password1", msgRequired)
		}
		return
	}
	if len(password1) < minPasswordLen {
		errs.Add("password1", msgPasswordShort)
	}
	if len(password1) > maxPasswordLen {
		errs.Add("password1", "Password is too long")
	}
	if password1 != password2 {
		errs.Add("password2", msgPasswordMatch)
	}
}

// LoginForm only checks presence; credentials are verified by the service.
type LoginForm struct {
	Username string
	Password string

	Errors Errors
}

func ParseLoginForm(v url.Values) *LoginForm {
	return &LoginForm{
		Username: strings.TrimSpace(v.Get("username")),
		Password: v.Get("password"),
		Errors:   Errors{},
	}
}

func (f *LoginForm) Validate() bool {
	if f.Username == "" {
		f.Errors.Add("username", msgRequired)
	}
	if f.Password == "" {
		f.Errors.Add("password", msgRequired)
	}
	return !f.Errors.Any()
}
