package forms

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"taskmanager/internal/repositories"
)

// TaskForm carries both the raw submitted values (for re-rendering) and
// the resolved ids the service layer consumes.
type TaskForm struct {
	Name        string
	Description string
	RawStatus   string
	RawExecutor string
	RawLabels   []string

	StatusID   int64
	ExecutorID *int64
	LabelIDs   []int64

	Errors Errors
}

func ParseTaskForm(v url.Values) *TaskForm {
	return &TaskForm{
		Name:        strings.TrimSpace(v.Get("name")),
		Description: strings.TrimSpace(v.Get("description")),
		RawStatus:   v.Get("status"),
		RawExecutor: v.Get("executor"),
		RawLabels:   v["labels"],
		Errors:      Errors{},
	}
}

type TaskFormDeps struct {
	Tasks    repositories.TaskRepository
	Statuses repositories.StatusRepository
	Users    repositories.UserRepository
	Labels   repositories.LabelRepository
}

// Validate resolves every referenced row. excludeID is the task being
// updated (0 on create) so a task keeps its own name.
func (f *TaskForm) Validate(ctx context.Context, deps TaskFormDeps, excludeID int64) bool {
	if f.Name == "" {
		f.Errors.Add("name", msgRequired)
	} else {
		taken, err := deps.Tasks.ExistsByName(ctx, f.Name, excludeID)
		if err != nil {
			f.Errors.Add("", "Could not validate the form, please try again")
			return false
		}
		if taken {
			f.AddDuplicateName()
		}
	}

	if f.RawStatus == "" {
		f.Errors.Add("status", msgRequired)
	} else if id, ok := parseID(f.RawStatus); !ok {
		f.Errors.Add("status", "Select a valid status")
	} else if _, err := deps.Statuses.GetByID(ctx, id); err != nil {
		f.Errors.Add("status", "Select a valid status")
	} else {
		f.StatusID = id
	}

	if f.RawExecutor != "" {
		if id, ok := parseID(f.RawExecutor); !ok {
			f.Errors.Add("executor", "Select a valid user")
		} else if _, err := deps.Users.GetByID(ctx, id); err != nil {
			f.Errors.Add("executor", "Select a valid user")
		} else {
			f.ExecutorID = &id
		}
	}

	for _, raw := range f.RawLabels {
		id, ok := parseID(raw)
		if !ok {
			f.Errors.Add("labels", "Select valid labels")
			break
		}
		if _, err := deps.Labels.GetByID(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				f.Errors.Add("labels", "Select valid labels")
				break
			}
			f.Errors.Add("", "Could not validate the form, please try again")
			return false
		}
		f.LabelIDs = append(f.LabelIDs, id)
	}

	return !f.Errors.Any()
}

func (f *TaskForm) AddDuplicateName() {
	f.Errors.Add("name", "Task with this name already exists")
}

// LabelSelected reports whether a label id was in the submitted multi-select;
// templates use it to keep selections across a failed validation.
func (f *TaskForm) LabelSelected(id int64) bool {
	s := strconv.FormatInt(id, 10)
	for _, raw := range f.RawLabels {
		if raw == s {
			return true
		}
	}
	return false
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
