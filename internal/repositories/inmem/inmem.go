// Package inmem provides in-memory implementations of the repository
// interfaces for tests: same contract as the SQL repositories, including
// the uniqueness and delete-guard sentinels, without a database.
package inmem

import (
	"context"
	"sync"
	"time"

	"taskmanager/internal/models"
	"taskmanager/internal/repositories"
)

// Store owns all four entity sets so referential checks can see across
// repositories, the way the database constraints do.
type Store struct {
	mu sync.Mutex

	users    map[int64]*models.User
	statuses map[int64]*models.Status
	labels   map[int64]*models.Label
	tasks    map[int64]*models.Task

	nextID int64
}

func NewStore() *Store {
	return &Store{
		users:    map[int64]*models.User{},
		statuses: map[int64]*models.Status{},
		labels:   map[int64]*models.Label{},
		tasks:    map[int64]*models.Task{},
		nextID:   1,
	}
}

func (s *Store) Users() repositories.UserRepository      { return &userRepo{s} }
func (s *Store) Statuses() repositories.StatusRepository { return &statusRepo{s} }
func (s *Store) Labels() repositories.LabelRepository    { return &labelRepo{s} }
func (s *Store) Tasks() repositories.TaskRepository      { return &taskRepo{s} }

func (s *Store) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// ---- users

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	user.ID = r.s.allocID()
	user.CreatedAt = time.Now()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepo) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	for _, u := range r.s.users {
		if u.ID != user.ID && u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *userRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, t := range r.s.tasks {
		if t.CreatorID == id || (t.ExecutorID != nil && *t.ExecutorID == id) {
			return repositories.ErrInUse
		}
	}
	delete(r.s.users, id)
	return nil
}

func (r *userRepo) List(_ context.Context) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.User
	for id := int64(1); id < r.s.nextID; id++ {
		if u, ok := r.s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

// ---- statuses

type statusRepo struct{ s *Store }

func (r *statusRepo) Create(_ context.Context, status *models.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.statuses {
		if st.Name == status.Name {
			return repositories.ErrDuplicate
		}
	}
	status.ID = r.s.allocID()
	status.CreatedAt = time.Now()
	cp := *status
	r.s.statuses[status.ID] = &cp
	return nil
}

func (r *statusRepo) GetByID(_ context.Context, id int64) (*models.Status, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.statuses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (r *statusRepo) GetByName(_ context.Context, name string) (*models.Status, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.statuses {
		if st.Name == name {
			cp := *st
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *statusRepo) Update(_ context.Context, status *models.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.statuses[status.ID]; !ok {
		return repositories.ErrNotFound
	}
	for _, st := range r.s.statuses {
		if st.ID != status.ID && st.Name == status.Name {
			return repositories.ErrDuplicate
		}
	}
	cp := *status
	r.s.statuses[status.ID] = &cp
	return nil
}

func (r *statusRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.statuses[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, t := range r.s.tasks {
		if t.StatusID == id {
			return repositories.ErrInUse
		}
	}
	delete(r.s.statuses, id)
	return nil
}

func (r *statusRepo) List(_ context.Context) ([]models.Status, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Status
	for id := int64(1); id < r.s.nextID; id++ {
		if st, ok := r.s.statuses[id]; ok {
			out = append(out, *st)
		}
	}
	return out, nil
}

// ---- labels

type labelRepo struct{ s *Store }

func (r *labelRepo) Create(_ context.Context, label *models.Label) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.labels {
		if l.Name == label.Name {
			return repositories.ErrDuplicate
		}
	}
	label.ID = r.s.allocID()
	label.CreatedAt = time.Now()
	cp := *label
	r.s.labels[label.ID] = &cp
	return nil
}

func (r *labelRepo) GetByID(_ context.Context, id int64) (*models.Label, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.labels[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *labelRepo) GetByName(_ context.Context, name string) (*models.Label, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.labels {
		if l.Name == name {
			cp := *l
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *labelRepo) Update(_ context.Context, label *models.Label) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.labels[label.ID]; !ok {
		return repositories.ErrNotFound
	}
	for _, l := range r.s.labels {
		if l.ID != label.ID && l.Name == label.Name {
			return repositories.ErrDuplicate
		}
	}
	cp := *label
	r.s.labels[label.ID] = &cp
	return nil
}

func (r *labelRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.labels[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, t := range r.s.tasks {
		for _, labelID := range t.LabelIDs {
			if labelID == id {
				return repositories.ErrInUse
			}
		}
	}
	delete(r.s.labels, id)
	return nil
}

func (r *labelRepo) List(_ context.Context) ([]models.Label, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Label
	for id := int64(1); id < r.s.nextID; id++ {
		if l, ok := r.s.labels[id]; ok {
			out = append(out, *l)
		}
	}
	return out, nil
}

// ---- tasks

type taskRepo struct{ s *Store }

func (r *taskRepo) Store(_ context.Context, task *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tasks {
		if t.Name == task.Name {
			return repositories.ErrDuplicate
		}
	}
	if _, ok := r.s.statuses[task.StatusID]; !ok {
		return repositories.ErrInUse
	}
	task.ID = r.s.allocID()
	task.CreatedAt = time.Now()
	cp := *task
	cp.LabelIDs = append([]int64(nil), task.LabelIDs...)
	r.s.tasks[task.ID] = &cp
	return nil
}

func (r *taskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := r.s.display(t)
	return &cp, nil
}

func (r *taskRepo) FindAll(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Task
	for id := int64(1); id < r.s.nextID; id++ {
		t, ok := r.s.tasks[id]
		if !ok {
			continue
		}
		if filter.StatusID != nil && t.StatusID != *filter.StatusID {
			continue
		}
		if filter.ExecutorID != nil && (t.ExecutorID == nil || *t.ExecutorID != *filter.ExecutorID) {
			continue
		}
		if filter.CreatorID != nil && t.CreatorID != *filter.CreatorID {
			continue
		}
		if filter.LabelID != nil && !containsID(t.LabelIDs, *filter.LabelID) {
			continue
		}
		out = append(out, r.s.display(t))
	}
	return out, nil
}

func (r *taskRepo) Update(_ context.Context, task *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.tasks[task.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	for _, t := range r.s.tasks {
		if t.ID != task.ID && t.Name == task.Name {
			return repositories.ErrDuplicate
		}
	}
	cp := *task
	cp.CreatorID = existing.CreatorID
	cp.CreatedAt = existing.CreatedAt
	cp.LabelIDs = append([]int64(nil), task.LabelIDs...)
	r.s.tasks[task.ID] = &cp
	return nil
}

func (r *taskRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

func (r *taskRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tasks {
		if t.Name == name && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// display fills the denormalized name fields the SQL queries join in.
func (s *Store) display(t *models.Task) models.Task {
	cp := *t
	cp.LabelIDs = append([]int64(nil), t.LabelIDs...)
	if st, ok := s.statuses[t.StatusID]; ok {
		cp.StatusName = st.Name
	}
	if u, ok := s.users[t.CreatorID]; ok {
		cp.CreatorName = u.FullName()
	}
	if t.ExecutorID != nil {
		if u, ok := s.users[*t.ExecutorID]; ok {
			cp.ExecutorName = u.FullName()
		}
	}
	return cp
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
