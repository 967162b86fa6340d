package services

import (
	"context"
	"log"

	"taskmanager/internal/models"
	"taskmanager/internal/repositories"
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	// Create stores a task authored by creatorID. A task submitted without
	// an executor is assigned to its creator.
	Create(ctx context.Context, task *models.Task, creatorID int64) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	// Update replaces the mutable fields. Creator and creation time are
	// never touched, whatever the payload says. An absent executor stays
	// absent: the create-time default does not reapply.
	Update(ctx context.Context, id int64, updateData *models.Task) (*models.Task, error)
	// Delete removes the task, but only for its creator; anyone else gets
	// ErrNotCreator and the row stays.
	Delete(ctx context.Context, id int64, callerID int64) error
}

type taskService struct {
	repo     repositories.TaskRepository
	users    repositories.UserRepository
	notifier Notifier
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository, users repositories.UserRepository, notifier Notifier) TaskService {
	return &taskService{repo: repo, users: users, notifier: notifier}
}

func (s *taskService) Create(ctx context.Context, task *models.Task, creatorID int64) (*models.Task, error) {
	task.CreatorID = creatorID
	if task.ExecutorID == nil {
		task.ExecutorID = &creatorID
	}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	s.notifyAssignment(ctx, task, creatorID)
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) Update(ctx context.Context, id int64, updateData *models.Task) (*models.Task, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reassigned := updateData.ExecutorID != nil &&
		(existing.ExecutorID == nil || *existing.ExecutorID != *updateData.ExecutorID)

	existing.Name = updateData.Name
	existing.Description = updateData.Description
	existing.StatusID = updateData.StatusID
	existing.ExecutorID = updateData.ExecutorID
	existing.LabelIDs = updateData.LabelIDs

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	if reassigned {
		s.notifyAssignment(ctx, existing, existing.CreatorID)
	}
	return existing, nil
}

func (s *taskService) Delete(ctx context.Context, id int64, callerID int64) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if task.CreatorID != callerID {
		return ErrNotCreator
	}
	return s.repo.Delete(ctx, id)
}

// notifyAssignment mails the executor about a task landing on their desk.
// Self-assignments are silent, and a mail failure never fails the write.
func (s *taskService) notifyAssignment(ctx context.Context, task *models.Task, actorID int64) {
	if s.notifier == nil || task.ExecutorID == nil || *task.ExecutorID == actorID {
		return
	}
	if task.StatusName == "" {
		if full, err := s.repo.FindByID(ctx, task.ID); err == nil {
			task = full
		}
	}
	executor, err := s.users.GetByID(ctx, *task.ExecutorID)
	if err != nil {
		log.Printf("[task][notify] executor lookup failed for task=%d: %v", task.ID, err)
		return
	}
	if err := s.notifier.NotifyAssigned(executor, task); err != nil {
		log.Printf("[task][notify] warning: failed to notify %q about task=%d: %v",
			executor.Username, task.ID, err)
	}
}
