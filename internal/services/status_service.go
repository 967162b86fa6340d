package services

import (
	"context"

	"taskmanager/internal/models"
	"taskmanager/internal/repositories"
)

type StatusService interface {
	Create(ctx context.Context, status *models.Status) error
	GetByID(ctx context.Context, id int64) (*models.Status, error)
	List(ctx context.Context) ([]models.Status, error)
	Update(ctx context.Context, status *models.Status) error
	Delete(ctx context.Context, id int64) error
}

type statusService struct {
	repo repositories.StatusRepository
}

func NewStatusService(repo repositories.StatusRepository) StatusService {
	return &statusService{repo: repo}
}

func (s *statusService) Create(ctx context.Context, status *models.Status) error {
	return s.repo.Create(ctx, status)
}

func (s *statusService) GetByID(ctx context.Context, id int64) (*models.Status, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *statusService) List(ctx context.Context) ([]models.Status, error) {
	return s.repo.List(ctx)
}

func (s *statusService) Update(ctx context.Context, status *models.Status) error {
	return s.repo.Update(ctx, status)
}

// Delete surfaces ErrInUse while any task still uses the status.
func (s *statusService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
