package services

import (
	"context"

	"taskmanager/internal/models"
	"taskmanager/internal/repositories"
)

type LabelService interface {
	Create(ctx context.Context, label *models.Label) error
	GetByID(ctx context.Context, id int64) (*models.Label, error)
	List(ctx context.Context) ([]models.Label, error)
	Update(ctx context.Context, label *models.Label) error
	Delete(ctx context.Context, id int64) error
}

type labelService struct {
	repo repositories.LabelRepository
}

func NewLabelService(repo repositories.LabelRepository) LabelService {
	return &labelService{repo: repo}
}

func (s *labelService) Create(ctx context.Context, label *models.Label) error {
	return s.repo.Create(ctx, label)
}

func (s *labelService) GetByID(ctx context.Context, id int64) (*models.Label, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *labelService) List(ctx context.Context) ([]models.Label, error) {
	return s.repo.List(ctx)
}

func (s *labelService) Update(ctx context.Context, label *models.Label) error {
	return s.repo.Update(ctx, label)
}

// Delete surfaces ErrInUse while any task still carries the label.
func (s *labelService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
