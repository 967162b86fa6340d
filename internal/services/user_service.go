package services

import (
	"context"
	"errors"
	"fmt"

	"taskmanager/internal/auth"
	"taskmanager/internal/models"
	"taskmanager/internal/repositories"
)

type UserService interface {
	Register(ctx context.Context, user *models.User, plainPassword string) error
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// Update persists profile changes; newPassword == "" keeps the stored
	// hash. Returns changed=true when the password was replaced, so the
	// caller can terminate the session.
	Update(ctx context.Context, user *models.User, newPassword string) (changed bool, err error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Register(ctx context.Context, user *models.User, plainPassword string) error {
	if plainPassword == "" {
		return fmt.Errorf("password is required")
	}
	hash, err := auth.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.repo.Create(ctx, user)
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) Update(ctx context.Context, user *models.User, newPassword string) (bool, error) {
	changed := false
	if newPassword != "" {
		hash, err := auth.HashPassword(newPassword)
		if err != nil {
			return false, err
		}
		user.PasswordHash = hash
		changed = true
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return false, err
	}
	return changed, nil
}

// Delete passes the repository's ErrInUse through untouched: a user who is
// creator or executor of any task stays.
func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
