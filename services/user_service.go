package services

import (
	"context"
	"errors"

	"bounce.link/configs/configslog"
	"bounce.link/models"
	"bounce.link/repositories"

	"go.uber.org/zap"
)

// UserServiceError is the typed error vocabulary of the user service.
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound UserServiceError = "user not found"
)

// IUserService exposes read access to the seeded users.
type IUserService interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

type UserService struct {
	repo repositories.IUserRepository
}

func NewUserService() IUserService {
	return &UserService{repo: repositories.NewUserRepository()}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		configslog.Log.Error("GetAllUsers failed", zap.Error(err))
		return nil, err
	}
	return users, nil
}

var _ IUserService = (*UserService)(nil)
