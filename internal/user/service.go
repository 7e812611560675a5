package user

import (
	"context"

	"github.com/saulo-duarte/coursehub-lambda/internal/apperror"
	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
)

var (
	ErrUserNotFound = apperror.NotFound("user not found")
	ErrUserInactive = apperror.Forbidden("user account is inactive")
)

type UserService interface {
	GetCurrent(ctx context.Context, p auth.Principal) (*User, error)
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetCurrent(ctx context.Context, p auth.Principal) (*User, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		log.WithError(err).Error("Failed to load user")
		return nil, err
	}
	if u == nil {
		log.Warn("Authenticated user has no account record")
		return nil, ErrUserNotFound
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}
	return u, nil
}
