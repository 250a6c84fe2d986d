package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"docvault/internal/domain"
	"docvault/internal/pkg/password"
	"docvault/internal/repository"
)

// Service contains the credential check behind the login form.
type Service struct {
	users UserRepositoryInterface
	log   *zap.Logger
}

func NewService(users UserRepositoryInterface, log *zap.Logger) *Service {
	return &Service{users: users, log: log}
}

// Login returns the user whose username matches exactly and whose password
// verifies. Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := password.Verify(req.Password, user.PasswordHash)
	if err != nil {
		s.log.Warn("stored password hash unreadable", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
