package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docvault/internal/domain"
	"docvault/internal/pkg/password"
	"docvault/internal/repository"
)

type Service struct {
	users UserRepositoryInterface
	hash  PasswordHasher
	log   *zap.Logger
}

// NewService wires user management. A nil hasher selects password.Hash.
func NewService(users UserRepositoryInterface, hash PasswordHasher, log *zap.Logger) *Service {
	if hash == nil {
		hash = password.Hash
	}
	return &Service{users: users, hash: hash, log: log}
}

// List returns all users ordered by ascending id.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

// Add creates a user. The role defaults to "user". The reserved admin
// username may only be created with the admin role.
func (s *Service) Add(ctx context.Context, req AddUserRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	role := domain.UserRole(strings.TrimSpace(req.Role))
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}
	if username == domain.ReservedAdminUsername && role != domain.RoleAdmin {
		return nil, ErrReservedUsername
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Username: username, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		// lost the race against a concurrent insert of the same name
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Unknown ids and the reserved admin account yield
// ErrCannotDelete.
func (s *Service) Delete(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCannotDelete
		}
		return err
	}
	if user.IsReserved() {
		return ErrCannotDelete
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCannotDelete
		}
		return err
	}
	return nil
}

// EnsureDefaultAdmin seeds the reserved admin account when no users exist.
// It reports whether an account was created.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, plain string) (bool, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	hash, err := s.hash(plain)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	admin := &domain.User{
		Username:     domain.ReservedAdminUsername,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return false, err
	}
	s.log.Warn("seeded default admin account; rotate its password before real use",
		zap.String("username", admin.Username))
	return true, nil
}
