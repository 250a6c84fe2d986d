package users

import (
	"context"

	"docvault/internal/domain"
)

// UserRepositoryInterface is the credential store as seen by user management
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// PasswordHasher turns a plain password into a stored hash.
type PasswordHasher func(plain string) (string, error)
