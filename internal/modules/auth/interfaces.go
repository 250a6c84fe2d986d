package auth

import (
	"context"

	"github.com/gin-gonic/gin"

	"docvault/internal/domain"
	"docvault/internal/pkg/session"
)

// UserRepositoryInterface holds only the methods the auth service uses
type UserRepositoryInterface interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// SessionStore issues and clears the session cookie.
type SessionStore interface {
	Issue(c *gin.Context, u *domain.User) error
	Read(c *gin.Context) (*session.Identity, bool)
	Clear(c *gin.Context)
}
