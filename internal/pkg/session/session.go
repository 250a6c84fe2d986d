// Package session keeps the authenticated identity in a signed cookie and
// exposes it to handlers as a request-scoped value.
package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault/internal/domain"
	"docvault/internal/pkg/jwt"
)

const (
	CookieName  = "session"
	identityKey = "identity"
)

// Identity is the authenticated principal of one request.
type Identity struct {
	UserID   int64
	Username string
	Role     domain.UserRole
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == domain.RoleAdmin
}

// Manager issues, reads and clears the session cookie.
type Manager struct {
	tokens *jwt.Service
	secure bool
}

func NewManager(tokens *jwt.Service, secure bool) *Manager {
	return &Manager{tokens: tokens, secure: secure}
}

// Issue stores the user's id, username and role in a fresh session cookie.
func (m *Manager) Issue(c *gin.Context, u *domain.User) error {
	token, err := m.tokens.GenerateToken(u.ID, u.Username, string(u.Role))
	if err != nil {
		return err
	}
	m.setCookie(c, token, int(m.tokens.TTL().Seconds()))
	return nil
}

// Read returns the identity carried by the request's session cookie, if any.
func (m *Manager) Read(c *gin.Context) (*Identity, bool) {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil, false
	}
	claims, err := m.tokens.ValidateToken(raw)
	if err != nil {
		return nil, false
	}
	return &Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     domain.UserRole(claims.Role),
	}, true
}

// Clear expires the session cookie.
func (m *Manager) Clear(c *gin.Context) {
	m.setCookie(c, "", -1)
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", m.secure, true)
}

// WithIdentity attaches id to the request.
func WithIdentity(c *gin.Context, id *Identity) {
	c.Set(identityKey, id)
	c.Set("user_id", id.UserID)
	c.Set("role", string(id.Role))
}

// FromContext returns the identity attached by the session gate.
func FromContext(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok && id != nil
}
