package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault/internal/pkg/response"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service  *Service
	sessions SessionStore
}

func NewHandler(service *Service, sessions SessionStore) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// RegisterRoutes mounts /login and /logout. The session gate treats /login as public.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
}

func (h *Handler) LoginForm(c *gin.Context) {
	if _, ok := h.sessions.Read(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	response.HTML(c, http.StatusOK, "login.html", gin.H{"PageTitle": "Sign in"})
}

func (h *Handler) Login(c *gin.Context) {
	if _, ok := h.sessions.Read(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.ErrorPage(c, http.StatusRequestEntityTooLarge)
			return
		}
		response.Redirect(c, "/login", "Incorrect username or password.")
		return
	}

	user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Redirect(c, "/login", "Incorrect username or password.")
			return
		}
		response.ServerError(c, err)
		return
	}

	if err := h.sessions.Issue(c, user); err != nil {
		response.ServerError(c, err)
		return
	}
	response.Redirect(c, "/", "Logged in successfully.")
}

// Logout clears the session unconditionally.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	response.Redirect(c, "/login", "You have been logged out.")
}
