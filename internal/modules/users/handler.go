package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docvault/internal/pkg/response"
)

const listPath = "/users"

// Handler serves the admin-only user management pages.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects r to be guarded by the admin role gate.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/users", h.List)
	r.POST("/add_user", h.Add)
	r.GET("/delete_user/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "users.html", gin.H{
		"PageTitle": "Users",
		"Users":     users,
	})
}

func (h *Handler) Add(c *gin.Context) {
	var req AddUserRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.ErrorPage(c, http.StatusRequestEntityTooLarge)
			return
		}
		response.Redirect(c, listPath, "Username and password are required.")
		return
	}

	_, err := h.service.Add(c.Request.Context(), req)
	switch {
	case err == nil:
		response.Redirect(c, listPath, "User added.")
	case errors.Is(err, ErrMissingFields):
		response.Redirect(c, listPath, "Username and password are required.")
	case errors.Is(err, ErrInvalidRole):
		response.Redirect(c, listPath, "Invalid role.")
	case errors.Is(err, ErrReservedUsername):
		response.Redirect(c, listPath, "The admin account must have the admin role.")
	case errors.Is(err, ErrUserExists):
		response.Redirect(c, listPath, "This user already exists.")
	default:
		response.ServerError(c, err)
	}
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorPage(c, http.StatusNotFound)
		return
	}

	err = h.service.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		response.Redirect(c, listPath, "User deleted.")
	case errors.Is(err, ErrCannotDelete):
		response.Redirect(c, listPath, "Cannot delete this user.")
	default:
		response.ServerError(c, err)
	}
}
