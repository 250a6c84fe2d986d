package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault/internal/pkg/response"
	"docvault/internal/pkg/session"
)

// Handler renders the landing page shown after login.
type Handler struct {
	documents DocumentCounter
	users     UserCounter
}

func NewHandler(documents DocumentCounter, users UserCounter) *Handler {
	return &Handler{documents: documents, users: users}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Index)
}

func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	docs, err := h.documents.Count(ctx)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	data := gin.H{
		"PageTitle":     "Dashboard",
		"DocumentCount": docs,
	}

	// user totals are admin-only
	if id, ok := session.FromContext(c); ok && id.IsAdmin() {
		n, err := h.users.Count(ctx)
		if err != nil {
			response.ServerError(c, err)
			return
		}
		data["UserCount"] = n
	}

	response.HTML(c, http.StatusOK, "dashboard.html", data)
}
