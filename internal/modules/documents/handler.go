package documents

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"docvault/internal/pkg/response"
)

const (
	listPath = "/documents"
	// request bodies above this spill to temp files while parsing
	multipartMemory = 8 << 20
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the routes any signed-in user may call.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/documents", h.List)
	r.GET("/download/:id", h.Download)
}

// RegisterAdminRoutes mounts the mutating routes; r must carry the admin role gate.
func (h *Handler) RegisterAdminRoutes(r gin.IRouter) {
	r.POST("/add_document", h.Add)
	r.GET("/delete_document/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")

	docs, err := h.service.List(ctx, category)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	categories, err := h.service.Categories(ctx)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	accept := make([]string, 0)
	for _, ext := range h.service.AllowedExtensions() {
		accept = append(accept, "."+ext)
	}

	response.HTML(c, http.StatusOK, "documents.html", gin.H{
		"PageTitle":       "Documents",
		"Documents":       docs,
		"Category":        category,
		"Categories":      categories,
		"DefaultCategory": h.service.DefaultCategory(),
		"Accept":          strings.Join(accept, ","),
	})
}

func (h *Handler) Add(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.ErrorPage(c, http.StatusRequestEntityTooLarge)
			return
		}
		response.ErrorPage(c, http.StatusBadRequest)
		return
	}

	up := Upload{
		Title:    c.PostForm("title"),
		Category: c.PostForm("category"),
	}
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			response.ServerError(c, err)
			return
		}
		defer f.Close()
		up.Filename = fh.Filename
		up.Content = f
	}

	_, err := h.service.Add(c.Request.Context(), up)
	switch {
	case err == nil:
		response.Redirect(c, listPath, "Document added.")
	case errors.Is(err, ErrMissingFields):
		response.Redirect(c, listPath, "Title and file are required.")
	case errors.Is(err, ErrExtensionNotAllowed):
		response.Redirect(c, listPath, "File extension not allowed.")
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
		response.Redirect(c, listPath, "Document deleted.")
	case errors.Is(err, ErrDocumentNotFound):
		response.Redirect(c, listPath, "Document not found.")
	default:
		response.ServerError(c, err)
	}
}

// Download streams the file as an attachment named by its stored filename.
func (h *Handler) Download(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorPage(c, http.StatusNotFound)
		return
	}

	doc, path, err := h.service.Locate(c.Request.Context(), id)
	switch {
	case err == nil:
		c.FileAttachment(path, doc.Filename)
	case errors.Is(err, ErrDocumentNotFound), errors.Is(err, ErrFileMissing):
		response.ErrorPage(c, http.StatusNotFound)
	default:
		response.ServerError(c, err)
	}
}
