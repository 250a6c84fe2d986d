// Package server assembles the HTTP router from the feature modules.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docvault/internal/middleware"
	"docvault/internal/modules/auth"
	"docvault/internal/modules/dashboard"
	"docvault/internal/modules/documents"
	"docvault/internal/modules/users"
	"docvault/internal/pkg/response"
	"docvault/internal/pkg/session"
	"docvault/internal/web"
)

const staticPrefix = "/static"

// Deps carries everything the router needs. All fields are required.
type Deps struct {
	Log            *zap.Logger
	Sessions       *session.Manager
	Auth           *auth.Service
	Users          *users.Service
	Documents      *documents.Service
	MaxUploadBytes int64
}

// New builds the engine. Every route except /login and /static/ requires a
// session; user management and document mutations additionally require the
// admin role.
func New(d Deps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.SetHTMLTemplate(tmpl)

	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.ErrorLogger(d.Log),
		middleware.MaxBodyBytes(d.MaxUploadBytes),
		middleware.SessionGate(d.Sessions, middleware.LoginPath, staticPrefix+"/"),
	)

	r.StaticFS(staticPrefix, web.Static())

	auth.NewHandler(d.Auth, d.Sessions).RegisterRoutes(r)
	dashboard.NewHandler(d.Documents, d.Users).RegisterRoutes(r)

	docHandler := documents.NewHandler(d.Documents)
	docHandler.RegisterRoutes(r)

	admin := r.Group("/")
	admin.Use(middleware.AdminOnly())
	{
		users.NewHandler(d.Users).RegisterRoutes(admin)
		docHandler.RegisterAdminRoutes(admin)
	}

	r.NoRoute(func(c *gin.Context) {
		response.ErrorPage(c, http.StatusNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		response.ErrorPage(c, http.StatusMethodNotAllowed)
	})

	return r, nil
}
