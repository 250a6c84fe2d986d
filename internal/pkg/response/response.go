package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault/internal/pkg/flash"
	"docvault/internal/pkg/session"
)

// HTML renders a page template. The signed-in identity and pending flash
// notices are added to data for the layout.
func HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if id, ok := session.FromContext(c); ok {
		data["Identity"] = id
	}
	data["Flashes"] = flash.Pop(c)
	c.HTML(status, name, data)
}

// Redirect queues notice (when non-empty) and answers 302 to location.
func Redirect(c *gin.Context, location, notice string) {
	if notice != "" {
		flash.Add(c, notice)
	}
	c.Redirect(http.StatusFound, location)
}

var errorMessages = map[int]string{
	http.StatusNotFound:              "Page not found.",
	http.StatusMethodNotAllowed:      "Method not allowed.",
	http.StatusRequestEntityTooLarge: "The uploaded file is too large.",
	http.StatusInternalServerError:   "Server error.",
}

// ErrorPage renders the generic error page for status and aborts the chain.
func ErrorPage(c *gin.Context, status int) {
	msg, ok := errorMessages[status]
	if !ok {
		msg = http.StatusText(status)
	}
	HTML(c, status, "error.html", gin.H{
		"PageTitle": http.StatusText(status),
		"Code":      status,
		"Message":   msg,
	})
	c.Abort()
}

// ServerError records err on the context for the error logger and renders
// the 500 page.
func ServerError(c *gin.Context, err error) {
	_ = c.Error(err)
	ErrorPage(c, http.StatusInternalServerError)
}
