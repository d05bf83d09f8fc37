// Package web holds the server-rendered views.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"
	"unicode/utf8"

	"kudos_web/internal/common"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const errorTemplate = "error.html"

var funcs = template.FuncMap{
	"truncate": func(s string, n int) string {
		if utf8.RuneCountInString(s) <= n {
			return s
		}
		return string([]rune(s)[:n]) + "…"
	},
	"formatDate": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
}

// Templates parses every embedded view. Each file is available under its base name.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// Load installs the views on engine.
func Load(engine *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	engine.SetHTMLTemplate(tmpl)
	return nil
}

// RenderError renders the error page. API errors keep their status and message;
// anything else becomes a generic 500.
func RenderError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, common.ErrInternalServer.Message
	if apiErr, ok := common.IsAPIError(err); ok {
		status, message = apiErr.StatusCode, apiErr.Message
	}
	c.HTML(status, errorTemplate, gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
	c.Abort()
}
