package presenter

import (
	"embed"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html").
		Funcs(template.FuncMap{"safeURL": safeURL}).
		ParseFS(templateFS, "templates/*.html"),
)

// Page is the data for the server-rendered search page. View is nil when
// there is nothing to show; Error is shown in the error slot.
type Page struct {
	Query string
	Error string
	View  *View
}

// RenderPage writes the full HTML page.
func RenderPage(w io.Writer, page Page) error {
	return pageTemplate.ExecuteTemplate(w, "page", page)
}

// Only data: URLs built by IconDataURL are trusted.
func safeURL(s string) template.URL {
	if !strings.HasPrefix(s, "data:image/svg+xml;") {
		return ""
	}
	return template.URL(s)
}
