package endpoints

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(
	template.New("").
		Funcs(template.FuncMap{"markdown": renderMarkdown}).
		ParseFS(templatesFS, "templates/*.html"),
)

type errorPage struct {
	Status  int
	Message string
}

// render executes the named template before writing anything so a template
// failure can still produce a clean 500.
func render(w http.ResponseWriter, code int, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

func renderError(w http.ResponseWriter, code int, message string) {
	render(w, code, "error.html", errorPage{Status: code, Message: message})
}
