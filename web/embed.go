// Package web embeds the server-rendered HTML templates.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates
var templatesFS embed.FS

// Templates parses every embedded template into one set. Each file defines
// its template under its path-like name (e.g. "admin/events/index.tmpl").
func Templates() *template.Template {
	t := template.New("").Funcs(template.FuncMap{
		"formatDate": func(v *time.Time) string {
			if v == nil {
				return "-"
			}
			return v.Format("2006-01-02")
		},
		"formatTime": func(v time.Time) string {
			return v.Format("2006-01-02 15:04:05")
		},
		"formatTimePtr": func(v *time.Time) string {
			if v == nil {
				return "-"
			}
			return v.Format("2006-01-02 15:04:05")
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	})
	return template.Must(t.ParseFS(templatesFS,
		"templates/*.tmpl",
		"templates/admin/*/*.tmpl",
		"templates/policies/*.tmpl",
	))
}
