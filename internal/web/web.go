// Package web holds the page templates.
package web

import (
	"embed"         // Embedded template files
	"html/template" // HTML templating
	"strings"       // Receipt prefix check
	"time"          // Date formatting

	"storefront/internal/view"
)

//go:embed templates/*.tmpl
var files embed.FS

// Funcs are the helpers available to every template
var Funcs = template.FuncMap{
	"coins": view.Coins,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
	// Receipts are stored as data URLs, which html/template refuses by default
	"receiptURL": func(data string) template.URL {
		if !strings.HasPrefix(data, "data:image/") {
			return ""
		}
		return template.URL(data)
	},
}

// Templates parses every page; each is addressed by its file name
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(Funcs).ParseFS(files, "templates/*.tmpl"))
}
