// Package web holds the embedded check page and the static widget assets
// served by the HTTP facade.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed check.html
var pageFS embed.FS

//go:embed static
var staticFS embed.FS

// CheckTemplate renders the payment check page for a resolved link
var CheckTemplate = template.Must(template.ParseFS(pageFS, "check.html"))

// StaticFS serves the widget script and styles under /static
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
