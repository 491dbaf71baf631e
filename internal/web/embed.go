// Package web holds the contact page template and its static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed static templates
var assets embed.FS

var (
	// StaticFS serves the files under static/, addressed without the prefix.
	StaticFS = mustSub(assets, "static")

	// Templates holds every page template, named by file name.
	Templates = template.Must(template.ParseFS(assets, "templates/*.html"))
)

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic("web: " + err.Error())
	}
	return sub
}
