// Package static embeds the dashboard template and its assets
package static

import (
	"embed"
	"html/template"
	"io/fs"
)

const (
	webDir            = "web"
	dashboardTemplate = "dashboard.html"
)

//go:embed web/*
var embeddedFiles embed.FS

// Assets returns the files served under /web/.
func Assets() fs.FS {
	sub, err := fs.Sub(embeddedFiles, webDir)
	if err != nil {
		panic(err)
	}

	return sub
}

// Dashboard parses the progress dashboard template with funcs available to
// it.
func Dashboard(funcs template.FuncMap) (*template.Template, error) {
	return template.New(dashboardTemplate).
		Funcs(funcs).
		ParseFS(embeddedFiles, webDir+"/"+dashboardTemplate)
}
