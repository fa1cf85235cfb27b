package view

import (
	"embed"
	"html/template"
)

// SectionTemplate is the name of the full comment section document
const SectionTemplate = "comment_section.html"

//go:embed templates/*.html
var templateFS embed.FS

// Document is the data passed to SectionTemplate
type Document struct {
	Locale string
	Page   Page
}

// Templates parses the embedded comment section templates
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}
