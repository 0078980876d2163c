// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public blog.
// Each section type has its own rendering rule, applied through the
// sectionHTML template function.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/alecthomas/chroma/v2/quick"

	"sectionpress/internal/markdown"
	"sectionpress/internal/models"
)

//go:embed templates/public/*.html
var publicFS embed.FS

// PageData holds all data passed to public templates.
type PageData struct {
	Title string         // Page title for <title> tag
	Post  *models.Post   // Post being viewed (post page only)
	Posts []models.Post  // Post summaries (index pages only)
	Data  map[string]any // Page-specific extras
}

// Renderer handles template parsing and execution for public pages.
type Renderer struct {
	templates map[string]*template.Template
}

// New creates a Renderer by parsing all public templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	funcMap := template.FuncMap{
		"sectionHTML": sectionHTML,
		// deref safely dereferences a string pointer for use in templates.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"fmtDate": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
	}

	entries, err := publicFS.ReadDir("templates/public")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			publicFS, "templates/public/base.html", "templates/public/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name[:len(name)-len(".html")]] = tmpl
	}

	return r, nil
}

// Page renders a full public page by template name.
func (rn *Renderer) Page(w http.ResponseWriter, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	// Render to a buffer first so a template error never produces a
	// half-written page.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		slog.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// sectionHTML renders a single section to HTML according to its type.
// Unknown types render as escaped plain text.
func sectionHTML(sec models.Section) template.HTML {
	switch sec.Type {
	case models.SectionTypeText:
		out, err := markdown.ToHTML(sec.Content)
		if err != nil {
			slog.Error("markdown render failed", "section", sec.ID, "error", err)
			return escaped(sec.Content)
		}
		return template.HTML(out)

	case models.SectionTypeHTML:
		// HTML sections are trusted editor content, passed through raw.
		return template.HTML(sec.Content)

	case models.SectionTypeCode:
		lang := sec.Metadata.String("language")
		var buf bytes.Buffer
		if err := quick.Highlight(&buf, sec.Content, lang, "html", "monokai"); err != nil {
			slog.Error("code highlight failed", "section", sec.ID, "error", err)
			return template.HTML("<pre><code>" + template.HTMLEscapeString(sec.Content) + "</code></pre>")
		}
		return template.HTML(buf.String())

	case models.SectionTypeImage:
		alt := sec.Metadata.String("alt")
		return template.HTML(fmt.Sprintf(
			`<img src="%s" alt="%s" class="rounded-lg w-full">`,
			template.HTMLEscapeString(sec.Content),
			template.HTMLEscapeString(alt),
		))

	case models.SectionTypeVideo:
		return template.HTML(fmt.Sprintf(
			`<video controls src="%s" class="rounded-lg w-full"></video>`,
			template.HTMLEscapeString(sec.Content),
		))
	}

	return escaped(sec.Content)
}

func escaped(s string) template.HTML {
	return template.HTML("<p>" + template.HTMLEscapeString(s) + "</p>")
}
