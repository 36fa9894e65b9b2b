// Package renderer formats price records as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/prices"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates, _ = fs.Sub(templatesFS, "templates")

// Options holds configuration shared by all renderers.
type Options struct {
	Currency string // display currency code, plain numbers when empty
}

// Records renders records as a numbered table. Numbers start at 1.
func Records(records []prices.Record, category string, opts Options) string {
	empty := "No entries."
	if category != "" {
		empty = "No entries for that category."
	}
	return renderRecords(newRecords("Prices", category, empty, records, opts))
}

// Cheapest renders the cheapest option of a category.
// ok=false renders the empty state.
func Cheapest(r prices.Record, ok bool, category string, opts Options) string {
	var rows []prices.Record
	if ok {
		rows = append(rows, r)
	}
	empty := "No entries."
	if category != "" {
		empty = "No entries for that category."
	}
	return renderRecords(newRecords("Cheapest option", category, empty, rows, opts))
}

// Selection renders a short numbered list of records to pick one from.
func Selection(records []prices.Record, opts Options) string {
	return renderTemplate("selection", "selection.md", nil, newRecords("", "", "No entries.", records, opts))
}

func renderRecords(v *RecordsView) string {
	partials := map[string]string{
		"records_title": "records_title.md",
		"records_table": "records_table.md",
	}
	return renderTemplate("records", "records.md", partials, v)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
