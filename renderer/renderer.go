// Package renderer turns the engine's reports into markdown documents.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/finco/finco"
)

//go:embed *.md
var templates embed.FS

// RenderDashboard renders the dashboard to a markdown string.
func RenderDashboard(d *finco.Dashboard) string {
	partials := map[string]string{
		"rankings": "rankings.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, d)
}

// RenderCashFlow renders the cash flow statement to a markdown string.
func RenderCashFlow(cf *finco.CashFlow) string {
	return renderTemplate("cashflow", "cashflow.md", nil, cf)
}

// RenderAnnual renders the annual report to a markdown string.
func RenderAnnual(r *finco.AnnualReport) string {
	partials := map[string]string{
		"rankings": "rankings.md",
	}
	return renderTemplate("annual", "annual.md", partials, r)
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
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
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
