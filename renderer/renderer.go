// Package renderer renders invest reports as markdown, from embedded
// text/templates.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/invest"
)

//go:embed *.md
var templates embed.FS

// funcs returns the template helpers, formatting amounts in currency.
func funcs(currency string) template.FuncMap {
	if currency == "" {
		currency = invest.DefaultCurrency
	}
	return template.FuncMap{
		"money": func(m invest.Money) string { return m.Format(currency) },
		"signed": func(m invest.Money) string {
			if m.IsPositive() {
				return "+" + m.Format(currency)
			}
			return m.Format(currency)
		},
		"cell": cell,
		"join": strings.Join,
	}
}

// cell escapes a text to fit in a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
}

// render executes the template "<name>.md" with data. The partials it uses
// are the "<name>_*.md" files, named without their extension.
//
// Errors are rendered in place of the report.
func render(name, currency string, data any) string {
	partials, err := fs.Glob(templates, name+"_*.md")
	if err != nil {
		return fmt.Sprintf("error listing templates of %q: %v", name, err)
	}
	tmpl := template.New(name).Funcs(funcs(currency))
	for _, file := range append([]string{name + ".md"}, partials...) {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading template %q: %v", file, err)
		}
		if _, err := tmpl.New(strings.TrimSuffix(file, ".md")).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing template %q: %v", file, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}
