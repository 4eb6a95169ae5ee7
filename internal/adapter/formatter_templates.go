package adapter

import (
	"embed"
	"strings"
	"sync"
	"text/template"

	"github.com/kapu/figures-review-go/internal/format"
)

//go:embed templates/*.tmpl
var formatterTemplateFS embed.FS

var (
	formatterTemplates *template.Template
	formatterOnce      sync.Once
	formatterErr       error
)

func executeFormatterTemplate(name string, data any) (string, error) {
	formatterOnce.Do(func() {
		funcMap := template.FuncMap{
			"add":      func(a, b int) int { return a + b },
			"date":     format.FormatDate,
			"datetime": format.FormatDateTime,
			"fallback": format.FallbackText,
			"status":   format.StatusLabel,
			"indent": func(prefix, s string) string {
				return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
			},
		}
		tmpl := template.New("formatter").Funcs(funcMap)
		formatterTemplates, formatterErr = tmpl.ParseFS(formatterTemplateFS, "templates/*.tmpl")
	})

	if formatterErr != nil {
		return "", formatterErr
	}

	var builder strings.Builder
	if err := formatterTemplates.ExecuteTemplate(&builder, name, data); err != nil {
		return "", err
	}

	return strings.TrimRight(builder.String(), "\n"), nil
}
