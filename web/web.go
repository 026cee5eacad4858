// Package web holds the embedded page and email templates.
package web

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html emails/*.html
var FS embed.FS

var funcs = template.FuncMap{
	"stars": func(n int) string {
		if n < 0 {
			n = 0
		}
		return strings.Repeat("★", n)
	},
	"ratingClass": func(rating int) string {
		switch {
		case rating >= 4:
			return "good"
		case rating >= 3:
			return "ok"
		default:
			return "bad"
		}
	},
	// percentage of total, for bar widths
	"percent": func(count, total int) int {
		if total == 0 {
			return 0
		}
		return count * 100 / total
	},
	"ratingPercent": func(avg float64) int {
		return int(avg * 20)
	},
	"date": func(t time.Time) string {
		return t.Format("Jan 02, 2006")
	},
	"ratings": func() []int {
		return []int{1, 2, 3, 4, 5}
	},
}

// Parse loads every page template.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(FS, "templates/*.html")
}

// Template renders the page templates for echo.
type Template struct {
	templates *template.Template
}

func NewTemplate() (*Template, error) {
	tmpl, err := Parse()
	if err != nil {
		return nil, err
	}
	return &Template{templates: tmpl}, nil
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}
