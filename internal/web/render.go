// Package web renders the HTML pages.  Templates are embedded in the
// binary; each page is parsed together with the shared layout so pages can
// define the same block names independently.
package web

import (
    "embed"
    "fmt"
    "html/template"
    "io"
    "io/fs"
    "path"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/samber/lo"

    "github.com/iliyamo/fyyur/internal/form"
)

//go:embed templates
var templateFS embed.FS

// Page is the data every template receives.  Data carries the payload of
// the page; Form and Errors are only set on form pages.
type Page struct {
    Title   string
    Flashes []string
    Data    any
    Form    any
    Errors  map[string]string
    Action  string
}

// Renderer implements echo.Renderer over the embedded templates.  Names
// are paths below templates/ such as "pages/venues.html".
type Renderer struct {
    pages map[string]*template.Template
}

// NewRenderer parses every page with the layout and the partials.
func NewRenderer() (*Renderer, error) {
    layout, err := fs.ReadFile(templateFS, "templates/layouts/main.html")
    if err != nil {
        return nil, err
    }
    partials, err := fs.Glob(templateFS, "templates/partials/*.html")
    if err != nil {
        return nil, err
    }
    r := &Renderer{pages: make(map[string]*template.Template)}
    for _, dir := range []string{"pages", "forms", "errors"} {
        matches, err := fs.Glob(templateFS, path.Join("templates", dir, "*.html"))
        if err != nil {
            return nil, err
        }
        for _, m := range matches {
            body, err := fs.ReadFile(templateFS, m)
            if err != nil {
                return nil, err
            }
            name := strings.TrimPrefix(m, "templates/")
            t, err := template.New("layout").Funcs(Funcs).Parse(string(layout))
            if err != nil {
                return nil, fmt.Errorf("parse layout: %w", err)
            }
            for _, p := range partials {
                if _, err := t.ParseFS(templateFS, p); err != nil {
                    return nil, fmt.Errorf("parse %s: %w", p, err)
                }
            }
            if _, err := t.New(name).Parse(string(body)); err != nil {
                return nil, fmt.Errorf("parse %s: %w", name, err)
            }
            r.pages[name] = t
        }
    }
    return r, nil
}

// MustRenderer is NewRenderer for program start-up.
func MustRenderer() *Renderer {
    r, err := NewRenderer()
    if err != nil {
        panic(err)
    }
    return r
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
    t, ok := r.pages[name]
    if !ok {
        return fmt.Errorf("template %q not found", name)
    }
    return t.ExecuteTemplate(w, "layout", data)
}

// Funcs are available to every template.
var Funcs = template.FuncMap{
    "datetime": FormatDateTime,
    "states":   func() []string { return form.States },
    "genres":   func() []string { return form.Genres },
    "has":      func(list []string, v string) bool { return lo.Contains(list, v) },
    "fieldErr": func(errs map[string]string, name string) fieldError {
        return fieldError{Errors: errs, Name: name}
    },
}

type fieldError struct {
    Errors map[string]string
    Name   string
}

// FormatDateTime renders t in the "medium" (default) or "full" format.
func FormatDateTime(t time.Time, format ...string) string {
    layout := "Mon 01, 02, 2006 3:04PM"
    if len(format) > 0 && format[0] == "full" {
        layout = "Monday January, 2, 2006 at 3:04PM"
    }
    return t.Format(layout)
}
