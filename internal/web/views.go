// Package web renders the HTML views and serves the static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin/render"

	"github.com/maksimryndin/superlists/internal/lists/domain"
)

// View names understood by Views.
const (
	HomeView  = "home.html"
	ListView  = "list.html"
	ErrorView = "error.html"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Renderer turns a named view and its data into a response body.
type Renderer interface {
	Render(w io.Writer, view string, data any) error
}

// HomePage is the data for HomeView.
type HomePage struct {
	Error string
}

// ListPage is the data for ListView.
type ListPage struct {
	List  domain.List
	Items []domain.Item
	Error string
}

// ErrorPage is the data for ErrorView.
type ErrorPage struct {
	Status  int
	Message string
}

var (
	_ Renderer          = (*Views)(nil)
	_ render.HTMLRender = (*Views)(nil)
)

// Views holds one parsed template set per page. It implements Renderer and
// gin's render.HTMLRender, so handlers can use c.HTML with the view names.
type Views struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// NewViews parses the embedded templates.
func NewViews() (*Views, error) {
	v := &Views{pages: make(map[string]*template.Template)}

	for _, page := range []string{HomeView, ListView} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		v.pages[page] = t
	}

	t, err := template.New(ErrorView).Funcs(funcs).ParseFS(templateFS, "templates/"+ErrorView)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ErrorView, err)
	}
	v.pages[ErrorView] = t

	return v, nil
}

// Render writes view to w.
func (v *Views) Render(w io.Writer, view string, data any) error {
	t, ok := v.pages[view]
	if !ok {
		return fmt.Errorf("unknown view %q", view)
	}
	return t.ExecuteTemplate(w, "base", data)
}

// Instance implements render.HTMLRender.
func (v *Views) Instance(view string, data any) render.Render {
	t, ok := v.pages[view]
	if !ok {
		return render.Data{
			ContentType: "text/plain; charset=utf-8",
			Data:        []byte(fmt.Sprintf("unknown view %q", view)),
		}
	}
	return render.HTML{Template: t, Name: "base", Data: data}
}

// StaticFS returns the embedded static assets rooted at their directory.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// StaticFileSystem serves collected assets from dir, or the embedded ones when dir is empty.
func StaticFileSystem(dir string) http.FileSystem {
	if dir != "" {
		return http.Dir(dir)
	}
	return http.FS(StaticFS())
}

// CollectStatic copies the embedded static assets into dir and returns the written paths.
func CollectStatic(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("static dir is required")
	}

	var written []string
	err := fs.WalkDir(StaticFS(), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		data, err := fs.ReadFile(StaticFS(), path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		written = append(written, target)
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("collect static: %w", err)
	}
	return written, nil
}
