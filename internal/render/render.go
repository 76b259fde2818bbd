// Package render loads named template resources and substitutes locals into
// them. Resources are read from an fs.FS on every call; production code uses
// the embedded templates/ tree.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"text/template"
)

//go:embed templates
var embedded embed.FS

// Templates is the embedded template root. plan.yaml lives at its top level.
var Templates fs.FS = mustSub(embedded, "templates")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Locals maps placeholder names to values.
type Locals map[string]any

// ResourceError reports a template resource that is missing or unreadable.
type ResourceError struct {
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("loading template %s: %v", e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// Renderer renders templates found under a fixed root.
type Renderer struct {
	root fs.FS
}

// New returns a Renderer reading from root.
func New(root fs.FS) *Renderer {
	return &Renderer{root: root}
}

// Default returns a Renderer over the embedded templates.
func Default() *Renderer {
	return New(Templates)
}

// Render reads name and executes it with locals. A local referenced by the
// template but absent from locals is an error rather than "<no value>".
func (r *Renderer) Render(name string, locals Locals) (string, error) {
	src, err := fs.ReadFile(r.root, name)
	if err != nil {
		return "", &ResourceError{Name: name, Err: err}
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}

	if locals == nil {
		locals = Locals{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, locals); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// Template returns a handle whose Locals the caller fills before rendering.
func (r *Renderer) Template(name string) *Template {
	return &Template{Name: name, Locals: Locals{}, r: r}
}

// Template is a named resource plus the locals it will be rendered with.
type Template struct {
	Name   string
	Locals Locals

	r *Renderer
}

// Render renders the template with its current locals.
func (t *Template) Render() (string, error) {
	return t.r.Render(t.Name, t.Locals)
}
