package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates
var defaultTemplates embed.FS

// DefaultTemplates holds the built-in contact notification template
// ("contact.md") and layout ("layouts/base.html").
var DefaultTemplates fs.FS = mustSub(defaultTemplates, "templates")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer turns markdown templates into HTML emails.
// Parsed templates and layouts are cached; output is not.
type Renderer struct {
	fs        fs.FS
	md        goldmark.Markdown
	templates map[string]*parsedTemplate
	layouts   map[string]*template.Template
	layoutDir string
	mu        sync.Mutex
}

type parsedTemplate struct {
	metadata map[string]any
	body     *texttemplate.Template
}

// RenderResult holds a rendered email.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string // markdown after template execution
}

// NewRenderer creates a renderer reading templates from the root of fsys
// and layouts from fsys/layouts.
func NewRenderer(fsys fs.FS) *Renderer {
	return &Renderer{
		fs:        fsys,
		md:        goldmark.New(goldmark.WithExtensions(extension.Linkify)),
		templates: make(map[string]*parsedTemplate),
		layouts:   make(map[string]*template.Template),
		layoutDir: "layouts",
	}
}

// Render executes the named template with data and wraps it in layout.
func (r *Renderer) Render(layout, name string, data any) (*RenderResult, error) {
	tmpl, err := r.template(name)
	if err != nil {
		return nil, err
	}

	var markdown bytes.Buffer
	if err := tmpl.body.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &content); err != nil {
		return nil, fmt.Errorf("%w: convert markdown: %v", ErrRenderFailed, err)
	}

	layoutTmpl, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var html bytes.Buffer
	if err := layoutTmpl.Execute(&html, map[string]any{
		"Content":  template.HTML(content.String()),
		"Metadata": tmpl.metadata,
	}); err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &RenderResult{
		Metadata: tmpl.metadata,
		HTML:     html.String(),
		Text:     markdown.String(),
	}, nil
}

func (r *Renderer) template(name string) (*parsedTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.templates[name]; ok {
		return t, nil
	}

	raw, err := fs.ReadFile(r.fs, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}
	parsed, err := ParseTemplate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}
	body, err := texttemplate.New(name).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	t := &parsedTemplate{metadata: parsed.Metadata, body: body}
	r.templates[name] = t
	return t, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.layouts[name]; ok {
		return t, nil
	}

	raw, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}
	t, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, name, err)
	}

	r.layouts[name] = t
	return t, nil
}
