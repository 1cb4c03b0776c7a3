package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// markup writes HTML to w and keeps the first write error. Later writes
// are skipped once an error is recorded.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(s string) {
	if m.err == nil {
		_, m.err = io.WriteString(m.w, s)
	}
}

// text writes escaped character data.
func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (m *markup) attr(name, value string) {
	m.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// href writes a URL attribute. Unsafe schemes are replaced by templ's
// failed-sanitization URL.
func (m *markup) href(name, url string) {
	m.attr(name, string(templ.URL(url)))
}

// flag writes a boolean attribute when on is set.
func (m *markup) flag(name string, on bool) {
	if on {
		m.raw(" " + name)
	}
}

// element writes <tag attrs>escaped text</tag>.
func (m *markup) element(tag, text string, attrs ...string) {
	m.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		m.attr(attrs[i], attrs[i+1])
	}
	m.raw(">")
	m.text(text)
	m.raw("</" + tag + ">")
}

func (m *markup) component(ctx context.Context, c templ.Component) {
	if m.err == nil {
		m.err = c.Render(ctx, m.w)
	}
}
