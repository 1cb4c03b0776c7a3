package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var frontmatterDelim = []byte("---")

// Template is a parsed template file.
type Template struct {
	Metadata map[string]any
	Body     string
}

// ParseTemplate splits a template file into YAML frontmatter and markdown
// body. Content without a leading "---" line has no metadata.
func ParseTemplate(content []byte) (*Template, error) {
	tmpl := &Template{Metadata: map[string]any{}}

	rest, ok := bytes.CutPrefix(content, frontmatterDelim)
	if !ok {
		tmpl.Body = string(content)
		return tmpl, nil
	}
	rest = bytes.TrimLeft(rest, "\r\n")

	front, body, found := bytes.Cut(rest, frontmatterDelim)
	if !found {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &tmpl.Metadata); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	body, _ = bytes.CutPrefix(body, []byte("\r"))
	body, _ = bytes.CutPrefix(body, []byte("\n"))
	tmpl.Body = string(body)
	return tmpl, nil
}
