package content

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/folio-dev/folio/pkg/sanitizer"
)

// Content is everything the home page shows apart from the contact modal.
type Content struct {
	Name     string    `yaml:"name"`
	Tagline  string    `yaml:"tagline"`
	About    string    `yaml:"about"`
	Links    []Link    `yaml:"links"`
	Projects []Project `yaml:"projects"`
	Skills   []string  `yaml:"skills"`
	Contact  Contact   `yaml:"contact"`

	// AboutHTML is About rendered from markdown and sanitized.
	AboutHTML string `yaml:"-"`
}

// Link is a social or contact link shown under the hero text.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// External reports whether the link leaves the site.
func (l Link) External() bool {
	return strings.HasPrefix(l.URL, "http://") || strings.HasPrefix(l.URL, "https://")
}

type Project struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
}

// Contact holds the copy of the contact section.
type Contact struct {
	Heading string `yaml:"heading"`
	Blurb   string `yaml:"blurb"`
	Button  string `yaml:"button"`
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))

// Parse decodes and validates a content file.
func Parse(data []byte) (*Content, error) {
	var c Content
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Join(ErrInvalidContent, err)
	}
	if err := c.validate(); err != nil {
		return nil, errors.Join(ErrInvalidContent, err)
	}
	c.applyDefaults()

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(c.About), &buf); err != nil {
		return nil, errors.Join(ErrInvalidContent, fmt.Errorf("render about: %w", err))
	}
	c.AboutHTML = sanitizer.SanitizeHTML(buf.String())

	return &c, nil
}

func (c *Content) validate() error {
	var errs []error
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	for i, l := range c.Links {
		if !validURL(l.URL, "http", "https", "mailto") {
			errs = append(errs, fmt.Errorf("links[%d]: invalid url %q", i, l.URL))
		}
	}
	for i, p := range c.Projects {
		if p.Title == "" {
			errs = append(errs, fmt.Errorf("projects[%d]: title is required", i))
		}
		if p.Link != "" && !validURL(p.Link, "http", "https") {
			errs = append(errs, fmt.Errorf("projects[%d]: invalid link %q", i, p.Link))
		}
	}
	return errors.Join(errs...)
}

func (c *Content) applyDefaults() {
	if c.Contact.Heading == "" {
		c.Contact.Heading = "Contact Me"
	}
	if c.Contact.Button == "" {
		c.Contact.Button = "Say Hello"
	}
}

func validURL(raw string, schemes ...string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if !slices.Contains(schemes, u.Scheme) {
		return false
	}
	if u.Scheme == "mailto" {
		return u.Opaque != ""
	}
	return u.Host != ""
}
